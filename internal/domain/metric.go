package domain

import (
	"github.com/shopspring/decimal"
)

// HealthStatus is the five-level classification attached to every metric and
// every section.
type HealthStatus string

const (
	StatusExcellent HealthStatus = "excellent"
	StatusGood      HealthStatus = "good"
	StatusFair      HealthStatus = "fair"
	StatusPoor      HealthStatus = "poor"
	StatusCritical  HealthStatus = "critical"
)

// Score maps a status to its numeric value for aggregation.
func (s HealthStatus) Score() decimal.Decimal {
	switch s {
	case StatusExcellent:
		return decimal.NewFromInt(100)
	case StatusGood:
		return decimal.NewFromInt(75)
	case StatusFair:
		return decimal.NewFromInt(50)
	case StatusPoor:
		return decimal.NewFromInt(25)
	default:
		return decimal.Zero
	}
}

// StatusFromScore re-buckets an aggregate 0-100 score into a section status.
func StatusFromScore(score decimal.Decimal) HealthStatus {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return StatusExcellent
	case score.GreaterThanOrEqual(decimal.NewFromInt(65)):
		return StatusGood
	case score.GreaterThanOrEqual(decimal.NewFromInt(45)):
		return StatusFair
	case score.GreaterThanOrEqual(decimal.NewFromInt(25)):
		return StatusPoor
	default:
		return StatusCritical
	}
}

// MetricID identifies a metric within a section summary. The fixed metrics
// use the constants below; per-goal metrics are built with GoalMetricID so
// callers can still address them without string munging at the call site.
type MetricID string

const (
	MetricEmergencyFund         MetricID = "emergency_fund"
	MetricLifeInsurance         MetricID = "life_insurance"
	MetricDisabilityInsurance   MetricID = "disability_insurance"
	MetricDebtToIncome          MetricID = "debt_to_income"
	MetricLiquidNetWorth        MetricID = "liquid_net_worth"
	MetricSavingsRate           MetricID = "savings_rate"
	MetricFixedCostRatio        MetricID = "fixed_cost_ratio"
	MetricDiscretionarySpending MetricID = "discretionary_spending"
	MetricGuiltFreeSpending     MetricID = "guilt_free_spending"
	MetricLifestyleCreep        MetricID = "lifestyle_creep"
	MetricAllocation            MetricID = "allocation"
	MetricConcentrationRisk     MetricID = "concentration_risk"
	MetricExpenseRatio          MetricID = "expense_ratio"
	MetricTaxEfficiency         MetricID = "tax_efficiency"
	MetricIlliquidAssets        MetricID = "illiquid_assets"
	MetricBehavioralFlags       MetricID = "behavioral_flags"
	MetricRetirementProjection  MetricID = "retirement_projection"
	MetricStressTest            MetricID = "stress_test"
	MetricEstatePlanning        MetricID = "estate_planning"
	MetricBeneficiaries         MetricID = "beneficiaries"
	MetricDigitalEstate         MetricID = "digital_estate"
	MetricAccountTitling        MetricID = "account_titling"
)

// GoalMetricID returns the metric identifier for a specific goal.
func GoalMetricID(goalID string) MetricID {
	return MetricID("goal_" + goalID)
}

// MetricResult is the uniform envelope every calculation returns. Callers
// must not assume which optional fields are populated beyond Value,
// DisplayValue, and Status.
type MetricResult struct {
	Value           decimal.Decimal  `json:"value"`
	DisplayValue    string           `json:"display_value"`
	Status          HealthStatus     `json:"status"`
	Benchmark       *decimal.Decimal `json:"benchmark,omitempty"`
	BenchmarkLabel  string           `json:"benchmark_label,omitempty"`
	Trend           *decimal.Decimal `json:"trend,omitempty"` // percentage change
	Delta           *decimal.Decimal `json:"delta,omitempty"` // absolute change from previous period
	DeltaIsPositive *bool            `json:"delta_is_positive,omitempty"`
	Description     string           `json:"description,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// SectionMetric pairs a metric identifier with its result, preserving the
// section's display order.
type SectionMetric struct {
	ID     MetricID     `json:"id"`
	Result MetricResult `json:"result"`
}

// SectionSummary is the aggregate output of one section calculator.
type SectionSummary struct {
	Metrics         []SectionMetric `json:"metrics"`
	OverallScore    decimal.Decimal `json:"overall_score"` // 0-100
	OverallStatus   HealthStatus    `json:"overall_status"`
	SectionTitle    string          `json:"section_title"`
	SectionQuestion string          `json:"section_question"`
}

// Metric returns the result for the given identifier, if present.
func (s SectionSummary) Metric(id MetricID) (MetricResult, bool) {
	for _, m := range s.Metrics {
		if m.ID == id {
			return m.Result, true
		}
	}
	return MetricResult{}, false
}
