// Package disability projects monthly cash flows for a group long-term
// disability policy: gross benefit after the elimination period, SSDI and
// workers' compensation offsets, and the net payout subject to the policy
// minimum.
package disability

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PolicyMetadata identifies the policy and its issuer.
type PolicyMetadata struct {
	InsurerName string `yaml:"insurer_name" json:"insurer_name"`
	PolicyType  string `yaml:"policy_type" json:"policy_type"`
}

// BenefitParameters holds the benefit schedule extracted from the policy.
type BenefitParameters struct {
	ReplacementPercentage decimal.Decimal `yaml:"replacement_percentage" json:"replacement_percentage"`
	MaximumMonthlyBenefit decimal.Decimal `yaml:"maximum_monthly_benefit" json:"maximum_monthly_benefit"`
	MinimumMonthlyBenefit decimal.Decimal `yaml:"minimum_monthly_benefit" json:"minimum_monthly_benefit"`
	EliminationPeriodDays int             `yaml:"elimination_period_days" json:"elimination_period_days"`
	MaxBenefitDuration    string          `yaml:"max_benefit_duration" json:"max_benefit_duration"`
}

// EarningsDefinition flags which compensation components the policy covers.
type EarningsDefinition struct {
	IncludesBaseSalary  bool `yaml:"includes_base_salary" json:"includes_base_salary"`
	IncludesBonuses     bool `yaml:"includes_bonuses" json:"includes_bonuses"`
	IncludesCommissions bool `yaml:"includes_commissions" json:"includes_commissions"`
	IncludesOvertime    bool `yaml:"includes_overtime" json:"includes_overtime"`
}

// AnyComponentFlagged reports whether the extraction marked any earnings
// component as covered.
func (e EarningsDefinition) AnyComponentFlagged() bool {
	return e.IncludesBaseSalary || e.IncludesBonuses || e.IncludesCommissions || e.IncludesOvertime
}

// DisabilityDefinition holds the policy's definition-of-disability terms.
type DisabilityDefinition struct {
	OwnOccupationPeriodMonths int `yaml:"own_occupation_period_months" json:"own_occupation_period_months"`
}

// DeductibleOffsets flags which external benefits reduce the payout.
type DeductibleOffsets struct {
	OffsetsPrimarySSDI     bool `yaml:"offsets_primary_ssdi" json:"offsets_primary_ssdi"`
	OffsetsFamilySSDI      bool `yaml:"offsets_family_ssdi" json:"offsets_family_ssdi"`
	OffsetsWorkersComp     bool `yaml:"offsets_workers_comp" json:"offsets_workers_comp"`
	OffsetsStateDisability bool `yaml:"offsets_state_disability" json:"offsets_state_disability"`
}

// GroupDisabilityPolicy is the structured policy description supplied by the
// document-extraction collaborator.
type GroupDisabilityPolicy struct {
	PolicyMetadata       PolicyMetadata       `yaml:"policy_metadata" json:"policy_metadata"`
	BenefitParameters    BenefitParameters    `yaml:"benefit_parameters" json:"benefit_parameters"`
	EarningsDefinition   EarningsDefinition   `yaml:"earnings_definition" json:"earnings_definition"`
	DisabilityDefinition DisabilityDefinition `yaml:"disability_definition" json:"disability_definition"`
	DeductibleOffsets    DeductibleOffsets    `yaml:"deductible_offsets" json:"deductible_offsets"`
}

// Validate rejects policies the model cannot interpret. Extraction noise in
// the replacement rate must fail loudly rather than silently producing a
// zero benefit.
func (p *GroupDisabilityPolicy) Validate() error {
	if p.BenefitParameters.ReplacementPercentage.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("replacement percentage must be positive, got %s",
			p.BenefitParameters.ReplacementPercentage)
	}
	if p.BenefitParameters.MaximumMonthlyBenefit.LessThan(decimal.Zero) {
		return fmt.Errorf("maximum monthly benefit cannot be negative")
	}
	if p.BenefitParameters.MinimumMonthlyBenefit.LessThan(decimal.Zero) {
		return fmt.Errorf("minimum monthly benefit cannot be negative")
	}
	if p.BenefitParameters.EliminationPeriodDays < 0 {
		return fmt.Errorf("elimination period cannot be negative")
	}
	return nil
}

// UserInputs holds the disability-specific facts supplied by the client.
type UserInputs struct {
	AnnualBaseSalary   decimal.Decimal `yaml:"annual_base_salary" json:"annual_base_salary"`
	AnnualBonus        decimal.Decimal `yaml:"annual_bonus" json:"annual_bonus"`
	AIME               decimal.Decimal `yaml:"aime" json:"aime"` // Average Indexed Monthly Earnings
	DateOfDisability   time.Time       `yaml:"date_of_disability" json:"date_of_disability"`
	MonthlyWorkersComp decimal.Decimal `yaml:"monthly_workers_comp" json:"monthly_workers_comp"`
	DateOfBirth        time.Time       `yaml:"date_of_birth" json:"date_of_birth"`
}
