package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Retirement projection defaults.
var (
	defaultExpectedReturn  = decimal.NewFromFloat(0.07)
	defaultInflation       = decimal.NewFromFloat(0.03)
	defaultWithdrawalRate  = decimal.NewFromFloat(0.04)
	assumedSavingsRate     = decimal.NewFromFloat(0.15) // share of income contributed annually
	taxableRetirementShare = decimal.NewFromFloat(0.8)  // portion of taxable brokerage counted for retirement
	retirementExpenseRatio = decimal.NewFromFloat(0.75) // retirement spending vs current expenses
)

// PlanningCalculator scores Section 4: Future Planning & Projections.
type PlanningCalculator struct {
	data domain.ClientData
	asOf time.Time
}

// NewPlanningCalculator builds a calculator evaluated as of today.
func NewPlanningCalculator(data domain.ClientData) *PlanningCalculator {
	return NewPlanningCalculatorAt(data, time.Now())
}

// NewPlanningCalculatorAt builds a calculator evaluated at a fixed date.
func NewPlanningCalculatorAt(data domain.ClientData, asOf time.Time) *PlanningCalculator {
	return &PlanningCalculator{data: data, asOf: asOf}
}

// retirementAssets returns the balances counted toward retirement: the
// tax-advantaged accounts plus 80% of the taxable brokerage.
func (pl *PlanningCalculator) retirementAssets() decimal.Decimal {
	return pl.data.Assets.Retirement401k.
		Add(pl.data.Assets.IRATraditional).
		Add(pl.data.Assets.IRARoth).
		Add(pl.data.Assets.BrokerageTaxable.Mul(taxableRetirementShare))
}

// projectNestEgg compounds current retirement assets and assumed annual
// contributions forward at the real return.
func projectNestEgg(assets, annualContribution, realReturn decimal.Decimal, years int) decimal.Decimal {
	if realReturn.LessThanOrEqual(decimal.Zero) || years <= 0 {
		return assets
	}
	return FVLumpSum(assets, years, realReturn).Add(FVAnnuity(annualContribution, years, realReturn))
}

func replacementStatus(replacementRatio decimal.Decimal) domain.HealthStatus {
	switch {
	case replacementRatio.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return domain.StatusExcellent
	case replacementRatio.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return domain.StatusGood
	case replacementRatio.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return domain.StatusFair
	case replacementRatio.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return domain.StatusPoor
	default:
		return domain.StatusCritical
	}
}

// RetirementProjection projects readiness with the default assumptions: 7%
// return, 3% inflation, 4% withdrawal rate.
func (pl *PlanningCalculator) RetirementProjection() domain.MetricResult {
	return pl.RetirementProjectionAssuming(defaultExpectedReturn, defaultInflation, defaultWithdrawalRate)
}

// RetirementProjectionAssuming projects readiness under explicit return,
// inflation, and withdrawal assumptions. The sustainable monthly withdrawal
// from the projected nest egg is compared against 75% of current expenses.
func (pl *PlanningCalculator) RetirementProjectionAssuming(expectedReturn, inflation, withdrawalRate decimal.Decimal) domain.MetricResult {
	yearsToRetirement := pl.data.Profile.YearsToRetirement()

	retirementAssets := pl.retirementAssets()
	annualContribution := pl.data.Income.TotalAnnualIncome().Mul(assumedSavingsRate)

	realReturn := expectedReturn.Sub(inflation)
	projectedNestEgg := projectNestEgg(retirementAssets, annualContribution, realReturn, yearsToRetirement)

	monthlyWithdrawal := projectedNestEgg.Mul(withdrawalRate).Div(decimal.NewFromInt(12))
	targetMonthly := pl.data.Expenses.TotalMonthlyExpenses().Mul(retirementExpenseRatio)

	replacementRatio := decimal.NewFromInt(100)
	if targetMonthly.GreaterThan(decimal.Zero) {
		replacementRatio = monthlyWithdrawal.Div(targetMonthly).Mul(decimal.NewFromInt(100))
	}

	status := replacementStatus(replacementRatio)

	var recommendations []string
	if replacementRatio.LessThan(decimal.NewFromInt(100)) {
		gap := targetMonthly.Sub(monthlyWithdrawal)
		recommendations = append(recommendations,
			fmt.Sprintf("Projected shortfall of %s/month in retirement", domain.FormatCurrency(gap)))

		// Invert the contribution annuity to estimate the extra monthly
		// savings needed to close the gap.
		if withdrawalRate.GreaterThan(decimal.Zero) && realReturn.GreaterThan(decimal.Zero) && yearsToRetirement > 0 {
			annuityFactor := FVAnnuity(decimal.NewFromInt(1), yearsToRetirement, realReturn)
			if annuityFactor.GreaterThan(decimal.Zero) {
				neededNestEgg := gap.Div(withdrawalRate).Mul(decimal.NewFromInt(12))
				additionalMonthly := neededNestEgg.Div(annuityFactor).Div(decimal.NewFromInt(12))
				recommendations = append(recommendations,
					fmt.Sprintf("Increase monthly savings by ~%s to close gap", domain.FormatCurrency(additionalMonthly)))
			}
		}
	}
	if yearsToRetirement < 10 && replacementRatio.LessThan(decimal.NewFromInt(85)) {
		recommendations = append(recommendations, "Consider delaying retirement or reducing expenses")
	}

	benchmark := decimal.NewFromInt(100)
	return domain.MetricResult{
		Value:          replacementRatio,
		DisplayValue:   replacementRatio.StringFixed(0) + "% funded",
		Status:         status,
		Benchmark:      &benchmark,
		BenchmarkLabel: "100% = fully funded retirement",
		Description: fmt.Sprintf("Projected nest egg: %s | Monthly income: %s",
			domain.FormatCurrency(projectedNestEgg), domain.FormatCurrency(monthlyWithdrawal)),
		Recommendations: recommendations,
	}
}

// RetirementStressTest reruns the projection with pessimistic assumptions
// (5% return, 3.5% inflation) and maps the base/pessimistic pair to a
// discrete success probability.
func (pl *PlanningCalculator) RetirementStressTest() domain.MetricResult {
	base := pl.RetirementProjection()
	pessimistic := pl.RetirementProjectionAssuming(
		decimal.NewFromFloat(0.05), decimal.NewFromFloat(0.035), defaultWithdrawalRate)

	var successProbability int64
	var status domain.HealthStatus
	switch {
	case base.Value.GreaterThanOrEqual(decimal.NewFromInt(100)) && pessimistic.Value.GreaterThanOrEqual(decimal.NewFromInt(85)):
		successProbability, status = 90, domain.StatusExcellent
	case base.Value.GreaterThanOrEqual(decimal.NewFromInt(90)) && pessimistic.Value.GreaterThanOrEqual(decimal.NewFromInt(70)):
		successProbability, status = 75, domain.StatusGood
	case base.Value.GreaterThanOrEqual(decimal.NewFromInt(80)) && pessimistic.Value.GreaterThanOrEqual(decimal.NewFromInt(60)):
		successProbability, status = 60, domain.StatusFair
	case base.Value.GreaterThanOrEqual(decimal.NewFromInt(60)):
		successProbability, status = 45, domain.StatusPoor
	default:
		successProbability, status = 30, domain.StatusCritical
	}

	var recommendations []string
	if successProbability < 75 {
		recommendations = append(recommendations, "Plan shows vulnerability to market downturns")
	}
	if successProbability < 60 {
		recommendations = append(recommendations,
			"Consider building larger safety margin",
			"Explore part-time work options in early retirement")
	}
	if pl.data.Profile.YearsToRetirement() < 5 {
		recommendations = append(recommendations, "High sequence-of-returns risk - consider de-risking portfolio")
	}

	benchmark := decimal.NewFromInt(80)
	return domain.MetricResult{
		Value:          decimal.NewFromInt(successProbability),
		DisplayValue:   fmt.Sprintf("%d%% success rate", successProbability),
		Status:         status,
		Benchmark:      &benchmark,
		BenchmarkLabel: "80%+ success rate recommended",
		Description: fmt.Sprintf("Base case: %s%% funded | Stress test: %s%% funded",
			base.Value.StringFixed(0), pessimistic.Value.StringFixed(0)),
		Recommendations: recommendations,
	}
}

// GoalProgress evaluates a single goal: funded share versus the pace needed
// to reach the target by its date.
func (pl *PlanningCalculator) GoalProgress(goal domain.GoalData) domain.MetricResult {
	if goal.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return domain.MetricResult{
			Value:           decimal.Zero,
			DisplayValue:    "N/A",
			Status:          domain.StatusFair,
			Description:     "Goal target not set",
			Recommendations: []string{"Set a specific target amount for this goal"},
		}
	}

	progressPct := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100))
	daysTotal := int(goal.TargetDate.Sub(pl.asOf).Hours() / 24)

	var status domain.HealthStatus
	onTrack := false
	var requiredMonthly decimal.Decimal

	if daysTotal <= 0 {
		if progressPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			status = domain.StatusExcellent
			onTrack = true
		} else {
			status = domain.StatusCritical
		}
	} else {
		monthsRemaining := decimal.NewFromInt(int64(daysTotal)).Div(decimal.NewFromInt(30))
		if monthsRemaining.LessThan(decimal.NewFromInt(1)) {
			monthsRemaining = decimal.NewFromInt(1)
		}
		remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
		requiredMonthly = remaining.Div(monthsRemaining)

		if goal.MonthlyContribution.GreaterThanOrEqual(requiredMonthly) {
			onTrack = true
			if progressPct.GreaterThanOrEqual(decimal.NewFromInt(75)) {
				status = domain.StatusExcellent
			} else {
				status = domain.StatusGood
			}
		} else {
			shortfallRatio := decimal.Zero
			if requiredMonthly.GreaterThan(decimal.Zero) {
				shortfallRatio = goal.MonthlyContribution.Div(requiredMonthly)
			}
			switch {
			case shortfallRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.8)):
				status = domain.StatusFair
			case shortfallRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
				status = domain.StatusPoor
			default:
				status = domain.StatusCritical
			}
		}
	}

	var recommendations []string
	if !onTrack && daysTotal > 0 {
		gap := requiredMonthly.Sub(goal.MonthlyContribution)
		recommendations = append(recommendations,
			fmt.Sprintf("Increase monthly contribution by %s to stay on track", domain.FormatCurrency(gap)))
	}

	benchmark := decimal.NewFromInt(100)
	return domain.MetricResult{
		Value:          progressPct,
		DisplayValue:   domain.FormatPercent(progressPct, 0),
		Status:         status,
		Benchmark:      &benchmark,
		BenchmarkLabel: "100% = goal achieved",
		Description: fmt.Sprintf("%s of %s saved",
			domain.FormatCurrency(goal.CurrentAmount), domain.FormatCurrency(goal.TargetAmount)),
		Recommendations: recommendations,
	}
}

// AllGoalsProgress returns the progress metric for every goal, in snapshot
// order.
func (pl *PlanningCalculator) AllGoalsProgress() []domain.SectionMetric {
	results := make([]domain.SectionMetric, 0, len(pl.data.Goals))
	for _, goal := range pl.data.Goals {
		results = append(results, domain.SectionMetric{
			ID:     domain.GoalMetricID(goal.GoalID),
			Result: pl.GoalProgress(goal),
		})
	}
	return results
}

// ScenarioInputs perturbs the retirement projection. Percent changes are in
// points (e.g. -10 for a 10% income cut); MarketReturnChange is an absolute
// delta on the 7% return assumption (e.g. -0.02).
type ScenarioInputs struct {
	IncomeChangePct     decimal.Decimal
	ExpenseChangePct    decimal.Decimal
	MarketReturnChange  decimal.Decimal
	RetirementAgeChange int
}

// ScenarioAnalysis recomputes the retirement projection with perturbed
// inputs and reports the replacement ratio change versus the base case.
func (pl *PlanningCalculator) ScenarioAnalysis(inputs ScenarioInputs) domain.MetricResult {
	base := pl.RetirementProjection()

	modifiedReturn := defaultExpectedReturn.Add(inputs.MarketReturnChange)
	modifiedRetirementAge := pl.data.Profile.RetirementAge + inputs.RetirementAgeChange
	yearsToRetirement := modifiedRetirementAge - pl.data.Profile.Age

	hundred := decimal.NewFromInt(100)
	modifiedIncome := pl.data.Income.TotalAnnualIncome().
		Mul(decimal.NewFromInt(1).Add(inputs.IncomeChangePct.Div(hundred)))
	annualContribution := modifiedIncome.Mul(assumedSavingsRate)
	modifiedExpenses := pl.data.Expenses.TotalMonthlyExpenses().
		Mul(decimal.NewFromInt(1).Add(inputs.ExpenseChangePct.Div(hundred)))

	realReturn := modifiedReturn.Sub(defaultInflation)
	projectedNestEgg := projectNestEgg(pl.retirementAssets(), annualContribution, realReturn, yearsToRetirement)

	monthlyWithdrawal := projectedNestEgg.Mul(defaultWithdrawalRate).Div(decimal.NewFromInt(12))
	targetMonthly := modifiedExpenses.Mul(retirementExpenseRatio)

	modifiedReplacement := hundred
	if targetMonthly.GreaterThan(decimal.Zero) {
		modifiedReplacement = monthlyWithdrawal.Div(targetMonthly).Mul(hundred)
	}

	change := modifiedReplacement.Sub(base.Value)
	status := replacementStatus(modifiedReplacement)

	var parts []string
	if !inputs.IncomeChangePct.IsZero() {
		parts = append(parts, fmt.Sprintf("Income %s%%", signedFixed(inputs.IncomeChangePct, 0)))
	}
	if !inputs.ExpenseChangePct.IsZero() {
		parts = append(parts, fmt.Sprintf("Expenses %s%%", signedFixed(inputs.ExpenseChangePct, 0)))
	}
	if !inputs.MarketReturnChange.IsZero() {
		parts = append(parts, fmt.Sprintf("Returns %s%%", signedFixed(inputs.MarketReturnChange.Mul(hundred), 1)))
	}
	if inputs.RetirementAgeChange != 0 {
		parts = append(parts, fmt.Sprintf("Retire at %d", modifiedRetirementAge))
	}
	description := "Base scenario"
	if len(parts) > 0 {
		description = strings.Join(parts, " | ")
	}

	direction := "worsens"
	if change.GreaterThan(decimal.Zero) {
		direction = "improves"
	}

	return domain.MetricResult{
		Value:          modifiedReplacement,
		DisplayValue:   modifiedReplacement.StringFixed(0) + "% funded",
		Status:         status,
		Benchmark:      &base.Value,
		BenchmarkLabel: fmt.Sprintf("Base case: %s%%", base.Value.StringFixed(0)),
		Trend:          &change,
		Description:    description,
		Recommendations: []string{
			fmt.Sprintf("This scenario %s outlook by %s%%", direction, change.Abs().StringFixed(0)),
		},
	}
}

func signedFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}

// SectionSummary aggregates retirement metrics at double weight and each
// goal at single weight.
func (pl *PlanningCalculator) SectionSummary() domain.SectionSummary {
	two := decimal.NewFromInt(2)
	metrics := []weightedMetric{
		weighted(domain.MetricRetirementProjection, pl.RetirementProjection(), two),
		weighted(domain.MetricStressTest, pl.RetirementStressTest(), two),
	}
	for _, goal := range pl.data.Goals {
		metrics = append(metrics, unit(domain.GoalMetricID(goal.GoalID), pl.GoalProgress(goal)))
	}

	return summarize(
		"Future Planning & Projections",
		"Are they on track for their goals?",
		metrics)
}
