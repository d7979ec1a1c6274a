package calculation

import (
	"fmt"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Historical splits are estimated when only monthly totals are known.
var (
	historicalFixedShare         = decimal.NewFromFloat(0.7)
	historicalDiscretionaryShare = decimal.NewFromFloat(0.3)
	assumedIncomeGrowthPct       = decimal.NewFromFloat(3.0) // typical annual raise
)

// CashFlowCalculator scores Section 2: Cash Flow & Spending Behavior. The
// optional historical series holds monthly expense totals, oldest first, and
// enables trend deltas and lifestyle creep detection.
type CashFlowCalculator struct {
	data               domain.ClientData
	historicalExpenses []decimal.Decimal
}

// NewCashFlowCalculator builds a calculator. historicalExpenses may be nil.
func NewCashFlowCalculator(data domain.ClientData, historicalExpenses []decimal.Decimal) *CashFlowCalculator {
	return &CashFlowCalculator{data: data, historicalExpenses: historicalExpenses}
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// lastYearAverage returns the average of the first twelve historical months,
// or false when fewer than twelve months exist.
func (cf *CashFlowCalculator) lastYearAverage() (decimal.Decimal, bool) {
	if len(cf.historicalExpenses) < 12 {
		return decimal.Zero, false
	}
	return average(cf.historicalExpenses[:12]), true
}

// savingsRateTargetPct scales the savings target by the retirement runway:
// a shorter runway demands a higher rate.
func (cf *CashFlowCalculator) savingsRateTargetPct() decimal.Decimal {
	yearsToRetirement := cf.data.Profile.YearsToRetirement()
	switch {
	case yearsToRetirement < 15:
		return decimal.NewFromInt(25)
	case yearsToRetirement < 25:
		return decimal.NewFromInt(20)
	default:
		return decimal.NewFromInt(15)
	}
}

// SavingsRate measures (income - expenses) / income as a percentage against
// a timeline-scaled target.
func (cf *CashFlowCalculator) SavingsRate() domain.MetricResult {
	monthlyIncome := cf.data.Income.MonthlyIncome()
	monthlyExpenses := cf.data.Expenses.TotalMonthlyExpenses()

	rate := decimal.Zero
	if monthlyIncome.GreaterThan(decimal.Zero) {
		rate = monthlyIncome.Sub(monthlyExpenses).Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	}

	var delta *decimal.Decimal
	var deltaIsPositive *bool
	if lastYearAvg, ok := cf.lastYearAverage(); ok {
		lastYearRate := decimal.Zero
		if monthlyIncome.GreaterThan(decimal.Zero) {
			lastYearRate = monthlyIncome.Sub(lastYearAvg).Div(monthlyIncome).Mul(decimal.NewFromInt(100))
		}
		d := rate.Sub(lastYearRate).Abs()
		better := rate.GreaterThanOrEqual(lastYearRate) // higher savings rate is better
		delta, deltaIsPositive = &d, &better
	}

	target := cf.savingsRateTargetPct()
	var status domain.HealthStatus
	switch {
	case rate.GreaterThanOrEqual(target.Add(decimal.NewFromInt(5))):
		status = domain.StatusExcellent
	case rate.GreaterThanOrEqual(target):
		status = domain.StatusGood
	case rate.GreaterThanOrEqual(target.Sub(decimal.NewFromInt(5))):
		status = domain.StatusFair
	case rate.GreaterThan(decimal.Zero):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if rate.LessThan(target) {
		gap := target.Sub(rate).Mul(monthlyIncome).Div(decimal.NewFromInt(100))
		recommendations = append(recommendations,
			fmt.Sprintf("Increase monthly savings by %s to reach %s%% target",
				domain.FormatCurrency(gap), target.StringFixed(0)))
	}
	if rate.LessThan(decimal.NewFromInt(10)) {
		recommendations = append(recommendations,
			"Review discretionary spending for potential cuts",
			"Consider automating savings transfers")
	}

	return domain.MetricResult{
		Value:           rate,
		DisplayValue:    domain.FormatPercent(rate, 1),
		Status:          status,
		Benchmark:       &target,
		BenchmarkLabel:  fmt.Sprintf("%s%% target for your timeline", target.StringFixed(0)),
		Description:     fmt.Sprintf("Monthly savings: %s", domain.FormatCurrency(monthlyIncome.Sub(monthlyExpenses))),
		Recommendations: recommendations,
		Delta:           delta,
		DeltaIsPositive: deltaIsPositive,
	}
}

// FixedCostRatio measures essential expenses against income. Under 50%
// preserves flexibility.
func (cf *CashFlowCalculator) FixedCostRatio() domain.MetricResult {
	fixed := cf.data.Expenses.FixedExpenses()
	monthlyIncome := cf.data.Income.MonthlyIncome()

	var ratio decimal.Decimal
	if monthlyIncome.GreaterThan(decimal.Zero) {
		ratio = fixed.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	} else if fixed.GreaterThan(decimal.Zero) {
		ratio = decimal.NewFromInt(100)
	}

	var delta *decimal.Decimal
	var deltaIsPositive *bool
	if lastYearAvg, ok := cf.lastYearAverage(); ok {
		lastYearFixed := lastYearAvg.Mul(historicalFixedShare)
		lastYearRatio := decimal.Zero
		if monthlyIncome.GreaterThan(decimal.Zero) {
			lastYearRatio = lastYearFixed.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
		}
		d := ratio.Sub(lastYearRatio).Abs()
		better := ratio.LessThanOrEqual(lastYearRatio) // lower fixed cost ratio is better
		delta, deltaIsPositive = &d, &better
	}

	var status domain.HealthStatus
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromInt(40)):
		status = domain.StatusExcellent
	case ratio.LessThanOrEqual(decimal.NewFromInt(50)):
		status = domain.StatusGood
	case ratio.LessThanOrEqual(decimal.NewFromInt(60)):
		status = domain.StatusFair
	case ratio.LessThanOrEqual(decimal.NewFromInt(75)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if ratio.GreaterThan(decimal.NewFromInt(50)) {
		recommendations = append(recommendations, "Fixed costs exceeding 50% limits flexibility")
	}
	if monthlyIncome.GreaterThan(decimal.Zero) &&
		cf.data.Expenses.Housing.Div(monthlyIncome).GreaterThan(decimal.NewFromFloat(0.28)) {
		recommendations = append(recommendations, "Housing costs exceed recommended 28% of income")
	}
	if ratio.GreaterThan(decimal.NewFromInt(60)) {
		recommendations = append(recommendations, "Consider reducing fixed costs through refinancing or downsizing")
	}

	benchmark := decimal.NewFromInt(50)
	return domain.MetricResult{
		Value:           ratio,
		DisplayValue:    domain.FormatPercent(ratio, 1),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "50% or less recommended",
		Description:     fmt.Sprintf("Monthly fixed costs: %s", domain.FormatCurrency(fixed)),
		Recommendations: recommendations,
		Delta:           delta,
		DeltaIsPositive: deltaIsPositive,
	}
}

// DiscretionarySpending compares lifestyle spending to the budget left after
// fixed costs and a 20% savings target.
func (cf *CashFlowCalculator) DiscretionarySpending() domain.MetricResult {
	discretionary := cf.data.Expenses.DiscretionaryExpenses()
	monthlyIncome := cf.data.Income.MonthlyIncome()

	ratio := decimal.Zero
	if monthlyIncome.GreaterThan(decimal.Zero) {
		ratio = discretionary.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	}

	var delta *decimal.Decimal
	var deltaIsPositive *bool
	if lastYearAvg, ok := cf.lastYearAverage(); ok {
		lastYearDisc := lastYearAvg.Mul(historicalDiscretionaryShare)
		lastYearRatio := decimal.Zero
		if monthlyIncome.GreaterThan(decimal.Zero) {
			lastYearRatio = lastYearDisc.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
		}
		d := ratio.Sub(lastYearRatio).Abs()
		better := ratio.LessThanOrEqual(lastYearRatio)
		delta, deltaIsPositive = &d, &better
	}

	savingsTarget := decimal.NewFromInt(20)
	fixedRatio := decimal.Zero
	if monthlyIncome.GreaterThan(decimal.Zero) {
		fixedRatio = cf.data.Expenses.FixedExpenses().Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	}
	available := decimal.NewFromInt(100).Sub(fixedRatio).Sub(savingsTarget)

	var status domain.HealthStatus
	switch {
	case ratio.LessThanOrEqual(available.Mul(decimal.NewFromFloat(0.7))):
		status = domain.StatusExcellent
	case ratio.LessThanOrEqual(available):
		status = domain.StatusGood
	case ratio.LessThanOrEqual(available.Mul(decimal.NewFromFloat(1.2))):
		status = domain.StatusFair
	case ratio.LessThanOrEqual(available.Mul(decimal.NewFromFloat(1.5))):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if ratio.GreaterThan(available) {
		excess := discretionary.Sub(available.Mul(monthlyIncome).Div(decimal.NewFromInt(100)))
		recommendations = append(recommendations,
			fmt.Sprintf("Discretionary spending %s/mo over budget", domain.FormatCurrency(excess)))
	}

	// Flag the single largest category when it dominates the total. "Other"
	// is excluded from the breakdown on purpose.
	categories := []struct {
		name  string
		value decimal.Decimal
	}{
		{"Entertainment", cf.data.Expenses.Entertainment},
		{"Dining out", cf.data.Expenses.DiningOut},
		{"Shopping", cf.data.Expenses.Shopping},
		{"Travel", cf.data.Expenses.Travel},
		{"Subscriptions", cf.data.Expenses.Subscriptions},
	}
	top := categories[0]
	for _, c := range categories[1:] {
		if c.value.GreaterThan(top.value) {
			top = c
		}
	}
	if top.value.GreaterThan(discretionary.Mul(decimal.NewFromFloat(0.4))) {
		share := top.value.Div(discretionary).Mul(decimal.NewFromInt(100))
		recommendations = append(recommendations,
			fmt.Sprintf("%s accounts for %s%% of discretionary spending", top.name, share.StringFixed(0)))
	}

	return domain.MetricResult{
		Value:           ratio,
		DisplayValue:    domain.FormatPercent(ratio, 1),
		Status:          status,
		Benchmark:       &available,
		BenchmarkLabel:  fmt.Sprintf("%s%% available after fixed costs & savings", available.StringFixed(0)),
		Description:     fmt.Sprintf("Monthly discretionary: %s", domain.FormatCurrency(discretionary)),
		Recommendations: recommendations,
		Delta:           delta,
		DeltaIsPositive: deltaIsPositive,
	}
}

// GuiltFreeSpending computes the residual after fixed costs and the savings
// target: money that can be spent without derailing goals.
func (cf *CashFlowCalculator) GuiltFreeSpending() domain.MetricResult {
	monthlyIncome := cf.data.Income.MonthlyIncome()
	fixed := cf.data.Expenses.FixedExpenses()

	savingsRate := decimal.NewFromFloat(0.20)
	if cf.data.Profile.YearsToRetirement() < 15 {
		savingsRate = decimal.NewFromFloat(0.25)
	}

	targetSavings := monthlyIncome.Mul(savingsRate)
	guiltFree := monthlyIncome.Sub(fixed).Sub(targetSavings)

	var delta *decimal.Decimal
	var deltaIsPositive *bool
	if lastYearAvg, ok := cf.lastYearAverage(); ok {
		lastYearFixed := lastYearAvg.Mul(historicalFixedShare)
		lastYearGuiltFree := monthlyIncome.Sub(lastYearFixed).Sub(targetSavings)
		d := guiltFree.Sub(lastYearGuiltFree).Abs()
		better := guiltFree.GreaterThanOrEqual(lastYearGuiltFree) // more guilt-free money is better
		delta, deltaIsPositive = &d, &better
	}

	gfRatio := decimal.Zero
	if monthlyIncome.GreaterThan(decimal.Zero) {
		gfRatio = guiltFree.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	}

	var status domain.HealthStatus
	switch {
	case guiltFree.GreaterThanOrEqual(monthlyIncome.Mul(decimal.NewFromFloat(0.2))):
		status = domain.StatusExcellent
	case guiltFree.GreaterThanOrEqual(monthlyIncome.Mul(decimal.NewFromFloat(0.1))):
		status = domain.StatusGood
	case guiltFree.GreaterThan(decimal.Zero):
		status = domain.StatusFair
	default:
		status = domain.StatusPoor
	}

	var recommendations []string
	if guiltFree.LessThanOrEqual(decimal.Zero) {
		recommendations = append(recommendations,
			"Current budget leaves no room for guilt-free spending",
			"Review fixed costs to create breathing room")
	} else if guiltFree.LessThan(decimal.NewFromInt(500)) {
		recommendations = append(recommendations, "Consider ways to increase income or reduce fixed costs")
	}

	benchmark := monthlyIncome.Mul(decimal.NewFromFloat(0.15))
	return domain.MetricResult{
		Value:           guiltFree,
		DisplayValue:    domain.FormatCurrency(guiltFree) + "/mo",
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "~15% of income as guilt-free spending",
		Description:     fmt.Sprintf("%s%% of income available for fun", gfRatio.StringFixed(1)),
		Recommendations: recommendations,
		Delta:           delta,
		DeltaIsPositive: deltaIsPositive,
	}
}

// LifestyleCreepTracker compares expense growth to assumed income growth
// over the historical window. Requires twelve months of data.
func (cf *CashFlowCalculator) LifestyleCreepTracker() domain.MetricResult {
	if len(cf.historicalExpenses) < 12 {
		return domain.MetricResult{
			Value:           decimal.Zero,
			DisplayValue:    "Insufficient data",
			Status:          domain.StatusFair,
			Description:     "Need 12+ months of data for trend analysis",
			Recommendations: []string{"Continue tracking expenses to enable lifestyle creep detection"},
		}
	}

	var oldAvg, newAvg decimal.Decimal
	if len(cf.historicalExpenses) >= 24 {
		oldAvg = average(cf.historicalExpenses[:12])
		newAvg = average(cf.historicalExpenses[len(cf.historicalExpenses)-12:])
	} else {
		oldAvg = average(cf.historicalExpenses[:6])
		newAvg = average(cf.historicalExpenses[len(cf.historicalExpenses)-6:])
	}

	expenseGrowth := decimal.Zero
	if oldAvg.GreaterThan(decimal.Zero) {
		expenseGrowth = newAvg.Sub(oldAvg).Div(oldAvg).Mul(decimal.NewFromInt(100))
	}

	creepRate := expenseGrowth.Sub(assumedIncomeGrowthPct)

	var status domain.HealthStatus
	switch {
	case creepRate.LessThanOrEqual(decimal.Zero):
		status = domain.StatusExcellent
	case creepRate.LessThanOrEqual(decimal.NewFromInt(2)):
		status = domain.StatusGood
	case creepRate.LessThanOrEqual(decimal.NewFromInt(5)):
		status = domain.StatusFair
	case creepRate.LessThanOrEqual(decimal.NewFromInt(10)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if creepRate.GreaterThan(decimal.Zero) {
		recommendations = append(recommendations,
			fmt.Sprintf("Expenses growing %s%% faster than income", creepRate.StringFixed(1)))
	}
	if creepRate.GreaterThan(decimal.NewFromInt(5)) {
		recommendations = append(recommendations,
			"Consider implementing a spending freeze",
			"Review recent subscription additions")
	}

	benchmark := decimal.Zero
	return domain.MetricResult{
		Value:          creepRate,
		DisplayValue:   domain.FormatSignedPercent(creepRate, 1),
		Status:         status,
		Benchmark:      &benchmark,
		BenchmarkLabel: "Expenses should grow ≤ income growth",
		Trend:          &expenseGrowth,
		Description: fmt.Sprintf("Expense growth: %s%% vs income growth: %s%%",
			expenseGrowth.StringFixed(1), assumedIncomeGrowthPct.StringFixed(1)),
		Recommendations: recommendations,
	}
}

// SectionSummary aggregates the five cash-flow metrics, unweighted.
func (cf *CashFlowCalculator) SectionSummary() domain.SectionSummary {
	return summarize(
		"Cash Flow & Spending Behavior",
		"How healthy are their money habits?",
		[]weightedMetric{
			unit(domain.MetricSavingsRate, cf.SavingsRate()),
			unit(domain.MetricFixedCostRatio, cf.FixedCostRatio()),
			unit(domain.MetricDiscretionarySpending, cf.DiscretionarySpending()),
			unit(domain.MetricGuiltFreeSpending, cf.GuiltFreeSpending()),
			unit(domain.MetricLifestyleCreep, cf.LifestyleCreepTracker()),
		})
}
