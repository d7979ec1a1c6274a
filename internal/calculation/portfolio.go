package calculation

import (
	"fmt"
	"strings"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// PortfolioCalculator scores Section 3: Investment & Portfolio Health.
type PortfolioCalculator struct {
	data domain.ClientData
}

// NewPortfolioCalculator builds a calculator over the given snapshot.
func NewPortfolioCalculator(data domain.ClientData) *PortfolioCalculator {
	return &PortfolioCalculator{data: data}
}

// riskEquityAdjustments shifts the age-based equity target by stated risk
// tolerance, in percentage points.
var riskEquityAdjustments = map[domain.RiskLevel]int64{
	domain.RiskLow:      -15,
	domain.RiskModerate: 0,
	domain.RiskHigh:     10,
	domain.RiskCritical: 15,
}

// AllocationAppropriateness compares current equity allocation to an
// age-and-risk-based target: (110 - age) plus the risk offset, clamped to
// [20, 90].
func (pc *PortfolioCalculator) AllocationAppropriateness() domain.MetricResult {
	allocation := pc.data.PortfolioAllocation
	age := pc.data.Profile.Age
	yearsToRetirement := pc.data.Profile.YearsToRetirement()

	currentEquity := allocation.TotalEquity()
	currentFixed := allocation.TotalFixedIncome()

	targetEquity := int64(110-age) + riskEquityAdjustments[pc.data.Profile.RiskTolerance]
	if targetEquity < 20 {
		targetEquity = 20
	}
	if targetEquity > 90 {
		targetEquity = 90
	}
	target := decimal.NewFromInt(targetEquity)

	deviation := currentEquity.Sub(target).Abs()

	var status domain.HealthStatus
	switch {
	case deviation.LessThanOrEqual(decimal.NewFromInt(5)):
		status = domain.StatusExcellent
	case deviation.LessThanOrEqual(decimal.NewFromInt(10)):
		status = domain.StatusGood
	case deviation.LessThanOrEqual(decimal.NewFromInt(20)):
		status = domain.StatusFair
	case deviation.LessThanOrEqual(decimal.NewFromInt(30)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if currentEquity.GreaterThan(target.Add(decimal.NewFromInt(10))) {
		recommendations = append(recommendations,
			fmt.Sprintf("Portfolio is %s%% overweight equities for your profile", currentEquity.Sub(target).StringFixed(0)),
			"Consider rebalancing to reduce risk exposure")
	} else if currentEquity.LessThan(target.Sub(decimal.NewFromInt(10))) {
		recommendations = append(recommendations,
			fmt.Sprintf("Portfolio is %s%% underweight equities", target.Sub(currentEquity).StringFixed(0)),
			"May be missing growth potential given your time horizon")
	}
	if yearsToRetirement < 10 && currentEquity.GreaterThan(decimal.NewFromInt(60)) {
		recommendations = append(recommendations, "Consider reducing equity exposure as retirement approaches")
	}

	return domain.MetricResult{
		Value:          currentEquity,
		DisplayValue:   fmt.Sprintf("%s%% Equity / %s%% Fixed", currentEquity.StringFixed(0), currentFixed.StringFixed(0)),
		Status:         status,
		Benchmark:      &target,
		BenchmarkLabel: fmt.Sprintf("Target: %s%% equity for your profile", target.StringFixed(0)),
		Description: fmt.Sprintf("Current allocation vs recommended for age %d with %s risk tolerance",
			age, pc.data.Profile.RiskTolerance),
		Recommendations: recommendations,
	}
}

// ConcentrationRisk measures company stock as a share of investable assets,
// reported as a diversification score where higher is better.
func (pc *PortfolioCalculator) ConcentrationRisk() domain.MetricResult {
	assets := pc.data.Assets
	totalInvestments := assets.InvestmentAssets().Add(assets.CompanyStockTotal())

	if totalInvestments.IsZero() {
		return domain.MetricResult{
			Value:           decimal.Zero,
			DisplayValue:    "N/A",
			Status:          domain.StatusFair,
			Description:     "No investment assets to evaluate",
			Recommendations: []string{"Start building investment portfolio"},
		}
	}

	companyStockPct := assets.CompanyStockTotal().Div(totalInvestments).Mul(decimal.NewFromInt(100))

	var score int64
	var status domain.HealthStatus
	switch {
	case companyStockPct.LessThanOrEqual(decimal.NewFromInt(5)):
		score, status = 95, domain.StatusExcellent
	case companyStockPct.LessThanOrEqual(decimal.NewFromInt(10)):
		score, status = 80, domain.StatusGood
	case companyStockPct.LessThanOrEqual(decimal.NewFromInt(20)):
		score, status = 60, domain.StatusFair
	case companyStockPct.LessThanOrEqual(decimal.NewFromInt(35)):
		score, status = 35, domain.StatusPoor
	default:
		score, status = 15, domain.StatusCritical
	}

	var recommendations []string
	if companyStockPct.GreaterThan(decimal.NewFromInt(10)) {
		excess := assets.CompanyStockTotal().Sub(totalInvestments.Mul(decimal.NewFromFloat(0.10)))
		recommendations = append(recommendations,
			fmt.Sprintf("Company stock at %s%% - consider diversifying %s",
				companyStockPct.StringFixed(0), domain.FormatCurrency(excess)))
	}
	if companyStockPct.GreaterThan(decimal.NewFromInt(20)) {
		recommendations = append(recommendations,
			"High company stock concentration adds employment + investment risk",
			"Consider 10b5-1 plan for systematic diversification")
	}
	if assets.RSUUnvested.GreaterThan(assets.CompanyStockVested) {
		recommendations = append(recommendations, "Monitor RSU vesting schedule for diversification planning")
	}

	benchmark := decimal.NewFromInt(80)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    fmt.Sprintf("%d/100", score),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "80+ score recommended",
		Description:     fmt.Sprintf("Company stock: %s%% of portfolio", companyStockPct.StringFixed(1)),
		Recommendations: recommendations,
	}
}

// ExpenseRatioDrag evaluates the weighted expense ratio and estimates its
// 30-year compounded cost against a 0.10% benchmark.
func (pc *PortfolioCalculator) ExpenseRatioDrag() domain.MetricResult {
	expenseRatio := pc.data.PortfolioMetrics.WeightedExpenseRatio
	totalInvestments := pc.data.Assets.InvestmentAssets()

	annualCost := totalInvestments.Mul(expenseRatio.Div(decimal.NewFromInt(100)))

	var status domain.HealthStatus
	switch {
	case expenseRatio.LessThanOrEqual(decimal.NewFromFloat(0.10)):
		status = domain.StatusExcellent
	case expenseRatio.LessThanOrEqual(decimal.NewFromFloat(0.25)):
		status = domain.StatusGood
	case expenseRatio.LessThanOrEqual(decimal.NewFromFloat(0.50)):
		status = domain.StatusFair
	case expenseRatio.LessThanOrEqual(decimal.NewFromInt(1)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	// Compound both ratios forward 30 years at a 7% gross return; the
	// difference is the lifetime cost of the fee drag.
	const horizonYears = 30
	grossReturn := decimal.NewFromFloat(0.07)
	benchmarkRatio := decimal.NewFromFloat(0.10)
	netCurrent := grossReturn.Sub(expenseRatio.Div(decimal.NewFromInt(100)))
	netOptimal := grossReturn.Sub(benchmarkRatio.Div(decimal.NewFromInt(100)))
	fvCurrent := FVLumpSum(totalInvestments, horizonYears, netCurrent)
	fvOptimal := FVLumpSum(totalInvestments, horizonYears, netOptimal)
	lifetimeCost := fvOptimal.Sub(fvCurrent)

	var recommendations []string
	if expenseRatio.GreaterThan(decimal.NewFromFloat(0.25)) {
		recommendations = append(recommendations,
			fmt.Sprintf("Annual fee drag: %s", domain.FormatCurrency(annualCost)),
			fmt.Sprintf("Potential 30-year impact: %s", domain.FormatCurrency(lifetimeCost)))
	}
	if expenseRatio.GreaterThan(decimal.NewFromFloat(0.50)) {
		recommendations = append(recommendations, "Consider switching to low-cost index funds")
	}
	if expenseRatio.GreaterThan(decimal.NewFromInt(1)) {
		recommendations = append(recommendations, "Review actively managed funds - most underperform after fees")
	}

	benchmark := decimal.NewFromFloat(0.20)
	return domain.MetricResult{
		Value:           expenseRatio,
		DisplayValue:    domain.FormatPercent(expenseRatio, 2),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "0.20% or less recommended",
		Description:     fmt.Sprintf("Annual fee impact: %s", domain.FormatCurrency(annualCost)),
		Recommendations: recommendations,
	}
}

// TaxEfficiency reports the stored asset-location score directly.
func (pc *PortfolioCalculator) TaxEfficiency() domain.MetricResult {
	score := pc.data.PortfolioMetrics.TaxEfficiencyScore

	var status domain.HealthStatus
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(85)):
		status = domain.StatusExcellent
	case score.GreaterThanOrEqual(decimal.NewFromInt(70)):
		status = domain.StatusGood
	case score.GreaterThanOrEqual(decimal.NewFromInt(50)):
		status = domain.StatusFair
	case score.GreaterThanOrEqual(decimal.NewFromInt(30)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if score.LessThan(decimal.NewFromInt(70)) {
		recommendations = append(recommendations, "Consider asset location optimization")
	}
	if score.LessThan(decimal.NewFromInt(50)) {
		recommendations = append(recommendations,
			"Place bonds and REITs in tax-advantaged accounts",
			"Hold tax-efficient index funds in taxable accounts")
	}
	if pc.data.Assets.BrokerageTaxable.GreaterThan(decimal.NewFromInt(100000)) {
		recommendations = append(recommendations, "Review taxable accounts for tax-loss harvesting opportunities")
	}

	benchmark := decimal.NewFromInt(80)
	return domain.MetricResult{
		Value:           score,
		DisplayValue:    score.StringFixed(0) + "/100",
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "80+ score for optimal tax efficiency",
		Description:     "Asset location optimization score",
		Recommendations: recommendations,
	}
}

// IlliquidNetWorth measures illiquid assets as a share of net worth. Some
// illiquidity is fine; too much limits flexibility.
func (pc *PortfolioCalculator) IlliquidNetWorth() domain.MetricResult {
	illiquid := pc.data.Assets.IlliquidAssets()
	totalNW := pc.data.NetWorth()

	illiquidPct := decimal.Zero
	if totalNW.GreaterThan(decimal.Zero) {
		illiquidPct = illiquid.Div(totalNW).Mul(decimal.NewFromInt(100))
	}

	var status domain.HealthStatus
	switch {
	case illiquidPct.LessThanOrEqual(decimal.NewFromInt(30)):
		status = domain.StatusExcellent
	case illiquidPct.LessThanOrEqual(decimal.NewFromInt(50)):
		status = domain.StatusGood
	case illiquidPct.LessThanOrEqual(decimal.NewFromInt(70)):
		status = domain.StatusFair
	case illiquidPct.LessThanOrEqual(decimal.NewFromInt(85)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if illiquidPct.GreaterThan(decimal.NewFromInt(50)) {
		recommendations = append(recommendations,
			fmt.Sprintf("%s%% of net worth is illiquid - may limit flexibility", illiquidPct.StringFixed(0)))
	}
	if illiquidPct.GreaterThan(decimal.NewFromInt(70)) {
		recommendations = append(recommendations, "Consider building liquid assets before additional illiquid investments")
	}
	if pc.data.Assets.RealEstatePrimary.GreaterThan(totalNW.Mul(decimal.NewFromFloat(0.5))) {
		recommendations = append(recommendations, "Primary residence represents significant portion of net worth")
	}

	benchmark := decimal.NewFromInt(40)
	return domain.MetricResult{
		Value:           illiquidPct,
		DisplayValue:    domain.FormatPercent(illiquidPct, 0),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "40% or less in illiquid assets",
		Description:     fmt.Sprintf("Illiquid assets: %s", domain.FormatCurrency(illiquid)),
		Recommendations: recommendations,
	}
}

// BehavioralFlags deducts from a perfect score for overtrading, high
// turnover, and concentration, surfacing habit problems the other metrics
// only imply.
func (pc *PortfolioCalculator) BehavioralFlags() domain.MetricResult {
	metrics := pc.data.PortfolioMetrics
	var flags []string
	score := int64(100)

	if metrics.TradesLast12Months > 50 {
		flags = append(flags, "High trading activity (50+ trades/year)")
		score -= 25
	} else if metrics.TradesLast12Months > 24 {
		flags = append(flags, "Elevated trading activity")
		score -= 10
	}

	if metrics.AnnualTurnover.GreaterThan(decimal.NewFromInt(100)) {
		flags = append(flags, fmt.Sprintf("High portfolio turnover (%s%%)", metrics.AnnualTurnover.StringFixed(0)))
		score -= 20
	} else if metrics.AnnualTurnover.GreaterThan(decimal.NewFromInt(50)) {
		flags = append(flags, "Moderate-high portfolio turnover")
		score -= 10
	}

	if metrics.ConcentrationScore.LessThan(decimal.NewFromInt(50)) {
		flags = append(flags, "Portfolio concentration may indicate conviction bias")
		score -= 15
	}

	if score < 0 {
		score = 0
	}

	var status domain.HealthStatus
	switch {
	case score >= 85:
		status = domain.StatusExcellent
	case score >= 70:
		status = domain.StatusGood
	case score >= 50:
		status = domain.StatusFair
	case score >= 30:
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if metrics.TradesLast12Months > 24 {
		recommendations = append(recommendations, "Consider reducing trading frequency - costs add up")
	}
	if metrics.AnnualTurnover.GreaterThan(decimal.NewFromInt(50)) {
		recommendations = append(recommendations, "High turnover creates tax drag and trading costs")
	}
	if len(flags) == 0 {
		flags = append(flags, "No behavioral red flags detected")
	}

	description := flags[0]
	if len(flags) > 1 {
		description = strings.Join(flags[:2], "; ")
	}

	benchmark := decimal.NewFromInt(85)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    fmt.Sprintf("%d/100", score),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "85+ indicates disciplined investing",
		Description:     description,
		Recommendations: recommendations,
	}
}

// SectionSummary aggregates the six portfolio metrics, unweighted.
func (pc *PortfolioCalculator) SectionSummary() domain.SectionSummary {
	return summarize(
		"Investment & Portfolio Health",
		"Is their money working efficiently?",
		[]weightedMetric{
			unit(domain.MetricAllocation, pc.AllocationAppropriateness()),
			unit(domain.MetricConcentrationRisk, pc.ConcentrationRisk()),
			unit(domain.MetricExpenseRatio, pc.ExpenseRatioDrag()),
			unit(domain.MetricTaxEfficiency, pc.TaxEfficiency()),
			unit(domain.MetricIlliquidAssets, pc.IlliquidNetWorth()),
			unit(domain.MetricBehavioralFlags, pc.BehavioralFlags()),
		})
}
