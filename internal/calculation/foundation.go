package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Life insurance needs-based calculation constants.
var (
	insuranceDiscountRate    = decimal.NewFromFloat(0.035) // 3.5% real return
	taxHaircutRetirement     = decimal.NewFromFloat(0.25)  // tax on retirement account withdrawals
	discountCompanyStock     = decimal.NewFromFloat(0.50)  // haircut on vested company stock
	discountInvestmentRE     = decimal.NewFromFloat(0.30)  // illiquidity discount on investment real estate
	expenseReductionPostKids = decimal.NewFromFloat(0.70)  // expense level after dependents are independent
)

const (
	independenceAge             = 18
	defaultYoungestDependentAge = 5
)

var educationKeywords = []string{"college", "education", "university"}

func isEducationGoal(goal domain.GoalData) bool {
	name := strings.ToLower(goal.Name)
	for _, kw := range educationKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// InsuranceNeed breaks down the needs-based life insurance calculation so
// callers can show their work.
type InsuranceNeed struct {
	OutstandingLoans decimal.Decimal
	EducationGoals   decimal.Decimal
	PVExpensesPhase1 decimal.Decimal
	PVExpensesPhase2 decimal.Decimal
	TotalPVExpenses  decimal.Decimal
	Phase1Years      int
	Phase2Years      int
	DiscountedAssets decimal.Decimal
	GrossNeed        decimal.Decimal
	NetNeed          decimal.Decimal
	MinimumFloor     decimal.Decimal
	FinalNeed        decimal.Decimal
	SelfInsured      bool
	ExistingCoverage decimal.Decimal
}

// FoundationCalculator scores Section 1: Financial Foundation & Safety Net.
// It is a pure function of the snapshot it was built with.
type FoundationCalculator struct {
	data domain.ClientData
	asOf time.Time
}

// NewFoundationCalculator builds a calculator evaluated as of today.
func NewFoundationCalculator(data domain.ClientData) *FoundationCalculator {
	return NewFoundationCalculatorAt(data, time.Now())
}

// NewFoundationCalculatorAt builds a calculator evaluated at a fixed date.
func NewFoundationCalculatorAt(data domain.ClientData, asOf time.Time) *FoundationCalculator {
	return &FoundationCalculator{data: data, asOf: asOf}
}

// yearsUntilDependentsIndependent estimates years until the youngest
// dependent turns 18. Education goal dates are used to back-calculate ages;
// without any, the youngest dependent is assumed to be five. A household
// with no dependents has no phase 1 at all.
func (fc *FoundationCalculator) yearsUntilDependentsIndependent() int {
	if fc.data.Profile.Dependents == 0 {
		return 0
	}

	var latest *domain.GoalData
	for i := range fc.data.Goals {
		goal := fc.data.Goals[i]
		if !isEducationGoal(goal) {
			continue
		}
		if latest == nil || goal.TargetDate.After(latest.TargetDate) {
			latest = &fc.data.Goals[i]
		}
	}

	if latest != nil {
		days := latest.TargetDate.Sub(fc.asOf).Hours() / 24
		years := int(days / 365)
		if years < 0 {
			years = 0
		}
		return years
	}
	return independenceAge - defaultYoungestDependentAge
}

// LifeInsuranceNeed runs the needs-based gap calculation: concrete future
// obligations (debt payoff, education funding, two-phase PV of living
// expenses) net of discounted available assets, floored at one year of
// income to cover probate and transition costs.
func (fc *FoundationCalculator) LifeInsuranceNeed() InsuranceNeed {
	outstandingLoans := fc.data.Liabilities.TotalLiabilities()

	educationTotal := decimal.Zero
	for _, goal := range fc.data.Goals {
		if !isEducationGoal(goal) {
			continue
		}
		unfunded := goal.TargetAmount.Sub(goal.CurrentAmount)
		if unfunded.GreaterThan(decimal.Zero) {
			educationTotal = educationTotal.Add(unfunded)
		}
	}

	// Housing is excluded: the mortgage payoff already sits in the loans
	// component.
	monthlyExHousing := fc.data.Expenses.TotalMonthlyExpenses().Sub(fc.data.Expenses.Housing)
	annualExHousing := monthlyExHousing.Mul(decimal.NewFromInt(12))

	phase1Years := fc.yearsUntilDependentsIndependent()
	pvPhase1 := PVAnnuity(annualExHousing, phase1Years, insuranceDiscountRate)

	phase2Years := fc.data.Profile.RetirementAge - fc.data.Profile.Age - phase1Years
	if phase2Years < 0 {
		phase2Years = 0
	}
	phase2Annual := annualExHousing.Mul(expenseReductionPostKids)
	pvPhase2AtStart := PVAnnuity(phase2Annual, phase2Years, insuranceDiscountRate)

	pvPhase2 := pvPhase2AtStart
	if phase1Years > 0 && insuranceDiscountRate.GreaterThan(decimal.Zero) {
		deflator := decimal.NewFromInt(1).Add(insuranceDiscountRate).Pow(decimal.NewFromInt(int64(phase1Years)))
		pvPhase2 = pvPhase2AtStart.Div(deflator)
	}
	totalPVExpenses := pvPhase1.Add(pvPhase2)

	investmentREEquity := fc.data.Assets.RealEstateInvestment.Sub(fc.data.Liabilities.MortgageInvestment)
	if investmentREEquity.LessThan(decimal.Zero) {
		investmentREEquity = decimal.Zero
	}
	investmentREEquity = investmentREEquity.Mul(decimal.NewFromInt(1).Sub(discountInvestmentRE))

	retirementAccounts := fc.data.Assets.IRATraditional.
		Add(fc.data.Assets.IRARoth).
		Add(fc.data.Assets.Retirement401k).
		Add(fc.data.Assets.HSA).
		Mul(decimal.NewFromInt(1).Sub(taxHaircutRetirement))

	discountedAssets := fc.data.Assets.LiquidAssets().
		Add(fc.data.Assets.BrokerageTaxable).
		Add(retirementAccounts).
		Add(fc.data.Assets.CompanyStockVested.Mul(discountCompanyStock)).
		Add(investmentREEquity).
		Add(fc.data.Insurance.LifeInsuranceCoverage)

	grossNeed := outstandingLoans.Add(totalPVExpenses).Add(educationTotal)
	netNeed := grossNeed.Sub(discountedAssets)

	minimumFloor := fc.data.Income.TotalAnnualIncome()
	finalNeed := netNeed
	if minimumFloor.GreaterThan(finalNeed) {
		finalNeed = minimumFloor
	}

	return InsuranceNeed{
		OutstandingLoans: outstandingLoans,
		EducationGoals:   educationTotal,
		PVExpensesPhase1: pvPhase1,
		PVExpensesPhase2: pvPhase2,
		TotalPVExpenses:  totalPVExpenses,
		Phase1Years:      phase1Years,
		Phase2Years:      phase2Years,
		DiscountedAssets: discountedAssets,
		GrossNeed:        grossNeed,
		NetNeed:          netNeed,
		MinimumFloor:     minimumFloor,
		FinalNeed:        finalNeed,
		SelfInsured:      netNeed.LessThanOrEqual(decimal.Zero),
		ExistingCoverage: fc.data.Insurance.LifeInsuranceCoverage,
	}
}

// EmergencyFundMonths measures cash reserves as a multiple of monthly
// expenses. Benchmark is 3-6 months for employed clients.
func (fc *FoundationCalculator) EmergencyFundMonths() domain.MetricResult {
	monthlyExpenses := fc.data.Expenses.TotalMonthlyExpenses()
	liquidCash := fc.data.Assets.CheckingAccounts.
		Add(fc.data.Assets.SavingsAccounts).
		Add(fc.data.Assets.MoneyMarket)

	months := decimal.Zero
	if monthlyExpenses.GreaterThan(decimal.Zero) {
		months = liquidCash.Div(monthlyExpenses)
	}

	var status domain.HealthStatus
	switch {
	case months.GreaterThanOrEqual(decimal.NewFromInt(6)):
		status = domain.StatusExcellent
	case months.GreaterThanOrEqual(decimal.NewFromInt(4)):
		status = domain.StatusGood
	case months.GreaterThanOrEqual(decimal.NewFromInt(3)):
		status = domain.StatusFair
	case months.GreaterThanOrEqual(decimal.NewFromInt(1)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if months.LessThan(decimal.NewFromInt(3)) {
		shortfall := monthlyExpenses.Mul(decimal.NewFromInt(3)).Sub(liquidCash)
		recommendations = append(recommendations,
			fmt.Sprintf("Build emergency fund by %s to reach 3-month minimum", domain.FormatCurrency(shortfall)))
	}
	if months.LessThan(decimal.NewFromInt(6)) {
		recommendations = append(recommendations, "Consider high-yield savings account for emergency funds")
	}

	benchmark := decimal.NewFromInt(6)
	return domain.MetricResult{
		Value:           months,
		DisplayValue:    months.StringFixed(1) + " months",
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "6 months recommended",
		Description:     "Cash reserves as multiple of monthly expenses",
		Recommendations: recommendations,
	}
}

// LiquidNetWorth measures immediately accessible assets minus high-interest
// debt, relative to total net worth.
func (fc *FoundationCalculator) LiquidNetWorth() domain.MetricResult {
	liquidNW := fc.data.LiquidNetWorth()
	totalNW := fc.data.NetWorth()

	liquidRatio := decimal.Zero
	if totalNW.GreaterThan(decimal.Zero) {
		liquidRatio = liquidNW.Div(totalNW)
	}

	var status domain.HealthStatus
	switch {
	case liquidRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.3)):
		status = domain.StatusExcellent
	case liquidRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.2)):
		status = domain.StatusGood
	case liquidRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.1)):
		status = domain.StatusFair
	case liquidNW.GreaterThan(decimal.Zero):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if liquidRatio.LessThan(decimal.NewFromFloat(0.2)) {
		recommendations = append(recommendations, "Consider increasing liquid asset allocation for flexibility")
	}
	if highInterest := fc.data.Liabilities.HighInterestDebt(); highInterest.GreaterThan(decimal.Zero) {
		recommendations = append(recommendations,
			fmt.Sprintf("Pay down %s in high-interest debt", domain.FormatCurrency(highInterest)))
	}

	benchmark := decimal.Zero
	if totalNW.GreaterThan(decimal.Zero) {
		benchmark = totalNW.Mul(decimal.NewFromFloat(0.2))
	}
	return domain.MetricResult{
		Value:           liquidNW,
		DisplayValue:    domain.FormatCurrency(liquidNW),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "20% of net worth",
		Description:     "Immediately accessible assets minus high-interest debt",
		Recommendations: recommendations,
	}
}

// LifeInsuranceCoverage evaluates existing coverage against the needs-based
// gap calculation.
func (fc *FoundationCalculator) LifeInsuranceCoverage() domain.MetricResult {
	need := fc.LifeInsuranceNeed()
	existing := need.ExistingCoverage
	needed := need.FinalNeed
	dependents := fc.data.Profile.Dependents

	var status domain.HealthStatus
	switch {
	case existing.GreaterThanOrEqual(needed):
		status = domain.StatusExcellent
	case needed.GreaterThan(decimal.Zero) && existing.Div(needed).GreaterThanOrEqual(decimal.NewFromFloat(0.8)):
		status = domain.StatusGood
	case needed.GreaterThan(decimal.Zero) && existing.Div(needed).GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
		status = domain.StatusFair
	case existing.GreaterThan(decimal.Zero):
		status = domain.StatusPoor
	case dependents > 0:
		status = domain.StatusCritical
	default:
		status = domain.StatusFair
	}

	var recommendations []string
	if need.SelfInsured {
		recommendations = append(recommendations,
			fmt.Sprintf("You are effectively self-insured. Minimum %s (1 year income) recommended for probate/bridge needs.",
				domain.FormatCurrency(need.MinimumFloor)))
		if existing.GreaterThan(needed.Mul(decimal.NewFromFloat(1.5))) {
			recommendations = append(recommendations,
				"Consider if current coverage level is cost-effective given your asset base.")
		}
	} else if gap := needed.Sub(existing); gap.GreaterThan(decimal.Zero) {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider increasing life insurance by %s to fully cover needs.", domain.FormatCurrency(gap)))
	}
	if fc.data.Insurance.LifeInsuranceType == "whole" && dependents > 0 {
		recommendations = append(recommendations,
			"Review if term insurance might provide more coverage at lower cost.")
	}

	description := fmt.Sprintf("Current: %s | Need: %s",
		domain.FormatCurrency(existing), domain.FormatCurrency(needed))
	if need.SelfInsured {
		description += " (Self-insured)"
	}

	return domain.MetricResult{
		Value:           existing,
		DisplayValue:    domain.FormatCurrency(existing),
		Status:          status,
		Benchmark:       &needed,
		BenchmarkLabel:  domain.FormatCurrency(needed) + " needed",
		Description:     description,
		Recommendations: recommendations,
	}
}

// DisabilityCoverage compares the monthly disability benefit to monthly
// income. Coverage should replace 60-70% of pre-tax income.
func (fc *FoundationCalculator) DisabilityCoverage() domain.MetricResult {
	monthlyCoverage := fc.data.Insurance.DisabilityCoverageMonthly
	monthlyIncome := fc.data.Income.MonthlyIncome()

	coverageRatio := decimal.Zero
	if monthlyIncome.GreaterThan(decimal.Zero) {
		coverageRatio = monthlyCoverage.Div(monthlyIncome)
	}

	var status domain.HealthStatus
	switch {
	case coverageRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.65)):
		status = domain.StatusExcellent
	case coverageRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
		status = domain.StatusGood
	case coverageRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.3)):
		status = domain.StatusFair
	case coverageRatio.GreaterThan(decimal.Zero):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if coverageRatio.LessThan(decimal.NewFromFloat(0.6)) {
		gap := monthlyIncome.Mul(decimal.NewFromFloat(0.6)).Sub(monthlyCoverage)
		recommendations = append(recommendations,
			fmt.Sprintf("Consider additional disability coverage of %s/month", domain.FormatCurrency(gap)))
	}
	if fc.data.Insurance.DisabilityCoverageType == "short-term" {
		recommendations = append(recommendations, "Add long-term disability coverage for comprehensive protection")
	}

	pct := coverageRatio.Mul(decimal.NewFromInt(100))
	benchmark := decimal.NewFromInt(60)
	return domain.MetricResult{
		Value:           pct,
		DisplayValue:    pct.StringFixed(0) + "% of income",
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "60% of income recommended",
		Description:     fmt.Sprintf("Monthly disability benefit: %s", domain.FormatCurrency(monthlyCoverage)),
		Recommendations: recommendations,
	}
}

// DebtToIncomeRatio measures monthly debt payments against gross monthly
// income, banded at standard mortgage-underwriting thresholds.
func (fc *FoundationCalculator) DebtToIncomeRatio() domain.MetricResult {
	monthlyDebt := fc.data.Expenses.DebtPayments
	monthlyIncome := fc.data.Income.MonthlyIncome()

	var dti decimal.Decimal
	if monthlyIncome.GreaterThan(decimal.Zero) {
		dti = monthlyDebt.Div(monthlyIncome).Mul(decimal.NewFromInt(100))
	} else if monthlyDebt.GreaterThan(decimal.Zero) {
		dti = decimal.NewFromInt(100)
	}

	var status domain.HealthStatus
	switch {
	case dti.LessThanOrEqual(decimal.NewFromInt(20)):
		status = domain.StatusExcellent
	case dti.LessThanOrEqual(decimal.NewFromInt(35)):
		status = domain.StatusGood
	case dti.LessThanOrEqual(decimal.NewFromInt(43)):
		status = domain.StatusFair
	case dti.LessThanOrEqual(decimal.NewFromInt(50)):
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if dti.GreaterThan(decimal.NewFromInt(35)) {
		recommendations = append(recommendations, "Focus on paying down debt to improve financial flexibility")
	}
	if dti.GreaterThan(decimal.NewFromInt(43)) {
		recommendations = append(recommendations, "DTI above 43% may limit mortgage qualification")
	}
	if fc.data.Liabilities.CreditCards.GreaterThan(decimal.Zero) {
		recommendations = append(recommendations, "Prioritize paying off high-interest credit card debt")
	}

	benchmark := decimal.NewFromInt(35)
	return domain.MetricResult{
		Value:           dti,
		DisplayValue:    domain.FormatPercent(dti, 1),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "35% or less recommended",
		Description:     "Monthly debt payments as percentage of gross income",
		Recommendations: recommendations,
	}
}

// SectionSummary aggregates the five foundation metrics, unweighted.
func (fc *FoundationCalculator) SectionSummary() domain.SectionSummary {
	return summarize(
		"Financial Foundation & Safety Net",
		"Is the client protected against life's shocks?",
		[]weightedMetric{
			unit(domain.MetricEmergencyFund, fc.EmergencyFundMonths()),
			unit(domain.MetricLifeInsurance, fc.LifeInsuranceCoverage()),
			unit(domain.MetricDisabilityInsurance, fc.DisabilityCoverage()),
			unit(domain.MetricDebtToIncome, fc.DebtToIncomeRatio()),
			unit(domain.MetricLiquidNetWorth, fc.LiquidNetWorth()),
		})
}
