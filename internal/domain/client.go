package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskLevel describes a client's stated risk tolerance.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical" // aggressive
)

// Valid reports whether the risk level is one of the known values.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// ClientProfile holds basic client identity and planning horizon information.
type ClientProfile struct {
	ClientID      string    `yaml:"client_id" json:"client_id"`
	Name          string    `yaml:"name" json:"name"`
	Age           int       `yaml:"age" json:"age"`
	RetirementAge int       `yaml:"retirement_age" json:"retirement_age"`
	RiskTolerance RiskLevel `yaml:"risk_tolerance" json:"risk_tolerance"`
	Dependents    int       `yaml:"dependents" json:"dependents"`
	MaritalStatus string    `yaml:"marital_status" json:"marital_status"`
	State         string    `yaml:"state" json:"state"`
}

// YearsToRetirement returns the planning runway in years. May be negative for
// clients already past their stated retirement age; callers decide how to
// treat that.
func (p ClientProfile) YearsToRetirement() int {
	return p.RetirementAge - p.Age
}

// IncomeData holds annual income components.
type IncomeData struct {
	AnnualSalary     decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	Bonus            decimal.Decimal `yaml:"bonus" json:"bonus"`
	OtherIncome      decimal.Decimal `yaml:"other_income" json:"other_income"`
	RentalIncome     decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	InvestmentIncome decimal.Decimal `yaml:"investment_income" json:"investment_income"`
}

// TotalAnnualIncome returns the sum of all income components.
func (i IncomeData) TotalAnnualIncome() decimal.Decimal {
	return i.AnnualSalary.Add(i.Bonus).Add(i.OtherIncome).Add(i.RentalIncome).Add(i.InvestmentIncome)
}

// MonthlyIncome returns total annual income divided by twelve.
func (i IncomeData) MonthlyIncome() decimal.Decimal {
	return i.TotalAnnualIncome().Div(decimal.NewFromInt(12))
}

// ExpenseData holds monthly expenses by category.
type ExpenseData struct {
	Housing           decimal.Decimal `yaml:"housing" json:"housing"`
	Utilities         decimal.Decimal `yaml:"utilities" json:"utilities"`
	Transportation    decimal.Decimal `yaml:"transportation" json:"transportation"`
	Groceries         decimal.Decimal `yaml:"groceries" json:"groceries"`
	Healthcare        decimal.Decimal `yaml:"healthcare" json:"healthcare"`
	InsurancePremiums decimal.Decimal `yaml:"insurance_premiums" json:"insurance_premiums"`
	DebtPayments      decimal.Decimal `yaml:"debt_payments" json:"debt_payments"`
	Childcare         decimal.Decimal `yaml:"childcare" json:"childcare"`
	Entertainment     decimal.Decimal `yaml:"entertainment" json:"entertainment"`
	DiningOut         decimal.Decimal `yaml:"dining_out" json:"dining_out"`
	Subscriptions     decimal.Decimal `yaml:"subscriptions" json:"subscriptions"`
	Shopping          decimal.Decimal `yaml:"shopping" json:"shopping"`
	Travel            decimal.Decimal `yaml:"travel" json:"travel"`
	Other             decimal.Decimal `yaml:"other" json:"other"`
}

// FixedExpenses returns the essential categories that are hard to cut on
// short notice.
func (e ExpenseData) FixedExpenses() decimal.Decimal {
	return e.Housing.Add(e.Utilities).Add(e.Transportation).Add(e.Groceries).
		Add(e.Healthcare).Add(e.InsurancePremiums).Add(e.DebtPayments).Add(e.Childcare)
}

// DiscretionaryExpenses returns the variable lifestyle categories.
func (e ExpenseData) DiscretionaryExpenses() decimal.Decimal {
	return e.Entertainment.Add(e.DiningOut).Add(e.Subscriptions).
		Add(e.Shopping).Add(e.Travel).Add(e.Other)
}

// TotalMonthlyExpenses returns the sum of every category. It always equals
// FixedExpenses + DiscretionaryExpenses.
func (e ExpenseData) TotalMonthlyExpenses() decimal.Decimal {
	return e.FixedExpenses().Add(e.DiscretionaryExpenses())
}

// AssetData holds account balances grouped by liquidity.
type AssetData struct {
	// Liquid
	CheckingAccounts decimal.Decimal `yaml:"checking_accounts" json:"checking_accounts"`
	SavingsAccounts  decimal.Decimal `yaml:"savings_accounts" json:"savings_accounts"`
	MoneyMarket      decimal.Decimal `yaml:"money_market" json:"money_market"`
	CDs              decimal.Decimal `yaml:"cds" json:"cds"`

	// Investment accounts
	BrokerageTaxable decimal.Decimal `yaml:"brokerage_taxable" json:"brokerage_taxable"`
	IRATraditional   decimal.Decimal `yaml:"ira_traditional" json:"ira_traditional"`
	IRARoth          decimal.Decimal `yaml:"ira_roth" json:"ira_roth"`
	Retirement401k   decimal.Decimal `yaml:"retirement_401k" json:"retirement_401k"`
	HSA              decimal.Decimal `yaml:"hsa" json:"hsa"`

	// Company stock
	CompanyStockVested decimal.Decimal `yaml:"company_stock_vested" json:"company_stock_vested"`
	RSUUnvested        decimal.Decimal `yaml:"rsu_unvested" json:"rsu_unvested"`
	StockOptionsValue  decimal.Decimal `yaml:"stock_options_value" json:"stock_options_value"`

	// Other
	RealEstatePrimary    decimal.Decimal `yaml:"real_estate_primary" json:"real_estate_primary"`
	RealEstateInvestment decimal.Decimal `yaml:"real_estate_investment" json:"real_estate_investment"`
	BusinessEquity       decimal.Decimal `yaml:"business_equity" json:"business_equity"`
	Crypto               decimal.Decimal `yaml:"crypto" json:"crypto"`
	Collectibles         decimal.Decimal `yaml:"collectibles" json:"collectibles"`
	OtherAssets          decimal.Decimal `yaml:"other_assets" json:"other_assets"`
}

// LiquidAssets returns cash and cash-equivalent balances.
func (a AssetData) LiquidAssets() decimal.Decimal {
	return a.CheckingAccounts.Add(a.SavingsAccounts).Add(a.MoneyMarket).Add(a.CDs)
}

// InvestmentAssets returns brokerage and tax-advantaged account balances.
func (a AssetData) InvestmentAssets() decimal.Decimal {
	return a.BrokerageTaxable.Add(a.IRATraditional).Add(a.IRARoth).
		Add(a.Retirement401k).Add(a.HSA)
}

// CompanyStockTotal returns vested and unvested employer equity.
func (a AssetData) CompanyStockTotal() decimal.Decimal {
	return a.CompanyStockVested.Add(a.RSUUnvested).Add(a.StockOptionsValue)
}

// IlliquidAssets returns real estate, business equity, and other hard assets.
func (a AssetData) IlliquidAssets() decimal.Decimal {
	return a.RealEstatePrimary.Add(a.RealEstateInvestment).Add(a.BusinessEquity).
		Add(a.Crypto).Add(a.Collectibles).Add(a.OtherAssets)
}

// TotalAssets returns the sum of all asset groups.
func (a AssetData) TotalAssets() decimal.Decimal {
	return a.LiquidAssets().Add(a.InvestmentAssets()).
		Add(a.CompanyStockTotal()).Add(a.IlliquidAssets())
}

// LiabilityData holds outstanding debt balances.
type LiabilityData struct {
	MortgagePrimary    decimal.Decimal `yaml:"mortgage_primary" json:"mortgage_primary"`
	MortgageInvestment decimal.Decimal `yaml:"mortgage_investment" json:"mortgage_investment"`
	AutoLoans          decimal.Decimal `yaml:"auto_loans" json:"auto_loans"`
	StudentLoans       decimal.Decimal `yaml:"student_loans" json:"student_loans"`
	CreditCards        decimal.Decimal `yaml:"credit_cards" json:"credit_cards"`
	PersonalLoans      decimal.Decimal `yaml:"personal_loans" json:"personal_loans"`
	HELOC              decimal.Decimal `yaml:"heloc" json:"heloc"`
	OtherDebt          decimal.Decimal `yaml:"other_debt" json:"other_debt"`
}

// TotalLiabilities returns the sum of all debt balances.
func (l LiabilityData) TotalLiabilities() decimal.Decimal {
	return l.MortgagePrimary.Add(l.MortgageInvestment).Add(l.AutoLoans).
		Add(l.StudentLoans).Add(l.CreditCards).Add(l.PersonalLoans).
		Add(l.HELOC).Add(l.OtherDebt)
}

// HighInterestDebt returns credit cards plus personal loans, a proxy for debt
// that should be paid down first.
func (l LiabilityData) HighInterestDebt() decimal.Decimal {
	return l.CreditCards.Add(l.PersonalLoans)
}

// InsuranceData holds current coverage.
type InsuranceData struct {
	LifeInsuranceCoverage     decimal.Decimal `yaml:"life_insurance_coverage" json:"life_insurance_coverage"`
	LifeInsuranceType         string          `yaml:"life_insurance_type" json:"life_insurance_type"` // "term", "whole", "universal"
	DisabilityCoverageMonthly decimal.Decimal `yaml:"disability_coverage_monthly" json:"disability_coverage_monthly"`
	DisabilityCoverageType    string          `yaml:"disability_coverage_type" json:"disability_coverage_type"` // "short-term", "long-term", "both"
	UmbrellaCoverage          decimal.Decimal `yaml:"umbrella_coverage" json:"umbrella_coverage"`
	LongTermCare              bool            `yaml:"long_term_care" json:"long_term_care"`
}

// PortfolioAllocation holds asset-class percentages. The engine does not
// normalize these; the snapshot builder is responsible for making them sum to
// roughly 100.
type PortfolioAllocation struct {
	USStocks            decimal.Decimal `yaml:"us_stocks" json:"us_stocks"`
	InternationalStocks decimal.Decimal `yaml:"international_stocks" json:"international_stocks"`
	Bonds               decimal.Decimal `yaml:"bonds" json:"bonds"`
	RealEstate          decimal.Decimal `yaml:"real_estate" json:"real_estate"`
	Commodities         decimal.Decimal `yaml:"commodities" json:"commodities"`
	Cash                decimal.Decimal `yaml:"cash" json:"cash"`
	Alternatives        decimal.Decimal `yaml:"alternatives" json:"alternatives"`
	Crypto              decimal.Decimal `yaml:"crypto" json:"crypto"`
}

// TotalEquity returns US plus international stock percentages.
func (p PortfolioAllocation) TotalEquity() decimal.Decimal {
	return p.USStocks.Add(p.InternationalStocks)
}

// TotalFixedIncome returns bonds plus cash percentages.
func (p PortfolioAllocation) TotalFixedIncome() decimal.Decimal {
	return p.Bonds.Add(p.Cash)
}

// PortfolioMetrics holds portfolio quality measurements.
type PortfolioMetrics struct {
	WeightedExpenseRatio decimal.Decimal `yaml:"weighted_expense_ratio" json:"weighted_expense_ratio"`
	AnnualTurnover       decimal.Decimal `yaml:"annual_turnover" json:"annual_turnover"`
	TaxEfficiencyScore   decimal.Decimal `yaml:"tax_efficiency_score" json:"tax_efficiency_score"` // 0-100
	ConcentrationScore   decimal.Decimal `yaml:"concentration_score" json:"concentration_score"`   // 0-100, higher = better diversified
	TradesLast12Months   int             `yaml:"trades_last_12_months" json:"trades_last_12_months"`
}

// GoalData describes a single savings goal.
type GoalData struct {
	GoalID              string          `yaml:"goal_id" json:"goal_id"`
	Name                string          `yaml:"name" json:"name"`
	TargetAmount        decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	CurrentAmount       decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	TargetDate          time.Time       `yaml:"target_date" json:"target_date"`
	Priority            int             `yaml:"priority" json:"priority"` // 1-5, lower is more urgent
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
}

// EstateData holds estate planning document status.
type EstateData struct {
	HasWill                   bool       `yaml:"has_will" json:"has_will"`
	WillLastUpdated           *time.Time `yaml:"will_last_updated,omitempty" json:"will_last_updated,omitempty"`
	HasTrust                  bool       `yaml:"has_trust" json:"has_trust"`
	HasPOAFinancial           bool       `yaml:"has_poa_financial" json:"has_poa_financial"`
	HasPOAHealthcare          bool       `yaml:"has_poa_healthcare" json:"has_poa_healthcare"`
	HasHealthcareDirective    bool       `yaml:"has_healthcare_directive" json:"has_healthcare_directive"`
	BeneficiariesUpdated      bool       `yaml:"beneficiaries_updated" json:"beneficiaries_updated"`
	BeneficiariesLastReviewed *time.Time `yaml:"beneficiaries_last_reviewed,omitempty" json:"beneficiaries_last_reviewed,omitempty"`
	DigitalEstateDocumented   bool       `yaml:"digital_estate_documented" json:"digital_estate_documented"`
}

// ClientData is the aggregate snapshot a calculator operates on. Calculators
// never mutate it; a new snapshot replaces an old one.
type ClientData struct {
	Profile             ClientProfile       `yaml:"profile" json:"profile"`
	Income              IncomeData          `yaml:"income" json:"income"`
	Expenses            ExpenseData         `yaml:"expenses" json:"expenses"`
	Assets              AssetData           `yaml:"assets" json:"assets"`
	Liabilities         LiabilityData       `yaml:"liabilities" json:"liabilities"`
	Insurance           InsuranceData       `yaml:"insurance" json:"insurance"`
	PortfolioAllocation PortfolioAllocation `yaml:"portfolio_allocation" json:"portfolio_allocation"`
	PortfolioMetrics    PortfolioMetrics    `yaml:"portfolio_metrics" json:"portfolio_metrics"`
	Goals               []GoalData          `yaml:"goals" json:"goals"`
	Estate              EstateData          `yaml:"estate" json:"estate"`
}

// NetWorth returns total assets minus total liabilities.
func (c ClientData) NetWorth() decimal.Decimal {
	return c.Assets.TotalAssets().Sub(c.Liabilities.TotalLiabilities())
}

// LiquidNetWorth returns accessible assets minus high-interest debt.
func (c ClientData) LiquidNetWorth() decimal.Decimal {
	return c.Assets.LiquidAssets().Add(c.Assets.InvestmentAssets()).
		Sub(c.Liabilities.HighInterestDebt())
}
