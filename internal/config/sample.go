package config

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/advisorkit/finhealth/internal/domain"
)

// SampleSource serves three hand-authored demo households. It anchors all
// relative dates (goal targets, document reviews) to the time passed at
// construction so results are stable within a session.
type SampleSource struct {
	now time.Time
}

// NewSampleSource creates a sample source anchored to now.
func NewSampleSource(now time.Time) *SampleSource {
	return &SampleSource{now: now}
}

// LoadClients returns the three demo households.
func (s *SampleSource) LoadClients() ([]domain.ClientData, error) {
	return []domain.ClientData{
		s.sarahChen(),
		s.marcusWilliams(),
		s.parkHousehold(),
	}, nil
}

// HistoricalExpenses returns 24 months of expense history, oldest first.
func (s *SampleSource) HistoricalExpenses(clientID string) ([]decimal.Decimal, error) {
	raw, ok := sampleHistory[clientID]
	if !ok {
		return nil, nil
	}
	history := make([]decimal.Decimal, len(raw))
	for i, v := range raw {
		history[i] = decimal.NewFromInt(v)
	}
	return history, nil
}

func (s *SampleSource) yearsFromNow(years int) time.Time {
	return s.now.AddDate(0, 0, 365*years)
}

func (s *SampleSource) yearsAgo(years int) *time.Time {
	t := s.now.AddDate(0, 0, -365*years)
	return &t
}

func (s *SampleSource) daysAgo(days int) *time.Time {
	t := s.now.AddDate(0, 0, -days)
	return &t
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func df(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// sarahChen is a high-earning tech professional: age 38, married, two kids,
// strong savings with company-stock concentration and a stale will.
func (s *SampleSource) sarahChen() domain.ClientData {
	return domain.ClientData{
		Profile: domain.ClientProfile{
			ClientID:      "SC001",
			Name:          "Sarah Chen",
			Age:           38,
			RetirementAge: 60,
			RiskTolerance: domain.RiskModerate,
			Dependents:    2,
			MaritalStatus: "married",
			State:         "CA",
		},
		Income: domain.IncomeData{
			AnnualSalary:     d(285000),
			Bonus:            d(45000),
			RentalIncome:     d(2400 * 12),
			InvestmentIncome: d(8500),
		},
		Expenses: domain.ExpenseData{
			Housing:           d(4200),
			Utilities:         d(350),
			Transportation:    d(850),
			Groceries:         d(1200),
			Healthcare:        d(400),
			InsurancePremiums: d(650),
			DebtPayments:      d(800),
			Childcare:         d(2800),
			Entertainment:     d(400),
			DiningOut:         d(600),
			Subscriptions:     d(180),
			Shopping:          d(500),
			Travel:            d(800),
			Other:             d(300),
		},
		Assets: domain.AssetData{
			CheckingAccounts:     d(25000),
			SavingsAccounts:      d(45000),
			MoneyMarket:          d(30000),
			BrokerageTaxable:     d(185000),
			IRATraditional:       d(75000),
			IRARoth:              d(62000),
			Retirement401k:       d(420000),
			HSA:                  d(18000),
			CompanyStockVested:   d(145000),
			RSUUnvested:          d(280000),
			StockOptionsValue:    d(95000),
			RealEstatePrimary:    d(1250000),
			RealEstateInvestment: d(485000),
			Crypto:               d(12000),
			OtherAssets:          d(25000),
		},
		Liabilities: domain.LiabilityData{
			MortgagePrimary:    d(680000),
			MortgageInvestment: d(320000),
			AutoLoans:          d(28000),
			StudentLoans:       d(42000),
			CreditCards:        d(4500),
		},
		Insurance: domain.InsuranceData{
			LifeInsuranceCoverage:     d(1500000),
			LifeInsuranceType:         "term",
			DisabilityCoverageMonthly: d(12000),
			DisabilityCoverageType:    "long-term",
			UmbrellaCoverage:          d(2000000),
		},
		PortfolioAllocation: domain.PortfolioAllocation{
			USStocks:            d(52),
			InternationalStocks: d(18),
			Bonds:               d(15),
			RealEstate:          d(8),
			Commodities:         d(2),
			Cash:                d(3),
			Crypto:              d(2),
		},
		PortfolioMetrics: domain.PortfolioMetrics{
			WeightedExpenseRatio: df(0.35),
			AnnualTurnover:       d(28),
			TaxEfficiencyScore:   d(72),
			ConcentrationScore:   d(58),
			TradesLast12Months:   18,
		},
		Goals: []domain.GoalData{
			{
				GoalID:              "college_1",
				Name:                "College Fund - Child 1",
				TargetAmount:        d(250000),
				CurrentAmount:       d(85000),
				TargetDate:          s.yearsFromNow(10),
				Priority:            1,
				MonthlyContribution: d(1200),
			},
			{
				GoalID:              "college_2",
				Name:                "College Fund - Child 2",
				TargetAmount:        d(250000),
				CurrentAmount:       d(45000),
				TargetDate:          s.yearsFromNow(13),
				Priority:            2,
				MonthlyContribution: d(1000),
			},
			{
				GoalID:              "vacation_home",
				Name:                "Vacation Home Down Payment",
				TargetAmount:        d(200000),
				CurrentAmount:       d(65000),
				TargetDate:          s.yearsFromNow(5),
				Priority:            3,
				MonthlyContribution: d(2000),
			},
		},
		Estate: domain.EstateData{
			HasWill:                   true,
			WillLastUpdated:           s.yearsAgo(4),
			HasPOAFinancial:           true,
			HasPOAHealthcare:          true,
			BeneficiariesUpdated:      true,
			BeneficiariesLastReviewed: s.yearsAgo(2),
		},
	}
}

// marcusWilliams is a mid-career single professional with thin cash reserves,
// some high-interest debt, and no estate documents at all.
func (s *SampleSource) marcusWilliams() domain.ClientData {
	return domain.ClientData{
		Profile: domain.ClientProfile{
			ClientID:      "MW002",
			Name:          "Marcus Williams",
			Age:           45,
			RetirementAge: 65,
			RiskTolerance: domain.RiskModerate,
			Dependents:    0,
			MaritalStatus: "single",
			State:         "TX",
		},
		Income: domain.IncomeData{
			AnnualSalary:     d(125000),
			Bonus:            d(15000),
			OtherIncome:      d(5000),
			InvestmentIncome: d(3200),
		},
		Expenses: domain.ExpenseData{
			Housing:           d(2200),
			Utilities:         d(200),
			Transportation:    d(600),
			Groceries:         d(600),
			Healthcare:        d(250),
			InsurancePremiums: d(300),
			DebtPayments:      d(450),
			Entertainment:     d(350),
			DiningOut:         d(500),
			Subscriptions:     d(120),
			Shopping:          d(300),
			Travel:            d(400),
			Other:             d(200),
		},
		Assets: domain.AssetData{
			CheckingAccounts:   d(8000),
			SavingsAccounts:    d(15000),
			MoneyMarket:        d(5000),
			CDs:                d(10000),
			BrokerageTaxable:   d(45000),
			IRATraditional:     d(120000),
			IRARoth:            d(35000),
			Retirement401k:     d(185000),
			HSA:                d(8500),
			CompanyStockVested: d(25000),
			RealEstatePrimary:  d(380000),
			Crypto:             d(3000),
			Collectibles:       d(15000),
			OtherAssets:        d(5000),
		},
		Liabilities: domain.LiabilityData{
			MortgagePrimary: d(245000),
			AutoLoans:       d(18000),
			StudentLoans:    d(12000),
			CreditCards:     d(8500),
			HELOC:           d(15000),
		},
		Insurance: domain.InsuranceData{
			LifeInsuranceCoverage:     d(250000),
			LifeInsuranceType:         "term",
			DisabilityCoverageMonthly: d(5000),
			DisabilityCoverageType:    "short-term",
		},
		PortfolioAllocation: domain.PortfolioAllocation{
			USStocks:            d(45),
			InternationalStocks: d(10),
			Bonds:               d(25),
			RealEstate:          d(5),
			Cash:                d(12),
			Alternatives:        d(2),
			Crypto:              d(1),
		},
		PortfolioMetrics: domain.PortfolioMetrics{
			WeightedExpenseRatio: df(0.72),
			AnnualTurnover:       d(45),
			TaxEfficiencyScore:   d(55),
			ConcentrationScore:   d(75),
			TradesLast12Months:   32,
		},
		Goals: []domain.GoalData{
			{
				GoalID:              "emergency",
				Name:                "Emergency Fund Top-up",
				TargetAmount:        d(50000),
				CurrentAmount:       d(28000),
				TargetDate:          s.yearsFromNow(2),
				Priority:            1,
				MonthlyContribution: d(800),
			},
			{
				GoalID:              "early_retire",
				Name:                "Early Retirement Fund",
				TargetAmount:        d(1500000),
				CurrentAmount:       d(385000),
				TargetDate:          s.yearsFromNow(20),
				Priority:            2,
				MonthlyContribution: d(1500),
			},
		},
		Estate: domain.EstateData{},
	}
}

// parkHousehold is a pre-retiree couple: age 58, low risk tolerance, high net
// worth, and a fully maintained estate plan.
func (s *SampleSource) parkHousehold() domain.ClientData {
	return domain.ClientData{
		Profile: domain.ClientProfile{
			ClientID:      "JDP003",
			Name:          "Jennifer & David Park",
			Age:           58,
			RetirementAge: 62,
			RiskTolerance: domain.RiskLow,
			Dependents:    0,
			MaritalStatus: "married",
			State:         "WA",
		},
		Income: domain.IncomeData{
			AnnualSalary:     d(195000),
			Bonus:            d(25000),
			OtherIncome:      d(15000),
			RentalIncome:     d(36000),
			InvestmentIncome: d(42000),
		},
		Expenses: domain.ExpenseData{
			Housing:           d(3500),
			Utilities:         d(400),
			Transportation:    d(700),
			Groceries:         d(900),
			Healthcare:        d(800),
			InsurancePremiums: d(1200),
			Entertainment:     d(500),
			DiningOut:         d(700),
			Subscriptions:     d(150),
			Shopping:          d(400),
			Travel:            d(1500),
			Other:             d(400),
		},
		Assets: domain.AssetData{
			CheckingAccounts:     d(45000),
			SavingsAccounts:      d(120000),
			MoneyMarket:          d(85000),
			CDs:                  d(50000),
			BrokerageTaxable:     d(680000),
			IRATraditional:       d(850000),
			IRARoth:              d(220000),
			Retirement401k:       d(1150000),
			HSA:                  d(45000),
			CompanyStockVested:   d(85000),
			RealEstatePrimary:    d(950000),
			RealEstateInvestment: d(620000),
			BusinessEquity:       d(150000),
			Collectibles:         d(45000),
			OtherAssets:          d(30000),
		},
		Liabilities: domain.LiabilityData{
			MortgagePrimary:    d(125000),
			MortgageInvestment: d(280000),
		},
		Insurance: domain.InsuranceData{
			LifeInsuranceCoverage:     d(500000),
			LifeInsuranceType:         "whole",
			DisabilityCoverageMonthly: d(8000),
			DisabilityCoverageType:    "long-term",
			UmbrellaCoverage:          d(3000000),
			LongTermCare:              true,
		},
		PortfolioAllocation: domain.PortfolioAllocation{
			USStocks:            d(35),
			InternationalStocks: d(12),
			Bonds:               d(35),
			RealEstate:          d(10),
			Commodities:         d(3),
			Cash:                d(5),
		},
		PortfolioMetrics: domain.PortfolioMetrics{
			WeightedExpenseRatio: df(0.22),
			AnnualTurnover:       d(12),
			TaxEfficiencyScore:   d(88),
			ConcentrationScore:   d(90),
			TradesLast12Months:   8,
		},
		Goals: []domain.GoalData{
			{
				GoalID:              "retire_comfort",
				Name:                "Retirement Lifestyle Fund",
				TargetAmount:        d(4000000),
				CurrentAmount:       d(2945000),
				TargetDate:          s.yearsFromNow(4),
				Priority:            1,
				MonthlyContribution: d(8000),
			},
			{
				GoalID:              "grandkids",
				Name:                "Grandchildren Education Fund",
				TargetAmount:        d(300000),
				CurrentAmount:       d(125000),
				TargetDate:          s.yearsFromNow(15),
				Priority:            2,
				MonthlyContribution: d(800),
			},
			{
				GoalID:              "charity",
				Name:                "Charitable Giving Fund",
				TargetAmount:        d(500000),
				CurrentAmount:       d(180000),
				TargetDate:          s.yearsFromNow(10),
				Priority:            3,
				MonthlyContribution: d(2000),
			},
		},
		Estate: domain.EstateData{
			HasWill:                   true,
			WillLastUpdated:           s.yearsAgo(1),
			HasTrust:                  true,
			HasPOAFinancial:           true,
			HasPOAHealthcare:          true,
			HasHealthcareDirective:    true,
			BeneficiariesUpdated:      true,
			BeneficiariesLastReviewed: s.daysAgo(180),
			DigitalEstateDocumented:   true,
		},
	}
}

// sampleHistory holds 24 months of total monthly spending per client, oldest
// first, with a gentle upward drift for the creep tracker to find.
var sampleHistory = map[string][]int64{
	"SC001": {
		11800, 12100, 11900, 12300, 12000, 12200, 12400, 12100, 12500, 12300, 12600, 12400,
		12800, 12600, 12900, 13100, 12800, 13200, 13000, 13300, 13100, 13500, 13200, 14030,
	},
	"MW002": {
		5800, 5900, 6000, 5850, 6100, 6050, 6200, 6150, 6300, 6250, 6400, 6350,
		6500, 6450, 6600, 6550, 6700, 6650, 6800, 6750, 6900, 6850, 7000, 6670,
	},
	"JDP003": {
		10500, 10600, 10400, 10700, 10500, 10800, 10600, 10900, 10700, 11000, 10800, 11100,
		10900, 11200, 11000, 11300, 11100, 11150, 11050, 11200, 11100, 11250, 11150, 11150,
	},
}
