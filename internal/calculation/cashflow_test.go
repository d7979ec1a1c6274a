package calculation

import (
	"testing"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// repeatMonths builds a flat monthly history.
func repeatMonths(value int64, months int) []decimal.Decimal {
	history := make([]decimal.Decimal, months)
	for i := range history {
		history[i] = decimal.NewFromInt(value)
	}
	return history
}

func cashFlowFixture(monthlyExpenses int64) domain.ClientData {
	return domain.ClientData{
		Profile:  domain.ClientProfile{Age: 40, RetirementAge: 65},
		Income:   domain.IncomeData{AnnualSalary: money(120000)},
		Expenses: domain.ExpenseData{Housing: money(monthlyExpenses)},
	}
}

func TestSavingsRateTarget(t *testing.T) {
	tests := []struct {
		name           string
		age            int
		retirementAge  int
		expectedTarget int64
	}{
		{"short runway", 55, 65, 25},
		{"medium runway", 45, 65, 20},
		{"long runway", 40, 65, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := cashFlowFixture(5000)
			data.Profile.Age = tc.age
			data.Profile.RetirementAge = tc.retirementAge
			result := NewCashFlowCalculator(data, nil).SavingsRate()
			assert.True(t, money(tc.expectedTarget).Equal(*result.Benchmark))
		})
	}
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name           string
		monthlyExpense int64
		expectedRate   float64
		expectedStatus domain.HealthStatus
	}{
		{"thirty percent saved", 7000, 30, domain.StatusExcellent},
		{"at target", 8500, 15, domain.StatusGood},
		{"just under target", 8600, 14, domain.StatusFair},
		{"barely positive", 9500, 5, domain.StatusPoor},
		{"spending everything", 10000, 0, domain.StatusCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := NewCashFlowCalculator(cashFlowFixture(tc.monthlyExpense), nil)
			result := calc.SavingsRate()
			assert.InDelta(t, tc.expectedRate, result.Value.InexactFloat64(), 0.001)
			assert.Equal(t, tc.expectedStatus, result.Status)
		})
	}
}

func TestSavingsRateDelta(t *testing.T) {
	// A year ago spending averaged 8000/mo; it is now 7000/mo, so the
	// savings rate improved from 20% to 30%.
	calc := NewCashFlowCalculator(cashFlowFixture(7000), repeatMonths(8000, 24))
	result := calc.SavingsRate()

	assert.NotNil(t, result.Delta)
	assert.NotNil(t, result.DeltaIsPositive)
	assert.InDelta(t, 10, result.Delta.InexactFloat64(), 0.001)
	assert.True(t, *result.DeltaIsPositive)
}

func TestSavingsRateNoHistoryNoDelta(t *testing.T) {
	result := NewCashFlowCalculator(cashFlowFixture(7000), repeatMonths(8000, 11)).SavingsRate()
	assert.Nil(t, result.Delta, "fewer than 12 months cannot support a delta")
}

func TestFixedCostRatio(t *testing.T) {
	tests := []struct {
		name           string
		fixed          int64
		expectedStatus domain.HealthStatus
	}{
		{"forty percent", 4000, domain.StatusExcellent},
		{"fifty percent", 5000, domain.StatusGood},
		{"sixty percent", 6000, domain.StatusFair},
		{"seventy five percent", 7500, domain.StatusPoor},
		{"over seventy five", 7600, domain.StatusCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NewCashFlowCalculator(cashFlowFixture(tc.fixed), nil).FixedCostRatio()
			assert.Equal(t, tc.expectedStatus, result.Status)
		})
	}

	t.Run("no income", func(t *testing.T) {
		data := domain.ClientData{Expenses: domain.ExpenseData{Housing: money(2000)}}
		result := NewCashFlowCalculator(data, nil).FixedCostRatio()
		assert.InDelta(t, 100, result.Value.InexactFloat64(), 0.001)
		assert.Equal(t, domain.StatusCritical, result.Status)
	})
}

func TestFixedCostRatioHousingFlag(t *testing.T) {
	data := cashFlowFixture(0)
	data.Expenses.Housing = money(3000) // 30% of 10k income
	result := NewCashFlowCalculator(data, nil).FixedCostRatio()
	assert.Contains(t, result.Recommendations, "Housing costs exceed recommended 28% of income")
}

func TestDiscretionarySpendingTopCategory(t *testing.T) {
	data := cashFlowFixture(4000)
	data.Expenses.DiningOut = money(900)
	data.Expenses.Entertainment = money(200)
	data.Expenses.Shopping = money(100)
	result := NewCashFlowCalculator(data, nil).DiscretionarySpending()

	// Dining out is 75% of the 1200 discretionary total.
	found := false
	for _, r := range result.Recommendations {
		if r == "Dining out accounts for 75% of discretionary spending" {
			found = true
		}
	}
	assert.True(t, found, "expected dominant category flag, got %v", result.Recommendations)
}

func TestGuiltFreeSpending(t *testing.T) {
	tests := []struct {
		name           string
		fixed          int64
		expectedStatus domain.HealthStatus
	}{
		{"twenty percent left", 6000, domain.StatusExcellent},
		{"ten percent left", 7000, domain.StatusGood},
		{"barely positive", 7900, domain.StatusFair},
		{"underwater", 9000, domain.StatusPoor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// 25 years to retirement keeps the savings target at 20%.
			result := NewCashFlowCalculator(cashFlowFixture(tc.fixed), nil).GuiltFreeSpending()
			assert.Equal(t, tc.expectedStatus, result.Status)
		})
	}
}

func TestGuiltFreeSpendingShortRunwayTarget(t *testing.T) {
	data := cashFlowFixture(6000)
	data.Profile.Age = 55 // 10 years out raises the savings target to 25%
	result := NewCashFlowCalculator(data, nil).GuiltFreeSpending()

	// 10000 - 6000 - 2500 = 1500/mo.
	assert.InDelta(t, 1500, result.Value.InexactFloat64(), 0.001)
}

func TestLifestyleCreepTracker(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		result := NewCashFlowCalculator(cashFlowFixture(5000), repeatMonths(5000, 11)).LifestyleCreepTracker()
		assert.Equal(t, domain.StatusFair, result.Status)
		assert.Equal(t, "Insufficient data", result.DisplayValue)
	})

	creepCase := func(oldMonthly, newMonthly int64) domain.MetricResult {
		history := append(repeatMonths(oldMonthly, 12), repeatMonths(newMonthly, 12)...)
		return NewCashFlowCalculator(cashFlowFixture(5000), history).LifestyleCreepTracker()
	}

	t.Run("flat spending beats income growth", func(t *testing.T) {
		result := creepCase(1000, 1000)
		assert.Equal(t, domain.StatusExcellent, result.Status)
		assert.InDelta(t, -3, result.Value.InexactFloat64(), 0.001)
	})

	t.Run("mild creep", func(t *testing.T) {
		// 4% growth less 3% income growth = 1 point of creep.
		assert.Equal(t, domain.StatusGood, creepCase(1000, 1040).Status)
	})

	t.Run("moderate creep", func(t *testing.T) {
		assert.Equal(t, domain.StatusFair, creepCase(1000, 1080).Status)
	})

	t.Run("heavy creep", func(t *testing.T) {
		assert.Equal(t, domain.StatusPoor, creepCase(1000, 1100).Status)
	})

	t.Run("runaway creep", func(t *testing.T) {
		assert.Equal(t, domain.StatusCritical, creepCase(1000, 1200).Status)
	})
}

func TestCashFlowSectionSummaryOrder(t *testing.T) {
	summary := NewCashFlowCalculator(cashFlowFixture(5000), nil).SectionSummary()

	expected := []domain.MetricID{
		domain.MetricSavingsRate,
		domain.MetricFixedCostRatio,
		domain.MetricDiscretionarySpending,
		domain.MetricGuiltFreeSpending,
		domain.MetricLifestyleCreep,
	}
	ids := make([]domain.MetricID, 0, len(summary.Metrics))
	for _, m := range summary.Metrics {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, expected, ids)
	assert.Equal(t, "Cash Flow & Spending Behavior", summary.SectionTitle)
}
