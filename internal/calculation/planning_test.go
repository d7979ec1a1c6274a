package calculation

import (
	"testing"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoalProgress(t *testing.T) {
	calc := NewPlanningCalculatorAt(domain.ClientData{}, fixtureAsOf)

	t.Run("no target set", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{Name: "Someday"})
		assert.Equal(t, domain.StatusFair, result.Status)
		assert.Equal(t, "N/A", result.DisplayValue)
	})

	t.Run("achieved before deadline passed", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:  money(10000),
			CurrentAmount: money(10000),
			TargetDate:    fixtureAsOf.AddDate(0, 0, -30),
		})
		assert.Equal(t, domain.StatusExcellent, result.Status)
	})

	t.Run("missed deadline", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:  money(10000),
			CurrentAmount: money(4000),
			TargetDate:    fixtureAsOf.AddDate(0, 0, -30),
		})
		assert.Equal(t, domain.StatusCritical, result.Status)
	})

	// 300 days out = 10 months remaining at 30 days/month.
	deadline := fixtureAsOf.AddDate(0, 0, 300)

	t.Run("on track early", func(t *testing.T) {
		// 6000 remaining over 10 months needs 600/mo.
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:        money(12000),
			CurrentAmount:       money(6000),
			TargetDate:          deadline,
			MonthlyContribution: money(600),
		})
		assert.Equal(t, domain.StatusGood, result.Status)
		assert.InDelta(t, 50, result.Value.InexactFloat64(), 0.001)
	})

	t.Run("on track and nearly funded", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:        money(12000),
			CurrentAmount:       money(9000),
			TargetDate:          deadline,
			MonthlyContribution: money(300),
		})
		assert.Equal(t, domain.StatusExcellent, result.Status)
	})

	t.Run("contributing most of required pace", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:        money(12000),
			CurrentAmount:       money(6000),
			TargetDate:          deadline,
			MonthlyContribution: money(500), // 83% of the 600 required
		})
		assert.Equal(t, domain.StatusFair, result.Status)
	})

	t.Run("contributing half of required pace", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:        money(12000),
			CurrentAmount:       money(6000),
			TargetDate:          deadline,
			MonthlyContribution: money(300),
		})
		assert.Equal(t, domain.StatusPoor, result.Status)
	})

	t.Run("barely contributing", func(t *testing.T) {
		result := calc.GoalProgress(domain.GoalData{
			TargetAmount:        money(12000),
			CurrentAmount:       money(6000),
			TargetDate:          deadline,
			MonthlyContribution: money(100),
		})
		assert.Equal(t, domain.StatusCritical, result.Status)
		assert.NotEmpty(t, result.Recommendations)
	})
}

func TestRetirementProjection(t *testing.T) {
	t.Run("no expenses means fully funded", func(t *testing.T) {
		data := domain.ClientData{
			Profile: domain.ClientProfile{Age: 40, RetirementAge: 60},
		}
		result := NewPlanningCalculatorAt(data, fixtureAsOf).RetirementProjection()
		assert.InDelta(t, 100, result.Value.InexactFloat64(), 0.001)
		assert.Equal(t, domain.StatusExcellent, result.Status)
	})

	t.Run("wealthy saver exceeds target", func(t *testing.T) {
		data := domain.ClientData{
			Profile:  domain.ClientProfile{Age: 40, RetirementAge: 60},
			Income:   domain.IncomeData{AnnualSalary: money(200000)},
			Assets:   domain.AssetData{Retirement401k: money(2000000)},
			Expenses: domain.ExpenseData{Housing: money(4000)},
		}
		result := NewPlanningCalculatorAt(data, fixtureAsOf).RetirementProjection()
		assert.True(t, result.Value.GreaterThanOrEqual(money(100)))
		assert.Equal(t, domain.StatusExcellent, result.Status)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("no savings is critical", func(t *testing.T) {
		data := domain.ClientData{
			Profile:  domain.ClientProfile{Age: 40, RetirementAge: 60},
			Expenses: domain.ExpenseData{Housing: money(5000)},
		}
		result := NewPlanningCalculatorAt(data, fixtureAsOf).RetirementProjection()
		assert.True(t, result.Value.IsZero())
		assert.Equal(t, domain.StatusCritical, result.Status)
		assert.NotEmpty(t, result.Recommendations)
	})
}

func TestRetirementStressTest(t *testing.T) {
	t.Run("well funded survives stress", func(t *testing.T) {
		data := domain.ClientData{
			Profile:  domain.ClientProfile{Age: 40, RetirementAge: 60},
			Income:   domain.IncomeData{AnnualSalary: money(200000)},
			Assets:   domain.AssetData{Retirement401k: money(3000000)},
			Expenses: domain.ExpenseData{Housing: money(4000)},
		}
		result := NewPlanningCalculatorAt(data, fixtureAsOf).RetirementStressTest()
		assert.True(t, money(90).Equal(result.Value))
		assert.Equal(t, domain.StatusExcellent, result.Status)
	})

	t.Run("unfunded plan fails stress", func(t *testing.T) {
		data := domain.ClientData{
			Profile:  domain.ClientProfile{Age: 40, RetirementAge: 60},
			Expenses: domain.ExpenseData{Housing: money(5000)},
		}
		result := NewPlanningCalculatorAt(data, fixtureAsOf).RetirementStressTest()
		assert.True(t, money(30).Equal(result.Value))
		assert.Equal(t, domain.StatusCritical, result.Status)
	})
}

func TestScenarioAnalysis(t *testing.T) {
	data := domain.ClientData{
		Profile:  domain.ClientProfile{Age: 40, RetirementAge: 60},
		Income:   domain.IncomeData{AnnualSalary: money(150000)},
		Assets:   domain.AssetData{Retirement401k: money(400000)},
		Expenses: domain.ExpenseData{Housing: money(6000)},
	}
	calc := NewPlanningCalculatorAt(data, fixtureAsOf)

	t.Run("empty scenario matches base", func(t *testing.T) {
		base := calc.RetirementProjection()
		result := calc.ScenarioAnalysis(ScenarioInputs{})
		assert.InDelta(t, base.Value.InexactFloat64(), result.Value.InexactFloat64(), 0.01)
		assert.Equal(t, "Base scenario", result.Description)
	})

	t.Run("later retirement improves outlook", func(t *testing.T) {
		result := calc.ScenarioAnalysis(ScenarioInputs{RetirementAgeChange: 5})
		base := calc.RetirementProjection()
		assert.True(t, result.Value.GreaterThan(base.Value))
		assert.Contains(t, result.Description, "Retire at 65")
		assert.NotNil(t, result.Trend)
		assert.True(t, result.Trend.GreaterThan(decimal.Zero))
	})

	t.Run("income cut worsens outlook", func(t *testing.T) {
		result := calc.ScenarioAnalysis(ScenarioInputs{IncomeChangePct: money(-10)})
		assert.Contains(t, result.Description, "Income -10%")
		assert.True(t, result.Trend.LessThan(decimal.Zero))
		assert.Contains(t, result.Recommendations[0], "worsens")
	})

	t.Run("market drop described in points", func(t *testing.T) {
		result := calc.ScenarioAnalysis(ScenarioInputs{MarketReturnChange: decimal.NewFromFloat(-0.02)})
		assert.Contains(t, result.Description, "Returns -2.0%")
	})
}

func TestPlanningSectionSummaryWeights(t *testing.T) {
	data := domain.ClientData{
		Profile: domain.ClientProfile{Age: 40, RetirementAge: 60},
		Goals: []domain.GoalData{
			{GoalID: "g1", TargetAmount: money(1000), CurrentAmount: money(1000),
				TargetDate: fixtureAsOf.AddDate(0, 0, -1)},
		},
	}
	summary := NewPlanningCalculatorAt(data, fixtureAsOf).SectionSummary()

	assert.Len(t, summary.Metrics, 3)
	assert.Equal(t, domain.MetricRetirementProjection, summary.Metrics[0].ID)
	assert.Equal(t, domain.MetricStressTest, summary.Metrics[1].ID)
	assert.Equal(t, domain.GoalMetricID("g1"), summary.Metrics[2].ID)

	// No expenses: projection is excellent (100) at weight 2, stress test
	// excellent (100) at weight 2, goal achieved (100) at weight 1.
	assert.InDelta(t, 100, summary.OverallScore.InexactFloat64(), 0.001)
	assert.Equal(t, domain.StatusExcellent, summary.OverallStatus)
}
