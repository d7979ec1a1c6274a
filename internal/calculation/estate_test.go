package calculation

import (
	"strings"
	"testing"
	"time"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/stretchr/testify/assert"
)

func dateBefore(t time.Time, days int) *time.Time {
	d := t.AddDate(0, 0, -days)
	return &d
}

func fullEstate(asOf time.Time) domain.EstateData {
	return domain.EstateData{
		HasWill:                   true,
		WillLastUpdated:           dateBefore(asOf, 365),
		HasTrust:                  true,
		HasPOAFinancial:           true,
		HasPOAHealthcare:          true,
		HasHealthcareDirective:    true,
		BeneficiariesUpdated:      true,
		BeneficiariesLastReviewed: dateBefore(asOf, 180),
		DigitalEstateDocumented:   true,
	}
}

func TestEstatePlanningScore(t *testing.T) {
	t.Run("complete plan", func(t *testing.T) {
		data := domain.ClientData{Estate: fullEstate(fixtureAsOf)}
		result := NewEstateCalculatorAt(data, fixtureAsOf).EstatePlanningScore()
		assert.True(t, money(100).Equal(result.Value))
		assert.Equal(t, domain.StatusExcellent, result.Status)
		assert.Contains(t, result.Description, "6/6")
	})

	t.Run("no documents", func(t *testing.T) {
		result := NewEstateCalculatorAt(domain.ClientData{}, fixtureAsOf).EstatePlanningScore()
		assert.True(t, result.Value.IsZero())
		assert.Equal(t, domain.StatusCritical, result.Status)
		assert.Contains(t, result.Recommendations, "Create a will - essential for asset distribution")
	})

	t.Run("stale will deduction", func(t *testing.T) {
		data := domain.ClientData{Estate: domain.EstateData{
			HasWill:         true,
			WillLastUpdated: dateBefore(fixtureAsOf, 365*6),
		}}
		result := NewEstateCalculatorAt(data, fixtureAsOf).EstatePlanningScore()
		// 25 for the will, minus 10 for being six years old.
		assert.True(t, money(15).Equal(result.Value))
		assert.Equal(t, domain.StatusCritical, result.Status)
	})

	t.Run("aging will review reminder", func(t *testing.T) {
		data := domain.ClientData{Estate: domain.EstateData{
			HasWill:         true,
			WillLastUpdated: dateBefore(fixtureAsOf, 365*4),
		}}
		result := NewEstateCalculatorAt(data, fixtureAsOf).EstatePlanningScore()
		found := false
		for _, r := range result.Recommendations {
			if strings.HasPrefix(r, "Review will") {
				found = true
			}
		}
		assert.True(t, found, "expected review reminder, got %v", result.Recommendations)
	})

	t.Run("high net worth without trust", func(t *testing.T) {
		data := domain.ClientData{
			Assets: domain.AssetData{BrokerageTaxable: money(2000000)},
			Estate: domain.EstateData{HasWill: true, HasPOAFinancial: true},
		}
		result := NewEstateCalculatorAt(data, fixtureAsOf).EstatePlanningScore()
		assert.Contains(t, result.Recommendations, "Consider establishing a trust for tax efficiency")
	})
}

func TestBeneficiaryStatus(t *testing.T) {
	t.Run("not updated", func(t *testing.T) {
		data := domain.ClientData{
			Profile: domain.ClientProfile{MaritalStatus: "married"},
			Assets:  domain.AssetData{Retirement401k: money(100000), IRARoth: money(50000)},
		}
		result := NewEstateCalculatorAt(data, fixtureAsOf).BeneficiaryStatus()
		assert.Equal(t, domain.StatusCritical, result.Status)
		assert.True(t, money(20).Equal(result.Value))

		joined := strings.Join(result.Recommendations, "\n")
		assert.Contains(t, joined, "401(k)")
		assert.Contains(t, joined, "Roth IRA")
		assert.Contains(t, joined, "spouse is primary beneficiary")
	})

	reviewCase := func(daysAgo int) domain.MetricResult {
		data := domain.ClientData{Estate: domain.EstateData{
			BeneficiariesUpdated:      true,
			BeneficiariesLastReviewed: dateBefore(fixtureAsOf, daysAgo),
		}}
		return NewEstateCalculatorAt(data, fixtureAsOf).BeneficiaryStatus()
	}

	t.Run("reviewed this year", func(t *testing.T) {
		assert.Equal(t, domain.StatusExcellent, reviewCase(180).Status)
	})
	t.Run("reviewed within two years", func(t *testing.T) {
		assert.Equal(t, domain.StatusGood, reviewCase(540).Status)
	})
	t.Run("reviewed within three years", func(t *testing.T) {
		assert.Equal(t, domain.StatusFair, reviewCase(900).Status)
	})
	t.Run("stale review", func(t *testing.T) {
		assert.Equal(t, domain.StatusPoor, reviewCase(1200).Status)
	})

	t.Run("updated but never dated", func(t *testing.T) {
		data := domain.ClientData{Estate: domain.EstateData{BeneficiariesUpdated: true}}
		result := NewEstateCalculatorAt(data, fixtureAsOf).BeneficiaryStatus()
		assert.Equal(t, domain.StatusFair, result.Status)
		assert.True(t, money(50).Equal(result.Value))
	})
}

func TestDigitalEstateScore(t *testing.T) {
	t.Run("documented", func(t *testing.T) {
		data := domain.ClientData{Estate: domain.EstateData{DigitalEstateDocumented: true}}
		result := NewEstateCalculatorAt(data, fixtureAsOf).DigitalEstateScore()
		assert.True(t, money(100).Equal(result.Value))
		assert.Equal(t, domain.StatusExcellent, result.Status)
		assert.Equal(t, "Complete", result.DisplayValue)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("undocumented", func(t *testing.T) {
		result := NewEstateCalculatorAt(domain.ClientData{}, fixtureAsOf).DigitalEstateScore()
		assert.True(t, result.Value.IsZero())
		assert.Equal(t, domain.StatusPoor, result.Status)
	})

	t.Run("undocumented crypto is urgent", func(t *testing.T) {
		data := domain.ClientData{Assets: domain.AssetData{Crypto: money(12000)}}
		result := NewEstateCalculatorAt(data, fixtureAsOf).DigitalEstateScore()
		assert.True(t, strings.HasPrefix(result.Recommendations[0], "URGENT:"),
			"crypto warning should lead, got %v", result.Recommendations[0])
	})
}

func TestAccountTitlingReview(t *testing.T) {
	t.Run("no issues", func(t *testing.T) {
		result := NewEstateCalculatorAt(domain.ClientData{}, fixtureAsOf).AccountTitlingReview()
		assert.True(t, money(100).Equal(result.Value))
		assert.Equal(t, domain.StatusExcellent, result.Status)
		assert.Equal(t, []string{"Account titling appears appropriate"}, result.Recommendations)
	})

	t.Run("every issue still bottoms out at fair", func(t *testing.T) {
		data := domain.ClientData{
			Profile: domain.ClientProfile{MaritalStatus: "married"},
			Assets: domain.AssetData{
				BrokerageTaxable:  money(300000),
				RealEstatePrimary: money(600000),
			},
		}
		result := NewEstateCalculatorAt(data, fixtureAsOf).AccountTitlingReview()
		assert.True(t, money(50).Equal(result.Value))
		assert.Equal(t, domain.StatusFair, result.Status)
		assert.Contains(t, result.Description, "3 potential titling issues")
	})
}

func TestEstateSectionSummaryWeights(t *testing.T) {
	// Estate planning critical (0) at 2x, beneficiaries critical (0) at
	// 1.5x, digital poor (25) at 1x, titling excellent (100) at 1x:
	// (0 + 0 + 25 + 100) / 5.5 = 22.7 -> critical.
	summary := NewEstateCalculatorAt(domain.ClientData{}, fixtureAsOf).SectionSummary()

	assert.Len(t, summary.Metrics, 4)
	assert.Equal(t, domain.MetricEstatePlanning, summary.Metrics[0].ID)
	assert.InDelta(t, 22.7, summary.OverallScore.InexactFloat64(), 0.1)
	assert.Equal(t, domain.StatusCritical, summary.OverallStatus)

	perfect := NewEstateCalculatorAt(domain.ClientData{Estate: fullEstate(fixtureAsOf)}, fixtureAsOf).SectionSummary()
	assert.InDelta(t, 100, perfect.OverallScore.InexactFloat64(), 0.001)
	assert.Equal(t, domain.StatusExcellent, perfect.OverallStatus)
}
