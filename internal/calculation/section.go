package calculation

import (
	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// weightedMetric is one entry in a section aggregation. Most metrics carry
// weight 1; Planning and Estate weight some metrics more heavily.
type weightedMetric struct {
	id     domain.MetricID
	result domain.MetricResult
	weight decimal.Decimal
}

func unit(id domain.MetricID, result domain.MetricResult) weightedMetric {
	return weightedMetric{id: id, result: result, weight: decimal.NewFromInt(1)}
}

func weighted(id domain.MetricID, result domain.MetricResult, weight decimal.Decimal) weightedMetric {
	return weightedMetric{id: id, result: result, weight: weight}
}

// summarize combines a section's metrics into one score and status. Each
// status maps to {100,75,50,25,0}, the weighted average is taken, and the
// result is re-bucketed at >=85/65/45/25.
func summarize(title, question string, metrics []weightedMetric) domain.SectionSummary {
	ordered := make([]domain.SectionMetric, 0, len(metrics))
	totalScore := decimal.Zero
	totalWeight := decimal.Zero
	for _, m := range metrics {
		ordered = append(ordered, domain.SectionMetric{ID: m.id, Result: m.result})
		totalScore = totalScore.Add(m.result.Status.Score().Mul(m.weight))
		totalWeight = totalWeight.Add(m.weight)
	}

	avg := decimal.NewFromInt(50)
	if totalWeight.GreaterThan(decimal.Zero) {
		avg = totalScore.Div(totalWeight)
	}

	return domain.SectionSummary{
		Metrics:         ordered,
		OverallScore:    avg,
		OverallStatus:   domain.StatusFromScore(avg),
		SectionTitle:    title,
		SectionQuestion: question,
	}
}
