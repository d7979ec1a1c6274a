package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/advisorkit/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// EstateCalculator scores Section 5: Legacy & Estate Readiness.
type EstateCalculator struct {
	data domain.ClientData
	asOf time.Time
}

// NewEstateCalculator builds a calculator evaluated as of today.
func NewEstateCalculator(data domain.ClientData) *EstateCalculator {
	return NewEstateCalculatorAt(data, time.Now())
}

// NewEstateCalculatorAt builds a calculator evaluated at a fixed date.
func NewEstateCalculatorAt(data domain.ClientData, asOf time.Time) *EstateCalculator {
	return &EstateCalculator{data: data, asOf: asOf}
}

func (ec *EstateCalculator) yearsSince(t time.Time) decimal.Decimal {
	days := ec.asOf.Sub(t).Hours() / 24
	return decimal.NewFromFloat(days / 365)
}

func (ec *EstateCalculator) monthsSince(t time.Time) decimal.Decimal {
	days := ec.asOf.Sub(t).Hours() / 24
	return decimal.NewFromFloat(days / 30)
}

// EstatePlanningScore is an additive document checklist out of 100, with a
// deduction for a stale will.
func (ec *EstateCalculator) EstatePlanningScore() domain.MetricResult {
	estate := ec.data.Estate
	score := int64(0)

	checklist := []struct {
		name   string
		has    bool
		points int64
	}{
		{"Will", estate.HasWill, 25},
		{"Trust", estate.HasTrust, 15},
		{"Financial POA", estate.HasPOAFinancial, 20},
		{"Healthcare POA", estate.HasPOAHealthcare, 15},
		{"Healthcare Directive", estate.HasHealthcareDirective, 15},
		{"Beneficiaries Updated", estate.BeneficiariesUpdated, 10},
	}

	completed := 0
	for _, item := range checklist {
		if item.has {
			score += item.points
			completed++
		}
	}

	if estate.HasWill && estate.WillLastUpdated != nil {
		if ec.yearsSince(*estate.WillLastUpdated).GreaterThan(decimal.NewFromInt(5)) {
			score -= 10
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var status domain.HealthStatus
	switch {
	case score >= 85:
		status = domain.StatusExcellent
	case score >= 70:
		status = domain.StatusGood
	case score >= 50:
		status = domain.StatusFair
	case score >= 25:
		status = domain.StatusPoor
	default:
		status = domain.StatusCritical
	}

	var recommendations []string
	if !estate.HasWill {
		recommendations = append(recommendations, "Create a will - essential for asset distribution")
	}
	if !estate.HasPOAFinancial {
		recommendations = append(recommendations, "Establish financial power of attorney")
	}
	if !estate.HasHealthcareDirective {
		recommendations = append(recommendations, "Create healthcare directive/living will")
	}
	if estate.HasWill && estate.WillLastUpdated != nil {
		if yearsOld := ec.yearsSince(*estate.WillLastUpdated); yearsOld.GreaterThan(decimal.NewFromInt(3)) {
			recommendations = append(recommendations,
				fmt.Sprintf("Review will (last updated %s years ago)", yearsOld.StringFixed(0)))
		}
	}
	if ec.data.NetWorth().GreaterThan(decimal.NewFromInt(1000000)) && !estate.HasTrust {
		recommendations = append(recommendations, "Consider establishing a trust for tax efficiency")
	}

	benchmark := decimal.NewFromInt(85)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    fmt.Sprintf("%d/100", score),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "85+ for comprehensive estate plan",
		Description:     fmt.Sprintf("Completed: %d/6 key documents", completed),
		Recommendations: recommendations,
	}
}

// BeneficiaryStatus bands the time since the last beneficiary review.
func (ec *EstateCalculator) BeneficiaryStatus() domain.MetricResult {
	estate := ec.data.Estate

	var status domain.HealthStatus
	var score int64
	switch {
	case !estate.BeneficiariesUpdated:
		status, score = domain.StatusCritical, 20
	case estate.BeneficiariesLastReviewed != nil:
		months := ec.monthsSince(*estate.BeneficiariesLastReviewed)
		switch {
		case months.LessThanOrEqual(decimal.NewFromInt(12)):
			status, score = domain.StatusExcellent, 100
		case months.LessThanOrEqual(decimal.NewFromInt(24)):
			status, score = domain.StatusGood, 80
		case months.LessThanOrEqual(decimal.NewFromInt(36)):
			status, score = domain.StatusFair, 60
		default:
			status, score = domain.StatusPoor, 40
		}
	default:
		status, score = domain.StatusFair, 50
	}

	var recommendations []string
	if !estate.BeneficiariesUpdated {
		recommendations = append(recommendations,
			"Review and update all account beneficiaries",
			"Ensure beneficiaries align with current wishes and will")

		var accounts []string
		if ec.data.Assets.Retirement401k.GreaterThan(decimal.Zero) {
			accounts = append(accounts, "401(k)")
		}
		if ec.data.Assets.IRATraditional.GreaterThan(decimal.Zero) {
			accounts = append(accounts, "Traditional IRA")
		}
		if ec.data.Assets.IRARoth.GreaterThan(decimal.Zero) {
			accounts = append(accounts, "Roth IRA")
		}
		if ec.data.Insurance.LifeInsuranceCoverage.GreaterThan(decimal.Zero) {
			accounts = append(accounts, "Life Insurance")
		}
		if len(accounts) > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Check beneficiaries on: %s", strings.Join(accounts, ", ")))
		}

		if ec.data.Profile.MaritalStatus == "married" {
			recommendations = append(recommendations,
				"Ensure spouse is primary beneficiary on retirement accounts")
		}
	}

	benchmark := decimal.NewFromInt(100)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    fmt.Sprintf("%d/100", score),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "Annual beneficiary review recommended",
		Description:     "Beneficiary designation review status",
		Recommendations: recommendations,
	}
}

// DigitalEstateScore is binary: documented or not. Undocumented crypto gets
// the most urgent flag.
func (ec *EstateCalculator) DigitalEstateScore() domain.MetricResult {
	estate := ec.data.Estate

	score := int64(0)
	status := domain.StatusPoor
	display := "Incomplete"
	if estate.DigitalEstateDocumented {
		score = 100
		status = domain.StatusExcellent
		display = "Complete"
	}

	var recommendations []string
	if !estate.DigitalEstateDocumented {
		recommendations = append(recommendations,
			"Document digital assets and account access",
			"Consider a password manager with emergency access",
			"List cryptocurrency wallets and access keys",
			"Document social media account preferences (memorialize vs delete)")

		if ec.data.Assets.Crypto.GreaterThan(decimal.Zero) {
			urgent := fmt.Sprintf("URGENT: %s in crypto requires documented access",
				domain.FormatCurrency(ec.data.Assets.Crypto))
			recommendations = append([]string{urgent}, recommendations...)
		}
	}

	benchmark := decimal.NewFromInt(100)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    display,
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "Digital estate should be documented",
		Description:     "Digital asset and account documentation",
		Recommendations: recommendations,
	}
}

// AccountTitlingReview deducts for titling issues a probate review would
// flag. This metric bottoms out at POOR; there is no critical tier.
func (ec *EstateCalculator) AccountTitlingReview() domain.MetricResult {
	var issues []string
	score := int64(100)

	taxableAssets := ec.data.Assets.BrokerageTaxable.
		Add(ec.data.Assets.CheckingAccounts).
		Add(ec.data.Assets.SavingsAccounts)

	if taxableAssets.GreaterThan(decimal.NewFromInt(100000)) && !ec.data.Estate.HasTrust {
		issues = append(issues, "Large taxable accounts may benefit from trust titling")
		score -= 20
	}
	if ec.data.Assets.RealEstatePrimary.GreaterThan(decimal.NewFromInt(500000)) && !ec.data.Estate.HasTrust {
		issues = append(issues, "Consider trust for real estate to avoid probate")
		score -= 20
	}
	if ec.data.Profile.MaritalStatus == "married" &&
		ec.data.Assets.BrokerageTaxable.GreaterThan(decimal.NewFromInt(250000)) {
		issues = append(issues, "Review joint vs individual account titling for tax efficiency")
		score -= 10
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
	default:
		status = domain.StatusPoor
	}

	recommendations := issues
	if len(recommendations) == 0 {
		recommendations = []string{"Account titling appears appropriate"}
	}

	description := "No issues identified"
	if len(issues) > 0 {
		description = fmt.Sprintf("%d potential titling issues identified", len(issues))
	}

	benchmark := decimal.NewFromInt(85)
	return domain.MetricResult{
		Value:           decimal.NewFromInt(score),
		DisplayValue:    fmt.Sprintf("%d/100", score),
		Status:          status,
		Benchmark:       &benchmark,
		BenchmarkLabel:  "85+ indicates proper titling",
		Description:     description,
		Recommendations: recommendations,
	}
}

// SectionSummary aggregates with estate planning at 2x, beneficiaries at
// 1.5x, and the rest at 1x.
func (ec *EstateCalculator) SectionSummary() domain.SectionSummary {
	return summarize(
		"Legacy & Estate Readiness",
		"Is wealth transfer organized?",
		[]weightedMetric{
			weighted(domain.MetricEstatePlanning, ec.EstatePlanningScore(), decimal.NewFromInt(2)),
			weighted(domain.MetricBeneficiaries, ec.BeneficiaryStatus(), decimal.NewFromFloat(1.5)),
			unit(domain.MetricDigitalEstate, ec.DigitalEstateScore()),
			unit(domain.MetricAccountTitling, ec.AccountTitlingReview()),
		})
}
