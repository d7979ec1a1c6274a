package disability

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ssdiWaitingMonths is the statutory SSDI waiting period after the onset of
// disability.
const ssdiWaitingMonths = 5

// retirementAgeYears approximates the Social Security normal retirement age
// used to bound the benefit timeline.
const retirementAgeYears = 65

// TimelineRow is one month of projected benefit cash flow.
type TimelineRow struct {
	Date              time.Time       `json:"date"` // first of the month
	MonthIndex        int             `json:"month_index"`
	GrossBenefit      decimal.Decimal `json:"gross_benefit"`
	SSDIOffset        decimal.Decimal `json:"ssdi_offset"`
	WorkersCompOffset decimal.Decimal `json:"workers_comp_offset"`
	TotalOffsets      decimal.Decimal `json:"total_offsets"`
	NetPayout         decimal.Decimal `json:"net_payout"`
}

// CashFlowModel projects the monthly benefit timeline for one policy and one
// claimant. It is a pure function of its inputs.
type CashFlowModel struct {
	policy GroupDisabilityPolicy
	inputs UserInputs
}

// NewCashFlowModel validates the policy and builds a model.
func NewCashFlowModel(policy GroupDisabilityPolicy, inputs UserInputs) (*CashFlowModel, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return &CashFlowModel{policy: policy, inputs: inputs}, nil
}

// InsurableEarnings returns the monthly earnings the policy covers. When the
// extraction flagged specific components, only those are summed; commissions
// and overtime carry flags but no amounts, so base salary and bonus are the
// only contributors either way. With nothing flagged at all, base plus bonus
// is treated as fully covered.
func (m *CashFlowModel) InsurableEarnings() decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	ed := m.policy.EarningsDefinition

	if !ed.AnyComponentFlagged() {
		return m.inputs.AnnualBaseSalary.Add(m.inputs.AnnualBonus).Div(twelve)
	}

	monthly := decimal.Zero
	if ed.IncludesBaseSalary {
		monthly = monthly.Add(m.inputs.AnnualBaseSalary.Div(twelve))
	}
	if ed.IncludesBonuses {
		monthly = monthly.Add(m.inputs.AnnualBonus.Div(twelve))
	}
	return monthly
}

// ReplacementRate returns the replacement rate as a decimal fraction. Rates
// above 1 are interpreted as percentages (60 -> 0.60).
func (m *CashFlowModel) ReplacementRate() decimal.Decimal {
	rate := m.policy.BenefitParameters.ReplacementPercentage
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// monthStartOnOrAfter returns t if it is already the first of a month,
// otherwise the first of the following month.
func monthStartOnOrAfter(t time.Time) time.Time {
	if t.Day() == 1 {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}

// GenerateTimeline produces one row per month from the disability date
// through the approximate Social Security normal retirement age.
//
// Gross benefit begins once the elimination period has elapsed. The SSDI
// offset, when the policy deducts it, begins after the 5-month statutory
// wait. Workers' compensation, when deducted, applies from onset. The policy
// minimum floors the net payout only in months where benefits are active; it
// never manufactures a payout before the benefit start date.
func (m *CashFlowModel) GenerateTimeline() []TimelineRow {
	disabilityDate := m.inputs.DateOfDisability
	benefitStartDate := disabilityDate.AddDate(0, 0, m.policy.BenefitParameters.EliminationPeriodDays)
	benefitEndDate := m.inputs.DateOfBirth.AddDate(retirementAgeYears, 0, 0)

	grossBenefit := m.InsurableEarnings().Mul(m.ReplacementRate())
	if grossBenefit.GreaterThan(m.policy.BenefitParameters.MaximumMonthlyBenefit) {
		grossBenefit = m.policy.BenefitParameters.MaximumMonthlyBenefit
	}

	ssdiAmount := decimal.Zero
	ssdiStartDate := disabilityDate.AddDate(0, ssdiWaitingMonths, 0)
	if m.policy.DeductibleOffsets.OffsetsPrimarySSDI {
		ssdiAmount = CalculateSSDIPIA2026(m.inputs.AIME)
	}

	wcAmount := decimal.Zero
	if m.policy.DeductibleOffsets.OffsetsWorkersComp {
		wcAmount = m.inputs.MonthlyWorkersComp
	}

	minBenefit := m.policy.BenefitParameters.MinimumMonthlyBenefit

	var rows []TimelineRow
	index := 1
	for month := monthStartOnOrAfter(disabilityDate); !month.After(benefitEndDate); month = month.AddDate(0, 1, 0) {
		row := TimelineRow{Date: month, MonthIndex: index}

		if !month.Before(benefitStartDate) {
			row.GrossBenefit = grossBenefit
		}
		if m.policy.DeductibleOffsets.OffsetsPrimarySSDI && !month.Before(ssdiStartDate) {
			row.SSDIOffset = ssdiAmount
		}
		if m.policy.DeductibleOffsets.OffsetsWorkersComp && !month.Before(disabilityDate) {
			row.WorkersCompOffset = wcAmount
		}
		row.TotalOffsets = row.SSDIOffset.Add(row.WorkersCompOffset)

		if row.GrossBenefit.GreaterThan(decimal.Zero) {
			net := row.GrossBenefit.Sub(row.TotalOffsets)
			if net.LessThan(minBenefit) {
				net = minBenefit
			}
			row.NetPayout = net
		}

		rows = append(rows, row)
		index++
	}
	return rows
}
