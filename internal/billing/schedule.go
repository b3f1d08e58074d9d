package billing

import (
	"time"

	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
)

// defaultYearlyFee is the final fallback when neither a yearly nor a
// monthly fee is set; the system never presents a zero fee.
var defaultYearlyFee = decimal.NewFromInt(12000)

// contractMonths is the number of billable months in the academic year,
// used when a yearly fee must be derived from a monthly one.
const contractMonths = 11

// ResolveApplicableMonths derives the ordered list of academic-year labels
// a student owes fees for, bounded by enrollment and, where applicable,
// departure or contract end.
//
// An unrecognized enrollment month yields an empty list: no schedule can be
// derived, which callers treat as "no billing obligation yet" rather than
// an error.
func ResolveApplicableMonths(enrollmentMonth, endMonth string, status types.StudentStatus, leftAt *time.Time) []string {
	startIdx := types.MonthIndex(enrollmentMonth)
	if startIdx < 0 {
		return nil
	}

	endIdx := -1
	if status == types.StudentStatusLeft && leftAt != nil {
		// A departed student is billed through the earlier of the actual
		// departure month and the contracted end month.
		leftIdx := types.MonthIndex(types.MonthLabelForTime(*leftAt))
		endMonthIdx := types.MonthIndex(endMonth)

		switch {
		case leftIdx >= 0 && endMonthIdx >= 0:
			endIdx = min(leftIdx, endMonthIdx)
		case leftIdx >= 0:
			endIdx = leftIdx
		case endMonthIdx >= 0:
			endIdx = endMonthIdx
		default:
			return []string{enrollmentMonth}
		}
	} else {
		endIdx = types.MonthIndex(endMonth)
		if endIdx < 0 {
			endIdx = len(types.AcademicYearMonths) - 1
		}
	}

	// Never produce a reversed range.
	if endIdx < startIdx {
		return []string{enrollmentMonth}
	}

	months := make([]string, endIdx-startIdx+1)
	copy(months, types.AcademicYearMonths[startIdx:endIdx+1])
	return months
}

// InstallmentMonths returns the representative month for each of n
// installments spread across the applicable months. Installment i maps to
// applicableMonths[floor(L*(i-1)/n)], clamped to the first element.
func InstallmentMonths(applicableMonths []string, installments int) []string {
	if len(applicableMonths) == 0 || installments < 1 {
		return nil
	}

	months := make([]string, installments)
	for i := 1; i <= installments; i++ {
		idx := len(applicableMonths) * (i - 1) / installments
		if idx < 0 || idx >= len(applicableMonths) {
			idx = 0
		}
		months[i-1] = applicableMonths[idx]
	}
	return months
}

// InstallmentAmount returns the per-installment amount: the yearly fee
// split evenly and rounded to a whole amount. Falls back to twelve monthly
// fees, then to the fixed default, when the yearly fee is unset.
func InstallmentAmount(yearlyFee, monthlyFee decimal.Decimal, installments int) decimal.Decimal {
	if installments < 1 {
		installments = 1
	}
	fee := yearlyFee
	if !fee.IsPositive() {
		fee = monthlyFee.Mul(decimal.NewFromInt(12))
	}
	if !fee.IsPositive() {
		fee = defaultYearlyFee
	}
	return fee.Div(decimal.NewFromInt(int64(installments))).Round(0)
}

// ContractFee returns the whole-year contractual fee used by the summary
// for installment-track students: the yearly fee when set, otherwise the
// monthly fee across the full academic year.
func ContractFee(yearlyFee, monthlyFee decimal.Decimal) decimal.Decimal {
	if yearlyFee.IsPositive() {
		return yearlyFee
	}
	return monthlyFee.Mul(decimal.NewFromInt(contractMonths))
}
