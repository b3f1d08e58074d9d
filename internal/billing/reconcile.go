package billing

import (
	"time"

	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
)

// Delta is the reconciliation outcome: records to remove and records to
// create. Applying it aligns the stored payments with the computed
// schedule.
type Delta struct {
	ToDelete []*payment.Payment
	ToCreate []*payment.Payment
}

// Empty reports whether applying the delta would perform no writes
func (d Delta) Empty() bool {
	return len(d.ToDelete) == 0 && len(d.ToCreate) == 0
}

// Reconcile diffs a student's existing payment records against the
// computed schedule and decides what to delete and what to create.
//
// Unpaid records carry no information beyond "not yet paid", so any unpaid
// record that does not exactly match a computed period is deleted and the
// period regenerated. Paid records survive with one exception: a
// non-installment paid record whose month fell out of the applicable range
// is removed, because that period is no longer part of the contract.
//
// Running the result back through Reconcile with unchanged inputs yields
// an empty delta.
func Reconcile(studentID int, applicableMonths []string, installmentTrack bool, installments int, existing []*payment.Payment) Delta {
	desired := desiredRecords(studentID, applicableMonths, installmentTrack, installments)

	desiredByKey := make(map[string]*payment.Payment, len(desired))
	for _, p := range desired {
		desiredByKey[p.NaturalKey()] = p
	}

	inRange := make(map[string]bool, len(applicableMonths))
	for _, m := range applicableMonths {
		inRange[m] = true
	}

	var delta Delta
	covered := make(map[string]bool)

	for _, p := range existing {
		if shouldDelete(p, desiredByKey, inRange, len(applicableMonths) > 0) {
			delta.ToDelete = append(delta.ToDelete, p)
			continue
		}
		covered[p.NaturalKey()] = true
	}

	for _, p := range desired {
		if covered[p.NaturalKey()] {
			continue
		}
		delta.ToCreate = append(delta.ToCreate, p)
	}

	return delta
}

func shouldDelete(p *payment.Payment, desiredByKey map[string]*payment.Payment, inRange map[string]bool, haveSchedule bool) bool {
	// A paid-or-not non-installment record outside the applicable range
	// reflects a period that is no longer owed. Skipped when no schedule
	// could be derived at all, so an unresolvable enrollment month never
	// destroys paid history.
	if !p.IsInstallment && haveSchedule && !inRange[p.Month] {
		return true
	}

	if p.IsPaid() {
		return false
	}

	// Unpaid: keep only an exact match for a computed period; anything
	// else (stale label, removed installment, track switch) regenerates.
	want, ok := desiredByKey[p.NaturalKey()]
	if !ok {
		return true
	}
	if p.Month != want.Month {
		return true
	}
	if p.IsInstallment && p.TotalInstallments != want.TotalInstallments {
		return true
	}
	return false
}

// desiredRecords builds the set of records the schedule calls for on an
// empty store: one Unpaid record per applicable month, or per installment.
func desiredRecords(studentID int, applicableMonths []string, installmentTrack bool, installments int) []*payment.Payment {
	if len(applicableMonths) == 0 {
		return nil
	}

	now := time.Now().UTC()

	if installmentTrack {
		if installments < 1 {
			installments = 1
		}
		months := InstallmentMonths(applicableMonths, installments)
		records := make([]*payment.Payment, 0, installments)
		for i := 1; i <= installments; i++ {
			records = append(records, &payment.Payment{
				ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
				StudentID:         studentID,
				Month:             payment.InstallmentLabel(i, months[i-1]),
				Status:            types.PaymentStatusUnpaid,
				AmountPaid:        decimal.Zero,
				IsInstallment:     true,
				InstallmentNumber: i,
				TotalInstallments: installments,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
		}
		return records
	}

	records := make([]*payment.Payment, 0, len(applicableMonths))
	for _, m := range applicableMonths {
		records = append(records, &payment.Payment{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
			StudentID:  studentID,
			Month:      m,
			Status:     types.PaymentStatusUnpaid,
			AmountPaid: decimal.Zero,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return records
}
