package payment

import (
	"fmt"
	"time"

	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
)

// Payment represents a fee payment record for a single billing period. A
// period with no record is implicitly Unpaid at the expected fee amount.
type Payment struct {
	ID                string              `json:"id" bson:"_id"`
	StudentID         int                 `json:"student_id" bson:"student_id"`
	Month             string              `json:"month" bson:"month"`
	Status            types.PaymentStatus `json:"status" bson:"status"`
	AmountPaid        decimal.Decimal     `json:"amount_paid" bson:"amount_paid"`
	IsInstallment     bool                `json:"is_installment" bson:"is_installment"`
	InstallmentNumber int                 `json:"installment_number,omitempty" bson:"installment_number,omitempty"`
	TotalInstallments int                 `json:"total_installments,omitempty" bson:"total_installments,omitempty"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

// InstallmentLabel builds the synthetic month label carried by installment
// records, e.g. "Installment 2 (September 2025)".
func InstallmentLabel(number int, month string) string {
	return fmt.Sprintf("Installment %d (%s)", number, month)
}

// NaturalKey returns the uniqueness key for the record: at most one
// non-installment payment per (student, month) and at most one installment
// payment per (student, installment number). Upserts are keyed on this.
func (p *Payment) NaturalKey() string {
	if p.IsInstallment {
		return fmt.Sprintf("%d|installment|%d", p.StudentID, p.InstallmentNumber)
	}
	return fmt.Sprintf("%d|month|%s", p.StudentID, p.Month)
}

// IsPaid returns true when the record is marked Paid
func (p *Payment) IsPaid() bool {
	return p.Status == types.PaymentStatusPaid
}

// Validate validates the payment record
func (p *Payment) Validate() error {
	if p.StudentID <= 0 {
		return ierr.NewError("student_id is required").
			WithHint("A valid student ID is required").
			Mark(ierr.ErrValidation)
	}
	if p.Month == "" {
		return ierr.NewError("month is required").
			WithHint("Month is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Status.Validate(); err != nil {
		return err
	}
	if p.IsInstallment && p.InstallmentNumber < 1 {
		return ierr.NewError("installment_number must be 1-based").
			WithHint("Installment number must be 1 or greater").
			WithReportableDetails(map[string]interface{}{
				"installment_number": p.InstallmentNumber,
			}).
			Mark(ierr.ErrValidation)
	}
	if p.AmountPaid.IsNegative() {
		return ierr.NewError("amount_paid cannot be negative").
			WithHint("Paid amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
