package dto

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/domain/payment"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/hometuition/hometuition/internal/validator"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	StudentID         int                 `json:"student_id" validate:"required,gt=0"`
	Month             string              `json:"month" validate:"required"`
	Status            types.PaymentStatus `json:"status" validate:"required"`
	AmountPaid        *decimal.Decimal    `json:"amount_paid,omitempty"`
	IsInstallment     bool                `json:"is_installment"`
	InstallmentNumber int                 `json:"installment_number,omitempty"`
	TotalInstallments int                 `json:"total_installments,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if r.IsInstallment && r.InstallmentNumber < 1 {
		return ierr.NewError("installment_number must be 1-based").
			WithHint("Installment number must be 1 or greater").
			WithReportableDetails(map[string]interface{}{
				"installment_number": r.InstallmentNumber,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.AmountPaid != nil && r.AmountPaid.IsNegative() {
		return ierr.NewError("amount_paid cannot be negative").
			WithHint("Paid amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *RecordPaymentRequest) ToPayment(ctx context.Context) *payment.Payment {
	now := time.Now().UTC()

	amount := decimal.Zero
	if r.AmountPaid != nil {
		amount = *r.AmountPaid
	}

	return &payment.Payment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		StudentID:         r.StudentID,
		Month:             r.Month,
		Status:            r.Status,
		AmountPaid:        amount,
		IsInstallment:     r.IsInstallment,
		InstallmentNumber: r.InstallmentNumber,
		TotalInstallments: r.TotalInstallments,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

type PaymentResponse struct {
	*payment.Payment
}

type ListPaymentsResponse struct {
	Items []*PaymentResponse `json:"items"`
	Total int                `json:"total"`
}

type ListPaymentsRequest struct {
	StudentID        *int    `form:"student_id"`
	Month            *string `form:"month"`
	InstallmentsOnly bool    `form:"installments_only"`
}
