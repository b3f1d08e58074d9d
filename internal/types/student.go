package types

import (
	ierr "github.com/hometuition/hometuition/internal/errors"
)

// StudentStatus represents the enrollment state of a student
type StudentStatus string

const (
	StudentStatusActive  StudentStatus = "Active"
	StudentStatusLeft    StudentStatus = "Left"
	StudentStatusVoid    StudentStatus = "Void"
	StudentStatusAbandon StudentStatus = "Abandon"
)

// Validate validates the student status
func (s StudentStatus) Validate() error {
	switch s {
	case StudentStatusActive, StudentStatusLeft, StudentStatusVoid, StudentStatusAbandon:
		return nil
	default:
		return ierr.NewError("invalid student status").
			WithHint("Status must be one of: Active, Left, Void, Abandon").
			WithReportableDetails(map[string]interface{}{
				"status": string(s),
			}).
			Mark(ierr.ErrValidation)
	}
}

// IsBillable returns false for the non-billable states. Void and Abandon
// enrollments contribute nothing to earnings or pending amounts.
func (s StudentStatus) IsBillable() bool {
	return s != StudentStatusVoid && s != StudentStatusAbandon
}

// FeeType represents the billing track of a student
type FeeType string

const (
	FeeTypeMonthly FeeType = "monthly"
	FeeTypeYearly  FeeType = "yearly"
)

// Validate validates the fee type
func (f FeeType) Validate() error {
	switch f {
	case FeeTypeMonthly, FeeTypeYearly:
		return nil
	default:
		return ierr.NewError("invalid fee type").
			WithHint("Fee type must be one of: monthly, yearly").
			WithReportableDetails(map[string]interface{}{
				"fee_type": string(f),
			}).
			Mark(ierr.ErrValidation)
	}
}

// PaymentStatus represents the state of a fee payment record
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
)

// Validate validates the payment status
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentStatusPaid, PaymentStatusUnpaid:
		return nil
	default:
		return ierr.NewError("invalid payment status").
			WithHint("Payment status must be one of: Paid, Unpaid").
			WithReportableDetails(map[string]interface{}{
				"payment_status": string(p),
			}).
			Mark(ierr.ErrValidation)
	}
}
