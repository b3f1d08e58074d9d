package payment

import "context"

// Repository defines the interface for fee payment persistence operations.
// Upsert is atomic on the record's natural key so concurrent payment
// updates cannot produce duplicates for the same period.
type Repository interface {
	// Upsert creates or replaces the payment record keyed by its natural
	// uniqueness: (student, month) or (student, installment number)
	Upsert(ctx context.Context, p *Payment) (*Payment, error)

	// List retrieves payment records matching the filter
	List(ctx context.Context, filter *Filter) ([]*Payment, error)

	// ListByStudent retrieves all payment records for a student
	ListByStudent(ctx context.Context, studentID int) ([]*Payment, error)

	// Delete removes a payment record by ID
	Delete(ctx context.Context, id string) error

	// DeleteByStudent removes all payment records for a student
	DeleteByStudent(ctx context.Context, studentID int) error
}

// Filter defines query parameters for listing payments
type Filter struct {
	// StudentID filters by a specific student
	StudentID *int

	// Month filters by an exact month label
	Month *string

	// InstallmentsOnly limits results to installment records
	InstallmentsOnly bool
}
