package testutil

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/domain/payment"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/samber/lo"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

// Upsert creates or replaces the record holding the same natural key,
// mirroring the atomic upsert the document store performs.
func (s *InMemoryPaymentStore) Upsert(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	if p == nil {
		return nil, ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	existing, err := s.findByNaturalKey(ctx, p)
	if err != nil {
		return nil, err
	}

	stored := copyPayment(p)
	stored.UpdatedAt = time.Now().UTC()

	if existing != nil {
		// Keep the stored identity stable across upserts.
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		if err := s.InMemoryStore.Update(ctx, stored.ID, stored); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to update payment").
				Mark(ierr.ErrDatabase)
		}
		return copyPayment(stored), nil
	}

	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	if err := s.InMemoryStore.Create(ctx, stored.ID, stored); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create payment").
			WithReportableDetails(map[string]interface{}{
				"student_id": p.StudentID,
				"month":      p.Month,
			}).
			Mark(ierr.ErrDatabase)
	}
	return copyPayment(stored), nil
}

func (s *InMemoryPaymentStore) findByNaturalKey(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	key := p.NaturalKey()
	matches, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, stored *payment.Payment, _ interface{}) bool {
		return stored.NaturalKey() == key
	}, nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to look up payment").
			Mark(ierr.ErrDatabase)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *payment.Filter) ([]*payment.Payment, error) {
	payments, err := s.InMemoryStore.List(ctx, filter, paymentFilterFn, paymentSortFn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return lo.Map(payments, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) ListByStudent(ctx context.Context, studentID int) ([]*payment.Payment, error) {
	return s.List(ctx, &payment.Filter{StudentID: lo.ToPtr(studentID)})
}

func (s *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete payment").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryPaymentStore) DeleteByStudent(ctx context.Context, studentID int) error {
	payments, err := s.ListByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if err := s.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func paymentFilterFn(_ context.Context, p *payment.Payment, filter interface{}) bool {
	if p == nil {
		return false
	}

	f, ok := filter.(*payment.Filter)
	if !ok || f == nil {
		return true
	}

	if f.StudentID != nil && p.StudentID != *f.StudentID {
		return false
	}
	if f.Month != nil && p.Month != *f.Month {
		return false
	}
	if f.InstallmentsOnly && !p.IsInstallment {
		return false
	}
	return true
}

func paymentSortFn(i, j *payment.Payment) bool {
	if i == nil || j == nil {
		return false
	}
	if i.StudentID != j.StudentID {
		return i.StudentID < j.StudentID
	}
	return i.ID < j.ID
}

// Clear clears the payment store
func (s *InMemoryPaymentStore) Clear() {
	s.InMemoryStore.Clear()
}
