package student

import (
	"context"

	"github.com/hometuition/hometuition/internal/types"
)

// Repository defines the interface for student persistence operations
type Repository interface {
	// Create persists a new student
	Create(ctx context.Context, s *Student) error

	// GetByStudentID retrieves a student by the externally visible
	// sequential identifier
	GetByStudentID(ctx context.Context, studentID int) (*Student, error)

	// List retrieves students matching the filter
	List(ctx context.Context, filter *Filter) ([]*Student, error)

	// Update replaces the stored student record
	Update(ctx context.Context, s *Student) error

	// DeleteByStudentID removes a student record entirely
	DeleteByStudentID(ctx context.Context, studentID int) error
}

// Filter defines query parameters for listing students
type Filter struct {
	// IncludeInactive includes students whose active flag is false
	IncludeInactive bool

	// Statuses filters by specific enrollment statuses
	Statuses []types.StudentStatus

	// Class filters by exact class label
	Class *string
}
