package testutil

import (
	"context"

	"github.com/hometuition/hometuition/internal/domain/student"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/samber/lo"
)

// InMemoryStudentStore implements student.Repository
type InMemoryStudentStore struct {
	*InMemoryStore[*student.Student]
}

// NewInMemoryStudentStore creates a new in-memory student store
func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{
		InMemoryStore: NewInMemoryStore[*student.Student](),
	}
}

func copyStudent(s *student.Student) *student.Student {
	if s == nil {
		return nil
	}
	copied := *s
	if s.LeftAt != nil {
		copied.LeftAt = lo.ToPtr(*s.LeftAt)
	}
	return &copied
}

func (s *InMemoryStudentStore) Create(ctx context.Context, st *student.Student) error {
	if st == nil {
		return ierr.NewError("student cannot be nil").
			WithHint("Student cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if existing, _ := s.GetByStudentID(ctx, st.StudentID); existing != nil {
		return ierr.NewError("student already exists").
			WithHint("A student with this ID already exists").
			WithReportableDetails(map[string]interface{}{
				"student_id": st.StudentID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.InMemoryStore.Create(ctx, st.ID, copyStudent(st)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create student").
			WithReportableDetails(map[string]interface{}{
				"student_id": st.StudentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryStudentStore) GetByStudentID(ctx context.Context, studentID int) (*student.Student, error) {
	students, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, st *student.Student, _ interface{}) bool {
		return st.StudentID == studentID
	}, nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to look up student").
			Mark(ierr.ErrDatabase)
	}
	if len(students) == 0 {
		return nil, ierr.NewError("student not found").
			WithHint("Student not found").
			WithReportableDetails(map[string]interface{}{
				"student_id": studentID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyStudent(students[0]), nil
}

func (s *InMemoryStudentStore) List(ctx context.Context, filter *student.Filter) ([]*student.Student, error) {
	students, err := s.InMemoryStore.List(ctx, filter, studentFilterFn, studentSortFn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list students").
			Mark(ierr.ErrDatabase)
	}
	return lo.Map(students, func(st *student.Student, _ int) *student.Student {
		return copyStudent(st)
	}), nil
}

func (s *InMemoryStudentStore) Update(ctx context.Context, st *student.Student) error {
	if st == nil {
		return ierr.NewError("student cannot be nil").
			WithHint("Student cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if err := s.InMemoryStore.Update(ctx, st.ID, copyStudent(st)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update student").
			WithReportableDetails(map[string]interface{}{
				"student_id": st.StudentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryStudentStore) DeleteByStudentID(ctx context.Context, studentID int) error {
	existing, err := s.GetByStudentID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.InMemoryStore.Delete(ctx, existing.ID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete student").
			WithReportableDetails(map[string]interface{}{
				"student_id": studentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func studentFilterFn(_ context.Context, st *student.Student, filter interface{}) bool {
	if st == nil {
		return false
	}

	f, ok := filter.(*student.Filter)
	if !ok || f == nil {
		return true
	}

	if !f.IncludeInactive && !st.Active {
		return false
	}
	if len(f.Statuses) > 0 && !lo.Contains(f.Statuses, st.Status) {
		return false
	}
	if f.Class != nil && st.Class != *f.Class {
		return false
	}
	return true
}

func studentSortFn(i, j *student.Student) bool {
	if i == nil || j == nil {
		return false
	}
	return i.StudentID < j.StudentID
}

// Clear clears the student store
func (s *InMemoryStudentStore) Clear() {
	s.InMemoryStore.Clear()
}
