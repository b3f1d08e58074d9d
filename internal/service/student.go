package service

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/api/dto"
	"github.com/hometuition/hometuition/internal/billing"
	"github.com/hometuition/hometuition/internal/domain/sequence"
	"github.com/hometuition/hometuition/internal/domain/student"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/samber/lo"
)

type StudentService interface {
	EnrollStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, studentID int) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context, req dto.ListStudentsRequest) (*dto.ListStudentsResponse, error)
	UpdateStudent(ctx context.Context, studentID int, req dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, studentID int) error
}

type studentService struct {
	ServiceParams
}

func NewStudentService(params ServiceParams) StudentService {
	return &studentService{
		ServiceParams: params,
	}
}

// BillingFieldsChanged reports whether an edit touched any field that
// bounds or shapes the payment schedule. It is a pure transition function
// over (old, new); callers re-run reconciliation exactly when it returns
// true.
func BillingFieldsChanged(old, new *student.Student) bool {
	if old.FeeType != new.FeeType {
		return true
	}
	if old.EnrollmentMonth != new.EnrollmentMonth {
		return true
	}
	if old.EndMonth != new.EndMonth {
		return true
	}
	if old.Status != new.Status {
		return true
	}
	if old.Installments != new.Installments {
		return true
	}
	return !equalLeftAt(old.LeftAt, new.LeftAt)
}

func equalLeftAt(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *studentService) EnrollStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stu := req.ToStudent(ctx)

	studentID, err := s.SequenceRepo.Next(ctx, sequence.StudentIDSequence)
	if err != nil {
		return nil, err
	}
	stu.StudentID = studentID

	if err := stu.Validate(); err != nil {
		return nil, err
	}

	if err := s.StudentRepo.Create(ctx, stu); err != nil {
		return nil, err
	}

	if err := s.reconcileSchedule(ctx, stu); err != nil {
		return nil, err
	}

	s.Logger.Infow("enrolled student",
		"student_id", stu.StudentID,
		"class", stu.Class,
		"fee_type", stu.FeeType,
		"enrollment_month", stu.EnrollmentMonth)

	s.invalidateSummaryCache(ctx)
	return &dto.StudentResponse{Student: stu}, nil
}

func (s *studentService) GetStudent(ctx context.Context, studentID int) (*dto.StudentResponse, error) {
	if studentID <= 0 {
		return nil, invalidStudentIDError(studentID)
	}

	stu, err := s.StudentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.StudentResponse{Student: stu}, nil
}

func (s *studentService) ListStudents(ctx context.Context, req dto.ListStudentsRequest) (*dto.ListStudentsResponse, error) {
	students, err := s.StudentRepo.List(ctx, &student.Filter{
		IncludeInactive: req.IncludeInactive,
		Class:           req.Class,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ListStudentsResponse{
		Items: lo.Map(students, func(stu *student.Student, _ int) *dto.StudentResponse {
			return &dto.StudentResponse{Student: stu}
		}),
		Total: len(students),
	}, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, studentID int, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if studentID <= 0 {
		return nil, invalidStudentIDError(studentID)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stu, err := s.StudentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	before := *stu
	req.Apply(stu)
	s.applyStatusTransition(stu, &before, &req)

	if err := stu.Validate(); err != nil {
		return nil, err
	}
	stu.UpdatedAt = time.Now().UTC()

	if err := s.StudentRepo.Update(ctx, stu); err != nil {
		return nil, err
	}

	if BillingFieldsChanged(&before, stu) {
		if err := s.reconcileSchedule(ctx, stu); err != nil {
			return nil, err
		}
		s.Logger.Infow("rebuilt payment schedule",
			"student_id", stu.StudentID,
			"status", stu.Status,
			"enrollment_month", stu.EnrollmentMonth,
			"end_month", stu.EndMonth)
	}

	s.invalidateSummaryCache(ctx)
	return &dto.StudentResponse{Student: stu}, nil
}

// applyStatusTransition stamps or clears leftAt and keeps the active flag
// in step with the status, unless the caller set either explicitly.
func (s *studentService) applyStatusTransition(stu, before *student.Student, req *dto.UpdateStudentRequest) {
	if req.Status == nil {
		return
	}

	switch *req.Status {
	case types.StudentStatusLeft:
		if stu.LeftAt == nil || (before.Status != types.StudentStatusLeft && req.LeftAt == nil) {
			stu.LeftAt = lo.ToPtr(time.Now().UTC())
		}
	case types.StudentStatusActive:
		stu.LeftAt = nil
	}

	if req.Active == nil {
		stu.Active = *req.Status == types.StudentStatusActive
	}
}

func (s *studentService) DeleteStudent(ctx context.Context, studentID int) error {
	if studentID <= 0 {
		return invalidStudentIDError(studentID)
	}

	stu, err := s.StudentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.PaymentRepo.DeleteByStudent(ctx, stu.StudentID); err != nil {
		return err
	}
	if err := s.StudentRepo.DeleteByStudentID(ctx, stu.StudentID); err != nil {
		return err
	}

	s.Logger.Infow("deleted student and payment history", "student_id", stu.StudentID)
	s.invalidateSummaryCache(ctx)
	return nil
}

// reconcileSchedule aligns the stored payment records with the schedule
// derived from the student's current billing fields.
func (s *studentService) reconcileSchedule(ctx context.Context, stu *student.Student) error {
	applicable := billing.ResolveApplicableMonths(stu.EnrollmentMonth, stu.EndMonth, stu.Status, stu.LeftAt)

	existing, err := s.PaymentRepo.ListByStudent(ctx, stu.StudentID)
	if err != nil {
		return err
	}

	delta := billing.Reconcile(stu.StudentID, applicable, stu.OnInstallmentTrack(), stu.InstallmentCount(), existing)
	if delta.Empty() {
		return nil
	}

	for _, p := range delta.ToDelete {
		if err := s.PaymentRepo.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	for _, p := range delta.ToCreate {
		if _, err := s.PaymentRepo.Upsert(ctx, p); err != nil {
			return err
		}
	}

	s.Logger.Debugw("applied reconciliation delta",
		"student_id", stu.StudentID,
		"deleted", len(delta.ToDelete),
		"created", len(delta.ToCreate))
	return nil
}

func (s *studentService) invalidateSummaryCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	s.Cache.DeleteByPrefix(ctx, summaryCachePrefix)
}

func invalidStudentIDError(studentID int) error {
	return ierr.NewError("invalid student ID").
		WithHint("Student ID must be a positive number").
		WithReportableDetails(map[string]interface{}{
			"student_id": studentID,
		}).
		Mark(ierr.ErrValidation)
}
