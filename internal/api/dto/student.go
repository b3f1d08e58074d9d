package dto

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/domain/student"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/hometuition/hometuition/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateStudentRequest struct {
	Name            string          `json:"name" validate:"required"`
	ParentNumber    string          `json:"parent_number" validate:"required"`
	Class           string          `json:"class" validate:"required"`
	MonthlyFee      decimal.Decimal `json:"monthly_fee"`
	YearlyFee       decimal.Decimal `json:"yearly_fee"`
	FeeType         types.FeeType   `json:"fee_type" validate:"required"`
	Installments    int             `json:"installments"`
	EnrollmentMonth string          `json:"enrollment_month" validate:"required"`
	EndMonth        string          `json:"end_month"`
}

func (r *CreateStudentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.FeeType.Validate(); err != nil {
		return err
	}
	if r.Installments < 0 {
		return ierr.NewError("installments must be positive").
			WithHint("Installments must be a positive number").
			WithReportableDetails(map[string]interface{}{
				"installments": r.Installments,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.MonthlyFee.IsNegative() || r.YearlyFee.IsNegative() {
		return ierr.NewError("fee amounts cannot be negative").
			WithHint("Fee amounts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateStudentRequest) ToStudent(ctx context.Context) *student.Student {
	now := time.Now().UTC()

	endMonth := r.EndMonth
	if endMonth == "" {
		endMonth = types.LastAcademicMonth()
	}

	installments := r.Installments
	if installments < 1 {
		installments = 1
	}

	return &student.Student{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STUDENT),
		Name:            r.Name,
		ParentNumber:    r.ParentNumber,
		Class:           r.Class,
		MonthlyFee:      r.MonthlyFee,
		YearlyFee:       r.YearlyFee,
		FeeType:         r.FeeType,
		Installments:    installments,
		EnrollmentMonth: r.EnrollmentMonth,
		EndMonth:        endMonth,
		Status:          types.StudentStatusActive,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateStudentRequest carries optional field changes. Nil fields are left
// untouched on the stored record.
type UpdateStudentRequest struct {
	Name            *string              `json:"name,omitempty"`
	ParentNumber    *string              `json:"parent_number,omitempty"`
	Class           *string              `json:"class,omitempty"`
	MonthlyFee      *decimal.Decimal     `json:"monthly_fee,omitempty"`
	YearlyFee       *decimal.Decimal     `json:"yearly_fee,omitempty"`
	FeeType         *types.FeeType       `json:"fee_type,omitempty"`
	Installments    *int                 `json:"installments,omitempty"`
	EnrollmentMonth *string              `json:"enrollment_month,omitempty"`
	EndMonth        *string              `json:"end_month,omitempty"`
	Status          *types.StudentStatus `json:"status,omitempty"`
	LeftAt          *time.Time           `json:"left_at,omitempty"`
	Active          *bool                `json:"active,omitempty"`
}

func (r *UpdateStudentRequest) Validate() error {
	if r.FeeType != nil {
		if err := r.FeeType.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.Installments != nil && *r.Installments < 1 {
		return ierr.NewError("installments must be positive").
			WithHint("Installments must be a positive number").
			WithReportableDetails(map[string]interface{}{
				"installments": *r.Installments,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.MonthlyFee != nil && r.MonthlyFee.IsNegative() {
		return ierr.NewError("monthly_fee cannot be negative").
			WithHint("Fee amounts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.YearlyFee != nil && r.YearlyFee.IsNegative() {
		return ierr.NewError("yearly_fee cannot be negative").
			WithHint("Fee amounts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply copies the set fields onto the student. Status transitions that
// touch leftAt are handled by the service, not here.
func (r *UpdateStudentRequest) Apply(s *student.Student) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.ParentNumber != nil {
		s.ParentNumber = *r.ParentNumber
	}
	if r.Class != nil {
		s.Class = *r.Class
	}
	if r.MonthlyFee != nil {
		s.MonthlyFee = *r.MonthlyFee
	}
	if r.YearlyFee != nil {
		s.YearlyFee = *r.YearlyFee
	}
	if r.FeeType != nil {
		s.FeeType = *r.FeeType
	}
	if r.Installments != nil {
		s.Installments = *r.Installments
	}
	if r.EnrollmentMonth != nil {
		s.EnrollmentMonth = *r.EnrollmentMonth
	}
	if r.EndMonth != nil {
		s.EndMonth = *r.EndMonth
	}
	if r.Status != nil {
		s.Status = *r.Status
	}
	if r.LeftAt != nil {
		s.LeftAt = r.LeftAt
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
}

type StudentResponse struct {
	*student.Student
}

type ListStudentsResponse struct {
	Items []*StudentResponse `json:"items"`
	Total int                `json:"total"`
}

type ListStudentsRequest struct {
	IncludeInactive bool    `form:"include_inactive"`
	Class           *string `form:"class"`
}
