package student

import (
	"strings"
	"time"

	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
)

// Student represents the domain model for an enrolled student
type Student struct {
	ID              string              `json:"id" bson:"_id"`
	StudentID       int                 `json:"student_id" bson:"student_id"`
	Name            string              `json:"name" bson:"name"`
	ParentNumber    string              `json:"parent_number" bson:"parent_number"`
	Class           string              `json:"class" bson:"class"`
	MonthlyFee      decimal.Decimal     `json:"monthly_fee" bson:"monthly_fee"`
	YearlyFee       decimal.Decimal     `json:"yearly_fee" bson:"yearly_fee"`
	FeeType         types.FeeType       `json:"fee_type" bson:"fee_type"`
	Installments    int                 `json:"installments" bson:"installments"`
	EnrollmentMonth string              `json:"enrollment_month" bson:"enrollment_month"`
	EndMonth        string              `json:"end_month" bson:"end_month"`
	Status          types.StudentStatus `json:"status" bson:"status"`
	LeftAt          *time.Time          `json:"left_at,omitempty" bson:"left_at,omitempty"`
	Active          bool                `json:"active" bson:"active"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// terminal-year markers matched case-insensitively against the class label
var terminalYearMarkers = []string{"10"}

var terminalYearExact = map[string]bool{
	"x":       true,
	"class x": true,
}

// IsTerminalYearClass reports whether a class label belongs to the final
// year, which is billed as lump-sum installments against the yearly fee.
func IsTerminalYearClass(class string) bool {
	c := strings.ToLower(strings.TrimSpace(class))
	if terminalYearExact[c] {
		return true
	}
	for _, marker := range terminalYearMarkers {
		if strings.Contains(c, marker) {
			return true
		}
	}
	return false
}

// IsClass10 reports whether the student is flagged as terminal-year via the
// class label.
func (s *Student) IsClass10() bool {
	return IsTerminalYearClass(s.Class)
}

// OnInstallmentTrack reports whether the student is billed via installments
// against a yearly fee rather than per month.
func (s *Student) OnInstallmentTrack() bool {
	return s.FeeType == types.FeeTypeYearly || s.IsClass10()
}

// InstallmentCount returns the number of installments, never less than 1.
func (s *Student) InstallmentCount() int {
	if s.Installments > 0 {
		return s.Installments
	}
	return 1
}

// Validate validates the student
func (s *Student) Validate() error {
	if s.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Student name is required").
			Mark(ierr.ErrValidation)
	}
	if s.ParentNumber == "" {
		return ierr.NewError("parent_number is required").
			WithHint("Parent contact number is required").
			Mark(ierr.ErrValidation)
	}
	if s.Class == "" {
		return ierr.NewError("class is required").
			WithHint("Class is required").
			Mark(ierr.ErrValidation)
	}
	if err := s.FeeType.Validate(); err != nil {
		return err
	}
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if s.Installments < 0 {
		return ierr.NewError("installments must be positive").
			WithHint("Installments must be a positive number").
			WithReportableDetails(map[string]interface{}{
				"installments": s.Installments,
			}).
			Mark(ierr.ErrValidation)
	}
	if s.MonthlyFee.IsNegative() || s.YearlyFee.IsNegative() {
		return ierr.NewError("fee amounts cannot be negative").
			WithHint("Fee amounts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
