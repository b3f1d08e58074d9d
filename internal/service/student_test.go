package service

import (
	"testing"
	"time"

	"github.com/hometuition/hometuition/internal/api/dto"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/domain/student"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/testutil"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StudentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service StudentService
	params  ServiceParams
}

func TestStudentService(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}

func (s *StudentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		Cache:        s.GetCache(),
		StudentRepo:  s.GetStores().StudentRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		SequenceRepo: s.GetStores().SequenceRepo,
	}
	s.service = NewStudentService(s.params)
}

func (s *StudentServiceSuite) enroll(req dto.CreateStudentRequest) *student.Student {
	resp, err := s.service.EnrollStudent(s.GetContext(), req)
	s.NoError(err)
	s.NotNil(resp)
	return resp.Student
}

func (s *StudentServiceSuite) TestEnrollStudent() {
	s.Run("Monthly Track Seeds One Record Per Applicable Month", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Asha Verma",
			ParentNumber:    "9876543210",
			Class:           "7",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
		})

		s.Equal(1, stu.StudentID)
		s.Equal(types.StudentStatusActive, stu.Status)
		s.Equal("April 2026", stu.EndMonth)

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(payments, 11)
		for _, p := range payments {
			s.Equal(types.PaymentStatusUnpaid, p.Status)
			s.False(p.IsInstallment)
		}
	})

	s.Run("Installment Track Seeds One Record Per Installment", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Rohan Gupta",
			ParentNumber:    "9876500000",
			Class:           "10",
			YearlyFee:       decimal.NewFromInt(9000),
			FeeType:         types.FeeTypeYearly,
			Installments:    3,
			EnrollmentMonth: "June 2025",
		})

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(payments, 3)
		for _, p := range payments {
			s.True(p.IsInstallment)
			s.Equal(3, p.TotalInstallments)
		}
	})

	s.Run("Sequential Student IDs", func() {
		first := s.enroll(dto.CreateStudentRequest{
			Name:            "First",
			ParentNumber:    "1111111111",
			Class:           "5",
			MonthlyFee:      decimal.NewFromInt(800),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "July 2025",
		})
		second := s.enroll(dto.CreateStudentRequest{
			Name:            "Second",
			ParentNumber:    "2222222222",
			Class:           "6",
			MonthlyFee:      decimal.NewFromInt(900),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "July 2025",
		})

		s.Equal(first.StudentID+1, second.StudentID)
	})

	s.Run("Unknown Enrollment Month Seeds Nothing", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Mid May",
			ParentNumber:    "3333333333",
			Class:           "8",
			MonthlyFee:      decimal.NewFromInt(1200),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "May 2025",
		})

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Empty(payments)
	})

	s.Run("Missing Required Fields", func() {
		_, err := s.service.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
			Name: "No Class",
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *StudentServiceSuite) TestUpdateStudent() {
	s.Run("Non Billing Edit Leaves Schedule Alone", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Rename Me",
			ParentNumber:    "4444444444",
			Class:           "4",
			MonthlyFee:      decimal.NewFromInt(700),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "January 2026",
		})

		before, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)

		resp, err := s.service.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
			Name: lo.ToPtr("Renamed"),
		})
		s.NoError(err)
		s.Equal("Renamed", resp.Student.Name)

		after, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(after, len(before))
	})

	s.Run("Left Transition Stamps LeftAt And Shrinks Schedule", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Leaving Soon",
			ParentNumber:    "5555555555",
			Class:           "9",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
		})

		leftAt := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
		resp, err := s.service.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
			Status: lo.ToPtr(types.StudentStatusLeft),
			LeftAt: lo.ToPtr(leftAt),
		})
		s.NoError(err)
		s.NotNil(resp.Student.LeftAt)
		s.False(resp.Student.Active)

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(payments, 4)
		months := lo.Map(payments, func(p *payment.Payment, _ int) string { return p.Month })
		s.ElementsMatch([]string{"June 2025", "July 2025", "August 2025", "September 2025"}, months)
	})

	s.Run("Back To Active Clears LeftAt And Restores Schedule", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Returning",
			ParentNumber:    "6666666666",
			Class:           "9",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
		})

		_, err := s.service.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
			Status: lo.ToPtr(types.StudentStatusLeft),
			LeftAt: lo.ToPtr(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)),
		})
		s.NoError(err)

		resp, err := s.service.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
			Status: lo.ToPtr(types.StudentStatusActive),
		})
		s.NoError(err)
		s.Nil(resp.Student.LeftAt)
		s.True(resp.Student.Active)

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(payments, 11)
	})

	s.Run("Track Switch Rebuilds Records", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "Switcher",
			ParentNumber:    "7777777777",
			Class:           "8",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
		})

		_, err := s.service.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
			FeeType:      lo.ToPtr(types.FeeTypeYearly),
			YearlyFee:    lo.ToPtr(decimal.NewFromInt(9000)),
			Installments: lo.ToPtr(3),
		})
		s.NoError(err)

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Len(payments, 3)
	})

	s.Run("Not Found", func() {
		_, err := s.service.UpdateStudent(s.GetContext(), 999, dto.UpdateStudentRequest{
			Name: lo.ToPtr("Ghost"),
		})
		s.Error(err)
	})

	s.Run("Invalid Student ID", func() {
		_, err := s.service.UpdateStudent(s.GetContext(), 0, dto.UpdateStudentRequest{})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *StudentServiceSuite) TestDeleteStudent() {
	s.Run("Cascades Payment Records", func() {
		stu := s.enroll(dto.CreateStudentRequest{
			Name:            "To Delete",
			ParentNumber:    "8888888888",
			Class:           "3",
			MonthlyFee:      decimal.NewFromInt(500),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
		})

		err := s.service.DeleteStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)

		_, err = s.service.GetStudent(s.GetContext(), stu.StudentID)
		s.Error(err)

		payments, err := s.params.PaymentRepo.ListByStudent(s.GetContext(), stu.StudentID)
		s.NoError(err)
		s.Empty(payments)
	})

	s.Run("Not Found", func() {
		err := s.service.DeleteStudent(s.GetContext(), 42)
		s.Error(err)
	})
}

func (s *StudentServiceSuite) TestListStudents() {
	s.enroll(dto.CreateStudentRequest{
		Name:            "Active One",
		ParentNumber:    "1010101010",
		Class:           "5",
		MonthlyFee:      decimal.NewFromInt(600),
		FeeType:         types.FeeTypeMonthly,
		EnrollmentMonth: "June 2025",
	})
	void := s.enroll(dto.CreateStudentRequest{
		Name:            "Voided",
		ParentNumber:    "2020202020",
		Class:           "5",
		MonthlyFee:      decimal.NewFromInt(600),
		FeeType:         types.FeeTypeMonthly,
		EnrollmentMonth: "June 2025",
	})
	_, err := s.service.UpdateStudent(s.GetContext(), void.StudentID, dto.UpdateStudentRequest{
		Status: lo.ToPtr(types.StudentStatusVoid),
	})
	s.NoError(err)

	s.Run("Active Only By Default", func() {
		resp, err := s.service.ListStudents(s.GetContext(), dto.ListStudentsRequest{})
		s.NoError(err)
		s.Equal(1, resp.Total)
		s.Equal("Active One", resp.Items[0].Name)
	})

	s.Run("Include Inactive", func() {
		resp, err := s.service.ListStudents(s.GetContext(), dto.ListStudentsRequest{IncludeInactive: true})
		s.NoError(err)
		s.Equal(2, resp.Total)
	})
}

func TestBillingFieldsChanged(t *testing.T) {
	base := func() *student.Student {
		return &student.Student{
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "June 2025",
			EndMonth:        "April 2026",
			Status:          types.StudentStatusActive,
			Installments:    1,
		}
	}

	t.Run("no change", func(t *testing.T) {
		old, new := base(), base()
		if BillingFieldsChanged(old, new) {
			t.Fatal("expected no billing change")
		}
	})

	t.Run("each billing field triggers", func(t *testing.T) {
		cases := map[string]func(*student.Student){
			"fee type":         func(s *student.Student) { s.FeeType = types.FeeTypeYearly },
			"enrollment month": func(s *student.Student) { s.EnrollmentMonth = "July 2025" },
			"end month":        func(s *student.Student) { s.EndMonth = "December 2025" },
			"status":           func(s *student.Student) { s.Status = types.StudentStatusLeft },
			"installments":     func(s *student.Student) { s.Installments = 3 },
			"left at":          func(s *student.Student) { s.LeftAt = lo.ToPtr(time.Now()) },
		}
		for name, mutate := range cases {
			old, new := base(), base()
			mutate(new)
			if !BillingFieldsChanged(old, new) {
				t.Fatalf("expected %s change to trigger reconciliation", name)
			}
		}
	})

	t.Run("non billing fields ignored", func(t *testing.T) {
		old, new := base(), base()
		new.Name = "Renamed"
		new.ParentNumber = "0000000000"
		new.MonthlyFee = decimal.NewFromInt(1500)
		if BillingFieldsChanged(old, new) {
			t.Fatal("expected non-billing edits to be ignored")
		}
	})
}
