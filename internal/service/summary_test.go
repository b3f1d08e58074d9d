package service

import (
	"testing"

	"github.com/hometuition/hometuition/internal/api/dto"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/testutil"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SummaryService
	students StudentService
	payments PaymentService
	params   ServiceParams
}

func TestSummaryService(t *testing.T) {
	suite.Run(t, new(SummaryServiceSuite))
}

func (s *SummaryServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		Cache:        s.GetCache(),
		StudentRepo:  s.GetStores().StudentRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		SequenceRepo: s.GetStores().SequenceRepo,
	}
	s.service = NewSummaryService(s.params)
	s.students = NewStudentService(s.params)
	s.payments = NewPaymentService(s.params)
}

func (s *SummaryServiceSuite) rowFor(summary *dto.SummaryResponse, studentID int) *dto.SummaryRow {
	row, found := lo.Find(summary.PerStudent, func(r *dto.SummaryRow) bool {
		return r.StudentID == studentID
	})
	s.True(found)
	return row
}

func (s *SummaryServiceSuite) TestGetSummary() {
	s.Run("Installment Track Whole Contract Billing", func() {
		resp, err := s.students.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
			Name:            "Terminal Year",
			ParentNumber:    "9876543210",
			Class:           "10",
			YearlyFee:       decimal.NewFromInt(9000),
			FeeType:         types.FeeTypeYearly,
			Installments:    3,
			EnrollmentMonth: "June 2025",
		})
		s.NoError(err)
		stu := resp.Student

		_, err = s.payments.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
			StudentID:         stu.StudentID,
			Month:             payment.InstallmentLabel(1, "June 2025"),
			Status:            types.PaymentStatusPaid,
			AmountPaid:        lo.ToPtr(decimal.NewFromInt(3000)),
			IsInstallment:     true,
			InstallmentNumber: 1,
		})
		s.NoError(err)

		summary, err := s.service.GetSummary(s.GetContext())
		s.NoError(err)

		row := s.rowFor(summary, stu.StudentID)
		s.True(row.IsClass10)
		s.True(row.Paid.Equal(decimal.NewFromInt(3000)))
		s.True(row.Pending.Equal(decimal.NewFromInt(6000)))
	})

	s.Run("Monthly Track Per Period Billing", func() {
		resp, err := s.students.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
			Name:            "Monthly",
			ParentNumber:    "9876500000",
			Class:           "7",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "December 2025",
		})
		s.NoError(err)
		stu := resp.Student

		for _, month := range []string{"December 2025", "January 2026"} {
			_, err = s.payments.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
				StudentID:  stu.StudentID,
				Month:      month,
				Status:     types.PaymentStatusPaid,
				AmountPaid: lo.ToPtr(decimal.NewFromInt(1000)),
			})
			s.NoError(err)
		}

		summary, err := s.service.GetSummary(s.GetContext())
		s.NoError(err)

		row := s.rowFor(summary, stu.StudentID)
		s.False(row.IsClass10)
		s.Equal(5, row.ApplicableMonths)
		s.True(row.Paid.Equal(decimal.NewFromInt(2000)))
		s.True(row.Pending.Equal(decimal.NewFromInt(3000)))
	})

	s.Run("Void And Abandon Contribute Nothing", func() {
		for _, status := range []types.StudentStatus{types.StudentStatusVoid, types.StudentStatusAbandon} {
			resp, err := s.students.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
				Name:            "Non Billable",
				ParentNumber:    "1112223334",
				Class:           "6",
				MonthlyFee:      decimal.NewFromInt(1000),
				FeeType:         types.FeeTypeMonthly,
				EnrollmentMonth: "June 2025",
			})
			s.NoError(err)
			stu := resp.Student

			_, err = s.payments.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
				StudentID:  stu.StudentID,
				Month:      "June 2025",
				Status:     types.PaymentStatusPaid,
				AmountPaid: lo.ToPtr(decimal.NewFromInt(1000)),
			})
			s.NoError(err)

			_, err = s.students.UpdateStudent(s.GetContext(), stu.StudentID, dto.UpdateStudentRequest{
				Status: lo.ToPtr(status),
			})
			s.NoError(err)

			summary, err := s.service.GetSummary(s.GetContext())
			s.NoError(err)

			row := s.rowFor(summary, stu.StudentID)
			s.True(row.Paid.IsZero())
			s.True(row.Pending.IsZero())
			s.Zero(row.ApplicableMonths)
		}
	})

	s.Run("Cached Between Reads And Invalidated On Writes", func() {
		resp, err := s.students.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
			Name:            "Cache Check",
			ParentNumber:    "7778889990",
			Class:           "4",
			MonthlyFee:      decimal.NewFromInt(500),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "April 2026",
		})
		s.NoError(err)
		stu := resp.Student

		first, err := s.service.GetSummary(s.GetContext())
		s.NoError(err)
		row := s.rowFor(first, stu.StudentID)
		s.True(row.Pending.Equal(decimal.NewFromInt(500)))

		_, err = s.payments.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
			StudentID:  stu.StudentID,
			Month:      "April 2026",
			Status:     types.PaymentStatusPaid,
			AmountPaid: lo.ToPtr(decimal.NewFromInt(500)),
		})
		s.NoError(err)

		second, err := s.service.GetSummary(s.GetContext())
		s.NoError(err)
		row = s.rowFor(second, stu.StudentID)
		s.True(row.Paid.Equal(decimal.NewFromInt(500)))
		s.True(row.Pending.IsZero())
	})
}

func (s *SummaryServiceSuite) TestSummaryTotals() {
	for i := 0; i < 2; i++ {
		resp, err := s.students.EnrollStudent(s.GetContext(), dto.CreateStudentRequest{
			Name:            "Totals",
			ParentNumber:    "4445556667",
			Class:           "8",
			MonthlyFee:      decimal.NewFromInt(1000),
			FeeType:         types.FeeTypeMonthly,
			EnrollmentMonth: "March 2026",
		})
		s.NoError(err)

		_, err = s.payments.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
			StudentID:  resp.Student.StudentID,
			Month:      "March 2026",
			Status:     types.PaymentStatusPaid,
			AmountPaid: lo.ToPtr(decimal.NewFromInt(1000)),
		})
		s.NoError(err)
	}

	summary, err := s.service.GetSummary(s.GetContext())
	s.NoError(err)

	// Each student: March paid, April pending.
	s.True(summary.TotalEarnings.Equal(decimal.NewFromInt(2000)))
	s.True(summary.TotalPending.Equal(decimal.NewFromInt(2000)))
}
