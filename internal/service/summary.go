package service

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/api/dto"
	"github.com/hometuition/hometuition/internal/billing"
	"github.com/hometuition/hometuition/internal/cache"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/domain/student"
	"github.com/shopspring/decimal"
)

const (
	summaryCachePrefix = "summary"
	summaryCacheKey    = "summary:academic_year"
	summaryCacheExpiry = 5 * time.Minute
)

type SummaryService interface {
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

type summaryService struct {
	ServiceParams
}

func NewSummaryService(params ServiceParams) SummaryService {
	return &summaryService{
		ServiceParams: params,
	}
}

func (s *summaryService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	if s.Cache != nil {
		if value, found := s.Cache.Get(ctx, summaryCacheKey); found {
			if summary, ok := cache.UnmarshalCacheValue[dto.SummaryResponse](value); ok {
				return summary, nil
			}
		}
	}

	students, err := s.StudentRepo.List(ctx, &student.Filter{IncludeInactive: true})
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, &payment.Filter{})
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int][]*payment.Payment, len(students))
	for _, p := range payments {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}

	summary := &dto.SummaryResponse{
		TotalEarnings: decimal.Zero,
		TotalPending:  decimal.Zero,
		PerStudent:    make([]*dto.SummaryRow, 0, len(students)),
	}

	for _, stu := range students {
		row := s.buildRow(stu, byStudent[stu.StudentID])
		summary.TotalEarnings = summary.TotalEarnings.Add(row.Paid)
		summary.TotalPending = summary.TotalPending.Add(row.Pending)
		summary.PerStudent = append(summary.PerStudent, row)
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, summaryCacheKey, summary, summaryCacheExpiry)
	}
	return summary, nil
}

func (s *summaryService) buildRow(stu *student.Student, payments []*payment.Payment) *dto.SummaryRow {
	row := &dto.SummaryRow{
		StudentID:       stu.StudentID,
		Name:            stu.Name,
		Class:           stu.Class,
		Status:          stu.Status,
		EnrollmentMonth: stu.EnrollmentMonth,
		FeeType:         stu.FeeType,
		Paid:            decimal.Zero,
		Pending:         decimal.Zero,
		IsClass10:       stu.IsClass10(),
	}

	// Void and Abandon enrollments contribute nothing either way.
	if !stu.Status.IsBillable() {
		return row
	}

	applicable := billing.ResolveApplicableMonths(stu.EnrollmentMonth, stu.EndMonth, stu.Status, stu.LeftAt)
	row.ApplicableMonths = len(applicable)
	row.ApplicableMonthsList = applicable

	if stu.OnInstallmentTrack() {
		// Whole-contract billing: installment fees are contractual lump
		// sums, not prorated per calendar month.
		for _, p := range payments {
			if p.IsPaid() {
				row.Paid = row.Paid.Add(p.AmountPaid)
			}
		}
		expected := billing.ContractFee(stu.YearlyFee, stu.MonthlyFee)
		pending := expected.Round(0).Sub(row.Paid.Round(0))
		if pending.IsNegative() {
			pending = decimal.Zero
		}
		row.Pending = pending
		return row
	}

	// Strict per-period billing: an applicable month with no Paid record
	// is fully pending at the current monthly fee.
	paidByMonth := make(map[string]decimal.Decimal, len(payments))
	for _, p := range payments {
		if !p.IsInstallment && p.IsPaid() {
			paidByMonth[p.Month] = p.AmountPaid
		}
	}
	for _, month := range applicable {
		if amount, ok := paidByMonth[month]; ok {
			row.Paid = row.Paid.Add(amount)
		} else {
			row.Pending = row.Pending.Add(stu.MonthlyFee)
		}
	}
	return row
}
