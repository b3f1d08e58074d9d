package service

import (
	"context"

	"github.com/hometuition/hometuition/internal/api/dto"
	"github.com/hometuition/hometuition/internal/billing"
	"github.com/hometuition/hometuition/internal/domain/payment"
	"github.com/hometuition/hometuition/internal/domain/student"
	"github.com/hometuition/hometuition/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, req dto.ListPaymentsRequest) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stu, err := s.StudentRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	p := req.ToPayment(ctx)
	if p.IsInstallment && p.TotalInstallments < 1 {
		p.TotalInstallments = stu.InstallmentCount()
	}

	if p.Status == types.PaymentStatusPaid && req.AmountPaid == nil {
		p.AmountPaid = s.expectedAmount(stu, p)
	}
	if p.Status == types.PaymentStatusUnpaid {
		p.AmountPaid = decimal.Zero
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.PaymentRepo.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded payment",
		"student_id", stored.StudentID,
		"month", stored.Month,
		"status", stored.Status,
		"amount_paid", stored.AmountPaid)

	s.invalidateSummaryCache(ctx)
	return &dto.PaymentResponse{Payment: stored}, nil
}

// expectedAmount derives the fee owed for a period when the caller marks
// it Paid without sending an amount.
func (s *paymentService) expectedAmount(stu *student.Student, p *payment.Payment) decimal.Decimal {
	if p.IsInstallment {
		return billing.InstallmentAmount(stu.YearlyFee, stu.MonthlyFee, p.TotalInstallments)
	}
	return stu.MonthlyFee
}

func (s *paymentService) ListPayments(ctx context.Context, req dto.ListPaymentsRequest) (*dto.ListPaymentsResponse, error) {
	payments, err := s.PaymentRepo.List(ctx, &payment.Filter{
		StudentID:        req.StudentID,
		Month:            req.Month,
		InstallmentsOnly: req.InstallmentsOnly,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ListPaymentsResponse{
		Items: lo.Map(payments, func(p *payment.Payment, _ int) *dto.PaymentResponse {
			return &dto.PaymentResponse{Payment: p}
		}),
		Total: len(payments),
	}, nil
}

func (s *paymentService) invalidateSummaryCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	s.Cache.DeleteByPrefix(ctx, summaryCachePrefix)
}
