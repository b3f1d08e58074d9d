package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hometuition/hometuition/internal/api/dto"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/service"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Record a payment
// @Description Mark a month or installment Paid or Unpaid for a student
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to record payment", "student_id", req.StudentID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List payments
// @Description List payment records, optionally filtered by student, month, or installments only
// @Tags Payments
// @Produce json
// @Param student_id query int false "Filter by student ID"
// @Param month query string false "Filter by month label"
// @Param installments_only query bool false "Only installment records"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var req dto.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPayments(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to list payments", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
