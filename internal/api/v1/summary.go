package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/service"
)

type SummaryHandler struct {
	service service.SummaryService
	log     *logger.Logger
}

func NewSummaryHandler(service service.SummaryService, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{service: service, log: log}
}

// @Summary Get the academic-year summary
// @Description Per-student paid/pending rows plus year-wide totals
// @Tags Summary
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	resp, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to build summary", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
