package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hometuition/hometuition/internal/api/dto"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/service"
)

type StudentHandler struct {
	service service.StudentService
	log     *logger.Logger
}

func NewStudentHandler(service service.StudentService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{service: service, log: log}
}

// @Summary Enroll a new student
// @Description Enroll a student and seed their payment schedule
// @Tags Students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Enrollment details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) EnrollStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.EnrollStudent(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to enroll student", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a student
// @Description Get a student by their sequential ID
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, err := parseStudentID(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List students
// @Description List students, active only unless include_inactive is set
// @Tags Students
// @Produce json
// @Param include_inactive query bool false "Include inactive students"
// @Param class query string false "Filter by class label"
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.ListStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListStudents(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("failed to list students", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a student
// @Description Apply field changes and rebuild the payment schedule when billing fields change
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Field changes"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, err := parseStudentID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateStudent(c.Request.Context(), studentID, req)
	if err != nil {
		h.log.Errorw("failed to update student", "student_id", studentID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a student
// @Description Remove a student and all their payment records
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, err := parseStudentID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteStudent(c.Request.Context(), studentID); err != nil {
		h.log.Errorw("failed to delete student", "student_id", studentID, "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseStudentID rejects a non-numeric identifier before any lookup runs.
func parseStudentID(c *gin.Context) (int, error) {
	raw := c.Param("id")
	studentID, err := strconv.Atoi(raw)
	if err != nil || studentID <= 0 {
		return 0, ierr.NewError("invalid student ID").
			WithHint("Student ID must be a positive number").
			WithReportableDetails(map[string]interface{}{
				"id": raw,
			}).
			Mark(ierr.ErrValidation)
	}
	return studentID, nil
}
