package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

// EnrollmentHandler exposes enrollment, attendance and roster endpoints.
type EnrollmentHandler struct {
	school *service.SchoolService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(school *service.SchoolService) *EnrollmentHandler {
	return &EnrollmentHandler{school: school}
}

// Enroll godoc
// @Summary Enroll student in course
// @Tags Enrollments
// @Accept json
// @Param payload body dto.EnrollmentRequest true "Enrollment payload"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollmentRequest
	if err := bindJSON(c, &req, "invalid enrollment payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.Enroll(req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Switch godoc
// @Summary Move student between courses
// @Tags Enrollments
// @Accept json
// @Param payload body dto.SwitchCourseRequest true "Switch payload"
// @Success 204
// @Router /enrollments/switch [post]
func (h *EnrollmentHandler) Switch(c *gin.Context) {
	var req dto.SwitchCourseRequest
	if err := bindJSON(c, &req, "invalid switch payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.SwitchCourse(req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckIn godoc
// @Summary Record attendance
// @Tags Attendance
// @Accept json
// @Param payload body dto.CheckInRequest true "Check-in payload"
// @Success 204
// @Router /attendance [post]
func (h *EnrollmentHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := bindJSON(c, &req, "invalid check-in payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.CheckIn(req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Attendance godoc
// @Summary Attendance log
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *EnrollmentHandler) Attendance(c *gin.Context) {
	records := h.school.AttendanceLog()
	response.List(c, records, len(records))
}

// DailyRoster godoc
// @Summary Lessons held on a weekday
// @Tags Rosters
// @Produce json
// @Param day path string true "Weekday"
// @Success 200 {object} response.Envelope
// @Router /rosters/{day} [get]
func (h *EnrollmentHandler) DailyRoster(c *gin.Context) {
	roster := h.school.DailyRoster(c.Param("day"))
	response.List(c, roster, len(roster))
}

// FrontDeskRoster godoc
// @Summary Front-desk roster for a weekday
// @Tags Rosters
// @Produce json
// @Param day path string true "Weekday"
// @Success 200 {object} response.Envelope
// @Router /rosters/{day}/front-desk [get]
func (h *EnrollmentHandler) FrontDeskRoster(c *gin.Context) {
	roster := h.school.FrontDeskRoster(c.Param("day"))
	response.JSON(c, http.StatusOK, roster, map[string]interface{}{"count": len(roster), "day": c.Param("day")})
}
