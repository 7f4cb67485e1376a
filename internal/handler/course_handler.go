package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

// CourseHandler exposes course and lesson endpoints.
type CourseHandler struct {
	school *service.SchoolService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(school *service.SchoolService) *CourseHandler {
	return &CourseHandler{school: school}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses := h.school.ListCourses()
	response.List(c, courses, len(courses))
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.school.GetCourse(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := bindJSON(c, &req, "invalid course payload"); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.school.CreateCourse(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Delete godoc
// @Summary Remove course
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.DeleteCourse(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddLesson godoc
// @Summary Add weekly lesson
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body dto.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/lessons [post]
func (h *CourseHandler) AddLesson(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateLessonRequest
	if err := bindJSON(c, &req, "invalid lesson payload"); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.school.AddLesson(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// RemoveLesson godoc
// @Summary Remove lesson by title
// @Tags Courses
// @Param id path int true "Course ID"
// @Param title path string true "Lesson title"
// @Success 204
// @Router /courses/{id}/lessons/{title} [delete]
func (h *CourseHandler) RemoveLesson(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.RemoveLesson(id, c.Param("title")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
