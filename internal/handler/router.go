package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/middleware"
	"github.com/AliciaPky/Astar/internal/models"
)

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Teachers    *TeacherHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Instruments *InstrumentHandler
	Accounts    *AccountHandler
	Payments    *PaymentHandler
	Reports     *ReportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts the API under prefix. Sign-in and downloads are public; admin and staff
// management and backups need the ADMIN role; everything else accepts either role.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth tokenValidator, extra ...gin.HandlerFunc) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)
	api.POST("/auth/admin/sign-in", h.Auth.AdminSignIn)
	api.POST("/auth/staff/sign-in", h.Auth.StaffSignIn)
	api.GET("/export/:token", h.Reports.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	secured.Use(extra...)

	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/students", h.Students.List)
	secured.POST("/students", h.Students.Create)
	secured.GET("/students/:id", h.Students.Get)
	secured.PUT("/students/:id", h.Students.Update)
	secured.DELETE("/students/:id", h.Students.Delete)
	secured.GET("/students/:id/courses", h.Students.Courses)
	secured.GET("/students/:id/payments", h.Students.Payments)
	secured.POST("/students/:id/card", h.Reports.StudentCard)

	secured.GET("/teachers", h.Teachers.List)
	secured.POST("/teachers", h.Teachers.Create)
	secured.GET("/teachers/:id", h.Teachers.Get)
	secured.PUT("/teachers/:id", h.Teachers.Update)
	secured.DELETE("/teachers/:id", h.Teachers.Delete)

	secured.GET("/courses", h.Courses.List)
	secured.POST("/courses", h.Courses.Create)
	secured.GET("/courses/:id", h.Courses.Get)
	secured.DELETE("/courses/:id", h.Courses.Delete)
	secured.POST("/courses/:id/lessons", h.Courses.AddLesson)
	secured.DELETE("/courses/:id/lessons/:title", h.Courses.RemoveLesson)

	secured.POST("/enrollments", h.Enrollments.Enroll)
	secured.POST("/enrollments/switch", h.Enrollments.Switch)
	secured.GET("/attendance", h.Enrollments.Attendance)
	secured.POST("/attendance", h.Enrollments.CheckIn)
	secured.GET("/rosters/:day", h.Enrollments.DailyRoster)
	secured.GET("/rosters/:day/front-desk", h.Enrollments.FrontDeskRoster)

	secured.GET("/instruments", h.Instruments.List)
	secured.POST("/instruments", h.Instruments.Create)
	secured.PUT("/instruments/:name", h.Instruments.Rename)
	secured.DELETE("/instruments/:name", h.Instruments.Delete)

	secured.GET("/payments", h.Payments.List)
	secured.POST("/payments", h.Payments.Record)
	secured.POST("/reports/export", h.Reports.GenerateReport)
	if h.Metrics != nil {
		secured.GET("/metrics/summary", h.Metrics.Snapshot)
	}

	admin := secured.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/admins", h.Accounts.ListAdmins)
	admin.POST("/admins", h.Accounts.CreateAdmin)
	admin.PUT("/admins/:id", h.Accounts.UpdateAdmin)
	admin.DELETE("/admins/:id", h.Accounts.DeleteAdmin)
	admin.GET("/staff", h.Accounts.ListStaff)
	admin.POST("/staff", h.Accounts.CreateStaff)
	admin.PUT("/staff/:id", h.Accounts.UpdateStaff)
	admin.DELETE("/staff/:id", h.Accounts.DeleteStaff)
	admin.POST("/backup", h.Reports.Backup)
}
