package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

type schoolRegistry interface {
	AddStudent(name string) *models.Student
	EditStudent(id int, name string) error
	RemoveStudent(id int) error
	FindStudent(id int) (*models.Student, error)
	Students() []models.Student
	EnrolledCourses(studentID int) []models.Course

	AddTeacher(name, speciality string) *models.Teacher
	EditTeacher(id int, name, speciality string) error
	RemoveTeacher(id int) error
	FindTeacher(id int) (*models.Teacher, error)
	Teachers() []models.Teacher

	AddCourse(name, instrument string, teacherID int) (*models.Course, error)
	RemoveCourse(id int) error
	FindCourse(id int) (*models.Course, error)
	Courses() []models.Course
	AddLessonToCourse(courseID int, title, day, time string, durationMinutes int) error
	RemoveLessonFromCourse(courseID int, title string) error

	EnrollStudentInCourse(studentID, courseID int) error
	SwitchStudentCourse(studentID, fromCourseID, toCourseID int) error
	CheckInStudent(studentID, courseID int) error
	AttendanceLog() []models.AttendanceRecord
	DailyRoster(day string) []models.RosterEntry
	FrontDeskRoster(day string) []models.FrontDeskEntry

	AddInstrument(name string) error
	RemoveInstrument(name string) error
	EditInstrument(oldName, newName string) error
	Instruments() []string

	AddAdmin(username, password string) *models.AdminAccount
	EditAdmin(id int, username, password string) error
	RemoveAdmin(id int) error
	Admins() []models.AdminAccount
	SignInAdmin(username, password string) bool
	AddStaff(name, password string) *models.StaffAccount
	EditStaff(id int, name, password string) error
	RemoveStaff(id int) error
	Staff() []models.StaffAccount
	SignInStaff(name, password string) bool

	RecordPayment(studentID int, amount, method string) (*models.PaymentRecord, error)
	PaymentHistory(studentID int) []models.PaymentRecord
	FinanceLog() []models.PaymentRecord
	ExportReport(kind, path string) error
	PrintStudentCard(studentID int, path string) (string, error)
	Backup() (string, error)
}

type operationRecorder interface {
	RecordOperation(operation string, err error)
}

// SchoolService validates HTTP payloads and serialises every call into the registry, which is
// not safe for concurrent use.
type SchoolService struct {
	mu        sync.Mutex
	registry  schoolRegistry
	validator *validator.Validate
	logger    *zap.Logger
	metrics   operationRecorder
}

// NewSchoolService constructs the school service. The validator gains a "weekday" rule.
func NewSchoolService(registry schoolRegistry, validate *validator.Validate, logger *zap.Logger, metrics operationRecorder) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := models.NormalizeWeekday(fl.Field().String())
		return ok
	}); err != nil {
		logger.Error("register weekday validation", zap.Error(err))
	}
	return &SchoolService{registry: registry, validator: validate, logger: logger, metrics: metrics}
}

func (s *SchoolService) exec(operation string, fn func() error) error {
	var err error
	s.read(func() { err = fn() })

	if s.metrics != nil {
		s.metrics.RecordOperation(operation, err)
	}
	if err != nil {
		s.logger.Debug("registry operation rejected", zap.String("operation", operation), zap.Error(err))
	}
	return err
}

func (s *SchoolService) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *SchoolService) validate(payload interface{}, message string) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

// ListStudents returns every student.
func (s *SchoolService) ListStudents() []models.Student {
	var out []models.Student
	s.read(func() { out = s.registry.Students() })
	return out
}

// GetStudent returns a student by ID.
func (s *SchoolService) GetStudent(id int) (*models.Student, error) {
	var out *models.Student
	err := s.exec("find_student", func() (err error) {
		out, err = s.registry.FindStudent(id)
		return err
	})
	return out, err
}

// CreateStudent registers a student.
func (s *SchoolService) CreateStudent(req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validate(req, "invalid student payload"); err != nil {
		return nil, err
	}
	var out *models.Student
	err := s.exec("add_student", func() error {
		out = s.registry.AddStudent(req.Name)
		return nil
	})
	return out, err
}

// UpdateStudent renames a student and returns the updated record.
func (s *SchoolService) UpdateStudent(id int, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validate(req, "invalid student payload"); err != nil {
		return nil, err
	}
	var out *models.Student
	err := s.exec("edit_student", func() error {
		if err := s.registry.EditStudent(id, req.Name); err != nil {
			return err
		}
		var err error
		out, err = s.registry.FindStudent(id)
		return err
	})
	return out, err
}

// DeleteStudent removes a student.
func (s *SchoolService) DeleteStudent(id int) error {
	return s.exec("remove_student", func() error { return s.registry.RemoveStudent(id) })
}

// StudentCourses resolves the courses a student is enrolled in.
func (s *SchoolService) StudentCourses(id int) ([]models.Course, error) {
	var out []models.Course
	err := s.exec("student_courses", func() error {
		if _, err := s.registry.FindStudent(id); err != nil {
			return err
		}
		out = s.registry.EnrolledCourses(id)
		return nil
	})
	return out, err
}

// ListTeachers returns every teacher.
func (s *SchoolService) ListTeachers() []models.Teacher {
	var out []models.Teacher
	s.read(func() { out = s.registry.Teachers() })
	return out
}

// GetTeacher returns a teacher by ID.
func (s *SchoolService) GetTeacher(id int) (*models.Teacher, error) {
	var out *models.Teacher
	err := s.exec("find_teacher", func() (err error) {
		out, err = s.registry.FindTeacher(id)
		return err
	})
	return out, err
}

// CreateTeacher registers a teacher.
func (s *SchoolService) CreateTeacher(req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validate(req, "invalid teacher payload"); err != nil {
		return nil, err
	}
	var out *models.Teacher
	err := s.exec("add_teacher", func() error {
		out = s.registry.AddTeacher(req.Name, req.Speciality)
		return nil
	})
	return out, err
}

// UpdateTeacher overwrites non-empty teacher fields.
func (s *SchoolService) UpdateTeacher(id int, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validate(req, "invalid teacher payload"); err != nil {
		return nil, err
	}
	var out *models.Teacher
	err := s.exec("edit_teacher", func() error {
		if err := s.registry.EditTeacher(id, req.Name, req.Speciality); err != nil {
			return err
		}
		var err error
		out, err = s.registry.FindTeacher(id)
		return err
	})
	return out, err
}

// DeleteTeacher removes a teacher and its courses.
func (s *SchoolService) DeleteTeacher(id int) error {
	return s.exec("remove_teacher", func() error { return s.registry.RemoveTeacher(id) })
}

// ListCourses returns every course.
func (s *SchoolService) ListCourses() []models.Course {
	var out []models.Course
	s.read(func() { out = s.registry.Courses() })
	return out
}

// GetCourse returns a course by ID.
func (s *SchoolService) GetCourse(id int) (*models.Course, error) {
	var out *models.Course
	err := s.exec("find_course", func() (err error) {
		out, err = s.registry.FindCourse(id)
		return err
	})
	return out, err
}

// CreateCourse creates a course.
func (s *SchoolService) CreateCourse(req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validate(req, "invalid course payload"); err != nil {
		return nil, err
	}
	var out *models.Course
	err := s.exec("add_course", func() (err error) {
		out, err = s.registry.AddCourse(req.Name, req.Instrument, req.TeacherID)
		return err
	})
	return out, err
}

// DeleteCourse removes a course.
func (s *SchoolService) DeleteCourse(id int) error {
	return s.exec("remove_course", func() error { return s.registry.RemoveCourse(id) })
}

// AddLesson appends a lesson and returns the updated course.
func (s *SchoolService) AddLesson(courseID int, req dto.CreateLessonRequest) (*models.Course, error) {
	if err := s.validate(req, "invalid lesson payload"); err != nil {
		return nil, err
	}
	var out *models.Course
	err := s.exec("add_lesson", func() error {
		if err := s.registry.AddLessonToCourse(courseID, req.Title, req.Day, req.Time, req.DurationMinutes); err != nil {
			return err
		}
		var err error
		out, err = s.registry.FindCourse(courseID)
		return err
	})
	return out, err
}

// RemoveLesson drops the first lesson with the given title.
func (s *SchoolService) RemoveLesson(courseID int, title string) error {
	return s.exec("remove_lesson", func() error { return s.registry.RemoveLessonFromCourse(courseID, title) })
}

// Enroll links a student and a course.
func (s *SchoolService) Enroll(req dto.EnrollmentRequest) error {
	if err := s.validate(req, "invalid enrollment payload"); err != nil {
		return err
	}
	return s.exec("enroll", func() error { return s.registry.EnrollStudentInCourse(req.StudentID, req.CourseID) })
}

// SwitchCourse moves a student between courses.
func (s *SchoolService) SwitchCourse(req dto.SwitchCourseRequest) error {
	if err := s.validate(req, "invalid switch payload"); err != nil {
		return err
	}
	return s.exec("switch_course", func() error {
		return s.registry.SwitchStudentCourse(req.StudentID, req.FromCourseID, req.ToCourseID)
	})
}

// CheckIn records attendance.
func (s *SchoolService) CheckIn(req dto.CheckInRequest) error {
	if err := s.validate(req, "invalid check-in payload"); err != nil {
		return err
	}
	return s.exec("check_in", func() error { return s.registry.CheckInStudent(req.StudentID, req.CourseID) })
}

// AttendanceLog returns every attendance record.
func (s *SchoolService) AttendanceLog() []models.AttendanceRecord {
	var out []models.AttendanceRecord
	s.read(func() { out = s.registry.AttendanceLog() })
	return out
}

// DailyRoster returns the lessons held on day.
func (s *SchoolService) DailyRoster(day string) []models.RosterEntry {
	var out []models.RosterEntry
	s.read(func() { out = s.registry.DailyRoster(day) })
	return out
}

// FrontDeskRoster returns the reduced roster for day.
func (s *SchoolService) FrontDeskRoster(day string) []models.FrontDeskEntry {
	var out []models.FrontDeskEntry
	s.read(func() { out = s.registry.FrontDeskRoster(day) })
	return out
}

// ListInstruments returns the instrument set.
func (s *SchoolService) ListInstruments() []string {
	var out []string
	s.read(func() { out = s.registry.Instruments() })
	return out
}

// AddInstrument adds an instrument name.
func (s *SchoolService) AddInstrument(req dto.InstrumentRequest) error {
	if err := s.validate(req, "invalid instrument payload"); err != nil {
		return err
	}
	return s.exec("add_instrument", func() error { return s.registry.AddInstrument(req.Name) })
}

// RenameInstrument renames an instrument and relabels its courses.
func (s *SchoolService) RenameInstrument(oldName string, req dto.InstrumentRequest) error {
	if err := s.validate(req, "invalid instrument payload"); err != nil {
		return err
	}
	return s.exec("edit_instrument", func() error { return s.registry.EditInstrument(oldName, req.Name) })
}

// RemoveInstrument drops an instrument name.
func (s *SchoolService) RemoveInstrument(name string) error {
	return s.exec("remove_instrument", func() error { return s.registry.RemoveInstrument(name) })
}

// ListAdmins returns administrators without passwords.
func (s *SchoolService) ListAdmins() []dto.AccountView {
	var out []dto.AccountView
	s.read(func() {
		admins := s.registry.Admins()
		out = make([]dto.AccountView, 0, len(admins))
		for _, a := range admins {
			out = append(out, dto.AccountView{ID: a.ID, Name: a.Username})
		}
	})
	return out
}

// CreateAdmin creates an administrator.
func (s *SchoolService) CreateAdmin(req dto.CreateAdminRequest) (*dto.AccountView, error) {
	if err := s.validate(req, "invalid admin payload"); err != nil {
		return nil, err
	}
	var out *dto.AccountView
	err := s.exec("add_admin", func() error {
		admin := s.registry.AddAdmin(req.Username, req.Password)
		out = &dto.AccountView{ID: admin.ID, Name: admin.Username}
		return nil
	})
	return out, err
}

// UpdateAdmin overwrites non-empty administrator fields.
func (s *SchoolService) UpdateAdmin(id int, req dto.UpdateAdminRequest) error {
	return s.exec("edit_admin", func() error { return s.registry.EditAdmin(id, req.Username, req.Password) })
}

// DeleteAdmin removes an administrator.
func (s *SchoolService) DeleteAdmin(id int) error {
	return s.exec("remove_admin", func() error { return s.registry.RemoveAdmin(id) })
}

// ListStaff returns staff accounts without passwords.
func (s *SchoolService) ListStaff() []dto.AccountView {
	var out []dto.AccountView
	s.read(func() {
		staff := s.registry.Staff()
		out = make([]dto.AccountView, 0, len(staff))
		for _, st := range staff {
			out = append(out, dto.AccountView{ID: st.ID, Name: st.Name})
		}
	})
	return out
}

// CreateStaff creates a staff account.
func (s *SchoolService) CreateStaff(req dto.CreateStaffRequest) (*dto.AccountView, error) {
	if err := s.validate(req, "invalid staff payload"); err != nil {
		return nil, err
	}
	var out *dto.AccountView
	err := s.exec("add_staff", func() error {
		staff := s.registry.AddStaff(req.Name, req.Password)
		out = &dto.AccountView{ID: staff.ID, Name: staff.Name}
		return nil
	})
	return out, err
}

// UpdateStaff overwrites non-empty staff fields.
func (s *SchoolService) UpdateStaff(id int, req dto.UpdateStaffRequest) error {
	return s.exec("edit_staff", func() error { return s.registry.EditStaff(id, req.Name, req.Password) })
}

// DeleteStaff removes a staff account.
func (s *SchoolService) DeleteStaff(id int) error {
	return s.exec("remove_staff", func() error { return s.registry.RemoveStaff(id) })
}

// SignInAdmin checks administrator credentials.
func (s *SchoolService) SignInAdmin(username, password string) bool {
	var ok bool
	_ = s.exec("sign_in_admin", func() error {
		ok = s.registry.SignInAdmin(username, password)
		return nil
	})
	return ok
}

// SignInStaff checks staff credentials.
func (s *SchoolService) SignInStaff(name, password string) bool {
	var ok bool
	_ = s.exec("sign_in_staff", func() error {
		ok = s.registry.SignInStaff(name, password)
		return nil
	})
	return ok
}

// RecordPayment records a student payment.
func (s *SchoolService) RecordPayment(req dto.PaymentRequest) (*models.PaymentRecord, error) {
	if err := s.validate(req, "invalid payment payload"); err != nil {
		return nil, err
	}
	var out *models.PaymentRecord
	err := s.exec("record_payment", func() (err error) {
		out, err = s.registry.RecordPayment(req.StudentID, req.Amount, req.Method)
		return err
	})
	return out, err
}

// PaymentHistory returns a student's payments.
func (s *SchoolService) PaymentHistory(studentID int) []models.PaymentRecord {
	var out []models.PaymentRecord
	s.read(func() { out = s.registry.PaymentHistory(studentID) })
	return out
}

// FinanceLog returns every payment.
func (s *SchoolService) FinanceLog() []models.PaymentRecord {
	var out []models.PaymentRecord
	s.read(func() { out = s.registry.FinanceLog() })
	return out
}

// ExportReport writes a payments or attendance report to path.
func (s *SchoolService) ExportReport(kind, path string) error {
	return s.exec("export_report", func() error { return s.registry.ExportReport(kind, path) })
}

// PrintStudentCard writes a student badge to path.
func (s *SchoolService) PrintStudentCard(studentID int, path string) (string, error) {
	var out string
	err := s.exec("print_student_card", func() (err error) {
		out, err = s.registry.PrintStudentCard(studentID, path)
		return err
	})
	return out, err
}

// Backup copies the data file to the backup location.
func (s *SchoolService) Backup() (string, error) {
	var out string
	err := s.exec("backup", func() (err error) {
		out, err = s.registry.Backup()
		return err
	})
	return out, err
}
