// Package registry holds the school's in-memory state and keeps every collection consistent with
// the others. Each mutating call is followed by a full rewrite of the data file and one line in
// the action log.
package registry

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/models"
	"github.com/AliciaPky/Astar/internal/repository"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/export"
)

// Counter seeds for freshly created data files.
const (
	FirstStudentID = 4000
	FirstTeacherID = 3000
	FirstAdminID   = 1000
	FirstStaffID   = 2000
	FirstCourseID  = 1
)

type dataStore interface {
	Load() (*repository.Snapshot, error)
	Save(snap *repository.Snapshot) error
	Quarantine() (string, error)
	Open() (io.ReadCloser, error)
	Path() string
}

type actionRecorder interface {
	Record(tag, message string) error
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	SaveStream(filename string, r io.Reader) (string, error)
	Path(filename string) string
}

type saveObserver interface {
	ObserveSave(duration time.Duration, err error)
}

// BootstrapPolicy decides whether an administrator is synthesised when none exist after load.
type BootstrapPolicy struct {
	Enabled  bool
	Username string
	Password string
}

// DefaultBootstrapPolicy creates admin/password, matching historical installs.
func DefaultBootstrapPolicy() BootstrapPolicy {
	return BootstrapPolicy{Enabled: true, Username: "admin", Password: "password"}
}

// Config tunes registry policies.
type Config struct {
	BackupPath                  string
	Bootstrap                   BootstrapPolicy
	RequireEnrollmentForCheckIn bool
}

// Registry owns every collection of the school. It is not safe for concurrent use.
type Registry struct {
	store   dataStore
	actions actionRecorder
	files   fileStorage
	saves   saveObserver
	logger  *zap.Logger
	cfg     Config
	now     func() time.Time

	// loadFailed is set when the data file exists but could not be read; the bootstrap admin
	// then stays in memory until the next mutation saves.
	loadFailed bool

	csv       *export.CSVExporter
	json      *export.JSONExporter
	textBadge *export.TextBadgeExporter
	pdfBadge  *export.PDFExporter

	students      []*models.Student
	teachers      []*models.Teacher
	courses       []*models.Course
	admins        []*models.AdminAccount
	staff         []*models.StaffAccount
	instruments   []string
	financeLog    []models.PaymentRecord
	attendanceLog []models.AttendanceRecord

	nextStudentID int
	nextTeacherID int
	nextAdminID   int
	nextStaffID   int
	nextCourseID  int
}

// New builds a registry and loads the data file behind store. Load failures never surface as
// errors: they are logged and the registry starts empty.
func New(store dataStore, actions actionRecorder, files fileStorage, cfg Config, logger *zap.Logger, saves saveObserver) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BackupPath == "" {
		cfg.BackupPath = "data/backup_data.json"
	}
	r := &Registry{
		store:     store,
		actions:   actions,
		files:     files,
		saves:     saves,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		csv:       export.NewCSVExporter(),
		json:      export.NewJSONExporter(),
		textBadge: export.NewTextBadgeExporter(),
		pdfBadge:  export.NewPDFExporter(),
	}
	r.reset()
	r.load()
	r.ensureAdmin()
	return r
}

func (r *Registry) reset() {
	r.students = make([]*models.Student, 0)
	r.teachers = make([]*models.Teacher, 0)
	r.courses = make([]*models.Course, 0)
	r.admins = make([]*models.AdminAccount, 0)
	r.staff = make([]*models.StaffAccount, 0)
	r.instruments = make([]string, 0)
	r.financeLog = make([]models.PaymentRecord, 0)
	r.attendanceLog = make([]models.AttendanceRecord, 0)
	r.nextStudentID = FirstStudentID
	r.nextTeacherID = FirstTeacherID
	r.nextAdminID = FirstAdminID
	r.nextStaffID = FirstStaffID
	r.nextCourseID = FirstCourseID
}

func (r *Registry) load() {
	path := r.store.Path()
	snap, err := r.store.Load()

	var corrupt *repository.CorruptDataError
	switch {
	case err == nil:
		r.restore(snap)
		r.logAction("LOAD", "Loaded data from %s", path)
	case errors.Is(err, repository.ErrDataFileMissing):
		r.logAction("LOAD_INFO", "No data file found at %s, starting fresh.", path)
		r.persist()
	case errors.As(err, &corrupt):
		r.logAction("LOAD_ERROR", "Corrupted JSON file %s: %v", path, corrupt.Err)
		if moved, qerr := r.store.Quarantine(); qerr != nil {
			r.logAction("BACKUP_ERROR", "Failed to back up corrupt file: %v", qerr)
		} else {
			r.logAction("BACKUP_ERROR", "Corrupted file backed up as %s", moved)
		}
		r.reset()
		r.persist()
	default:
		r.logAction("LOAD_ERROR", "Failed to load data from %s: %v", path, err)
		r.reset()
		r.loadFailed = true
	}
}

func (r *Registry) restore(snap *repository.Snapshot) {
	for i := range snap.Students {
		s := snap.Students[i]
		if s.EnrolledCourseIDs == nil {
			s.EnrolledCourseIDs = make([]int, 0)
		}
		r.students = append(r.students, &s)
		r.nextStudentID = maxInt(r.nextStudentID, s.ID+1)
	}
	for i := range snap.Teachers {
		t := snap.Teachers[i]
		r.teachers = append(r.teachers, &t)
		r.nextTeacherID = maxInt(r.nextTeacherID, t.ID+1)
	}
	for i := range snap.Courses {
		c := snap.Courses[i]
		if c.EnrolledStudentIDs == nil {
			c.EnrolledStudentIDs = make([]int, 0)
		}
		if c.Lessons == nil {
			c.Lessons = make([]models.Lesson, 0)
		}
		r.courses = append(r.courses, &c)
		r.nextCourseID = maxInt(r.nextCourseID, c.ID+1)
	}
	for i := range snap.Admins {
		a := snap.Admins[i]
		r.admins = append(r.admins, &a)
		r.nextAdminID = maxInt(r.nextAdminID, a.ID+1)
	}
	for i := range snap.Staff {
		s := snap.Staff[i]
		r.staff = append(r.staff, &s)
		r.nextStaffID = maxInt(r.nextStaffID, s.ID+1)
	}
	r.instruments = append(r.instruments, snap.Instruments...)
	r.financeLog = append(r.financeLog, snap.FinanceLog...)
	r.attendanceLog = append(r.attendanceLog, snap.AttendanceLog...)

	r.nextStudentID = maxInt(r.nextStudentID, snap.NextStudentID)
	r.nextTeacherID = maxInt(r.nextTeacherID, snap.NextTeacherID)
	r.nextAdminID = maxInt(r.nextAdminID, snap.NextAdminID)
	r.nextStaffID = maxInt(r.nextStaffID, snap.NextStaffID)
	r.nextCourseID = maxInt(r.nextCourseID, snap.NextCourseID)
}

func (r *Registry) ensureAdmin() {
	if len(r.admins) > 0 {
		return
	}
	policy := r.cfg.Bootstrap
	if !policy.Enabled {
		r.logger.Warn("no administrator accounts and bootstrap disabled")
		return
	}
	admin := &models.AdminAccount{ID: r.nextAdminID, Username: policy.Username, Password: policy.Password}
	r.nextAdminID++
	r.admins = append(r.admins, admin)
	r.logger.Warn("created default administrator account", zap.String("username", admin.Username), zap.Int("id", admin.ID))
	r.logAction("DEFAULT_ADMIN", "No admin found, created default admin %s (ID %d)", admin.Username, admin.ID)
	if r.loadFailed {
		return
	}
	r.persist()
}

func (r *Registry) snapshot() *repository.Snapshot {
	snap := &repository.Snapshot{
		Students:      make([]models.Student, 0, len(r.students)),
		Teachers:      make([]models.Teacher, 0, len(r.teachers)),
		Courses:       make([]models.Course, 0, len(r.courses)),
		Admins:        make([]models.AdminAccount, 0, len(r.admins)),
		Staff:         make([]models.StaffAccount, 0, len(r.staff)),
		Instruments:   append(make([]string, 0, len(r.instruments)), r.instruments...),
		FinanceLog:    append(make([]models.PaymentRecord, 0, len(r.financeLog)), r.financeLog...),
		AttendanceLog: append(make([]models.AttendanceRecord, 0, len(r.attendanceLog)), r.attendanceLog...),
		NextStudentID: r.nextStudentID,
		NextTeacherID: r.nextTeacherID,
		NextAdminID:   r.nextAdminID,
		NextStaffID:   r.nextStaffID,
		NextCourseID:  r.nextCourseID,
	}
	for _, s := range r.students {
		snap.Students = append(snap.Students, s.Clone())
	}
	for _, t := range r.teachers {
		snap.Teachers = append(snap.Teachers, *t)
	}
	for _, c := range r.courses {
		snap.Courses = append(snap.Courses, c.Clone())
	}
	for _, a := range r.admins {
		snap.Admins = append(snap.Admins, *a)
	}
	for _, s := range r.staff {
		snap.Staff = append(snap.Staff, *s)
	}
	return snap
}

// persist rewrites the data file. Failures are logged, never returned.
func (r *Registry) persist() {
	start := time.Now()
	err := r.store.Save(r.snapshot())
	if r.saves != nil {
		r.saves.ObserveSave(time.Since(start), err)
	}
	if err != nil {
		r.logAction("SAVE_ERROR", "Error saving data to %s: %v", r.store.Path(), err)
		return
	}
	r.logAction("SAVE", "Data saved to %s", r.store.Path())
}

func (r *Registry) logAction(tag, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fields := []zap.Field{zap.String("tag", tag), zap.String("message", message)}
	if strings.HasSuffix(tag, "_ERROR") || strings.HasSuffix(tag, "_FAIL") {
		r.logger.Warn("registry action", fields...)
	} else {
		r.logger.Info("registry action", fields...)
	}
	if r.actions == nil {
		return
	}
	if err := r.actions.Record(tag, message); err != nil {
		r.logger.Error("append action log", append(fields, zap.Error(err))...)
	}
}

func (r *Registry) timestamp() string {
	return models.FormatTimestamp(r.now())
}

func notFound(format string, args ...interface{}) error {
	return appErrors.Clonef(appErrors.ErrNotFound, format, args...)
}

func invalid(format string, args ...interface{}) error {
	return appErrors.Clonef(appErrors.ErrValidation, format, args...)
}

func conflict(format string, args ...interface{}) error {
	return appErrors.Clonef(appErrors.ErrConflict, format, args...)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
