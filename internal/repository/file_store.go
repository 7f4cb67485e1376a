package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AliciaPky/Astar/internal/models"
)

// ErrDataFileMissing is returned by Load when no data file exists yet.
var ErrDataFileMissing = errors.New("data file missing")

// CorruptDataError reports a data file that exists but cannot be decoded.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data file %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// Snapshot is the on-disk shape of the whole registry.
type Snapshot struct {
	Students      []models.Student          `json:"students"`
	Teachers      []models.Teacher          `json:"teachers"`
	Courses       []models.Course           `json:"courses"`
	Admins        []models.AdminAccount     `json:"admins"`
	Staff         []models.StaffAccount     `json:"staff"`
	Instruments   []string                  `json:"instruments"`
	FinanceLog    []models.PaymentRecord    `json:"finance_log"`
	AttendanceLog []models.AttendanceRecord `json:"attendance_log"`

	NextStudentID int `json:"next_student_id"`
	NextTeacherID int `json:"next_teacher_id"`
	NextAdminID   int `json:"next_admin_id"`
	NextStaffID   int `json:"next_staff_id"`
	NextCourseID  int `json:"next_course_id"`
}

// legacySnapshot accepts the key names written by older builds.
type legacySnapshot struct {
	Snapshot
	Admin      []models.AdminAccount     `json:"admin"`
	Attendance []models.AttendanceRecord `json:"attendance"`
}

// FileStore reads and overwrites the registry's JSON data file.
type FileStore struct {
	path string
}

// NewFileStore returns a store bound to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load decodes the data file.
func (s *FileStore) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDataFileMissing
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var decoded legacySnapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &CorruptDataError{Path: s.path, Err: err}
		}
		return nil, fmt.Errorf("decode data file: %w", err)
	}

	snap := decoded.Snapshot
	if len(snap.Admins) == 0 && len(decoded.Admin) > 0 {
		snap.Admins = decoded.Admin
	}
	if len(snap.AttendanceLog) == 0 && len(decoded.Attendance) > 0 {
		snap.AttendanceLog = decoded.Attendance
	}
	return &snap, nil
}

// Save overwrites the data file with the snapshot.
func (s *FileStore) Save(snap *Snapshot) error {
	payload, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare data directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Quarantine moves a corrupt data file aside and returns its new location.
func (s *FileStore) Quarantine() (string, error) {
	target := s.path + ".corrupt"
	if err := os.Rename(s.path, target); err != nil {
		return "", fmt.Errorf("rename corrupt data file: %w", err)
	}
	return target, nil
}

// Open returns a reader over the current data file contents.
func (s *FileStore) Open() (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	return file, nil
}
