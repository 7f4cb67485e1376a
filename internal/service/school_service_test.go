package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/registry"
	"github.com/AliciaPky/Astar/internal/repository"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/storage"
)

type operationSpy struct {
	mu    sync.Mutex
	calls map[string][]error
}

func (s *operationSpy) RecordOperation(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string][]error)
	}
	s.calls[operation] = append(s.calls[operation], err)
}

func newRegistryForTest(t *testing.T) (*registry.Registry, *storage.LocalStorage) {
	t.Helper()
	dir := t.TempDir()
	actions, err := repository.NewActionLog(filepath.Join(dir, "system_log.txt"))
	require.NoError(t, err)
	files, err := storage.NewLocalStorage(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	reg := registry.New(
		repository.NewFileStore(filepath.Join(dir, "msms.json")),
		actions,
		files,
		registry.Config{
			BackupPath: filepath.Join(dir, "backup_data.json"),
			Bootstrap:  registry.DefaultBootstrapPolicy(),
		},
		zap.NewNop(),
		nil,
	)
	return reg, files
}

func newSchoolServiceForTest(t *testing.T) (*SchoolService, *operationSpy) {
	t.Helper()
	reg, _ := newRegistryForTest(t)
	spy := &operationSpy{}
	return NewSchoolService(reg, validator.New(), zap.NewNop(), spy), spy
}

func TestSchoolServiceCreateStudentValidation(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)

	_, err := svc.CreateStudent(dto.CreateStudentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	student, err := svc.CreateStudent(dto.CreateStudentRequest{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, registry.FirstStudentID, student.ID)
	assert.Len(t, svc.ListStudents(), 1)
}

func TestSchoolServiceUpdateStudentReturnsRecord(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)
	student, err := svc.CreateStudent(dto.CreateStudentRequest{Name: "Alice"})
	require.NoError(t, err)

	updated, err := svc.UpdateStudent(student.ID, dto.UpdateStudentRequest{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	_, err = svc.UpdateStudent(9999, dto.UpdateStudentRequest{Name: "Nobody"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSchoolServiceRecordsOperationOutcomes(t *testing.T) {
	svc, spy := newSchoolServiceForTest(t)

	require.Error(t, svc.DeleteStudent(4000))
	teacher, err := svc.CreateTeacher(dto.CreateTeacherRequest{Name: "Bob", Speciality: "Piano"})
	require.NoError(t, err)

	require.Len(t, spy.calls["remove_student"], 1)
	assert.ErrorIs(t, spy.calls["remove_student"][0], appErrors.ErrNotFound)
	require.Len(t, spy.calls["add_teacher"], 1)
	assert.NoError(t, spy.calls["add_teacher"][0])
	assert.Equal(t, registry.FirstTeacherID, teacher.ID)
}

func TestSchoolServiceLessonWeekdayValidation(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)
	teacher, err := svc.CreateTeacher(dto.CreateTeacherRequest{Name: "Bob", Speciality: "Piano"})
	require.NoError(t, err)
	course, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Piano 101", Instrument: "Piano", TeacherID: teacher.ID})
	require.NoError(t, err)

	_, err = svc.AddLesson(course.ID, dto.CreateLessonRequest{Title: "Scales", Day: "Someday", Time: "10:00", DurationMinutes: 60})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	updated, err := svc.AddLesson(course.ID, dto.CreateLessonRequest{Title: "Scales", Day: "monday", Time: "10:00", DurationMinutes: 60})
	require.NoError(t, err)
	require.Len(t, updated.Lessons, 1)
	assert.Equal(t, "Monday", updated.Lessons[0].Day)

	roster := svc.DailyRoster("Monday")
	require.Len(t, roster, 1)
	assert.Equal(t, "Bob", roster[0].TeacherName)
}

func TestSchoolServiceEnrollAndSwitch(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)
	student, _ := svc.CreateStudent(dto.CreateStudentRequest{Name: "Alice"})
	teacher, _ := svc.CreateTeacher(dto.CreateTeacherRequest{Name: "Bob", Speciality: "Piano"})
	first, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Piano 101", Instrument: "Piano", TeacherID: teacher.ID})
	require.NoError(t, err)
	second, err := svc.CreateCourse(dto.CreateCourseRequest{Name: "Piano 201", Instrument: "Piano", TeacherID: teacher.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Enroll(dto.EnrollmentRequest{StudentID: student.ID, CourseID: first.ID}))
	err = svc.Enroll(dto.EnrollmentRequest{StudentID: student.ID, CourseID: first.ID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	err = svc.SwitchCourse(dto.SwitchCourseRequest{StudentID: student.ID, FromCourseID: first.ID, ToCourseID: first.ID})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.SwitchCourse(dto.SwitchCourseRequest{StudentID: student.ID, FromCourseID: first.ID, ToCourseID: second.ID}))
	courses, err := svc.StudentCourses(student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, second.ID, courses[0].ID)
}

func TestSchoolServiceAccountsHidePasswords(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)

	staff, err := svc.CreateStaff(dto.CreateStaffRequest{Name: "Carol", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Carol", staff.Name)

	admins := svc.ListAdmins()
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Name)

	assert.True(t, svc.SignInStaff("Carol", "pw"))
	assert.False(t, svc.SignInStaff("Carol", "nope"))

	err = svc.DeleteAdmin(admins[0].ID)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestSchoolServicePayments(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)
	student, _ := svc.CreateStudent(dto.CreateStudentRequest{Name: "Alice"})

	_, err := svc.RecordPayment(dto.PaymentRequest{StudentID: student.ID, Amount: "abc", Method: "Cash"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	record, err := svc.RecordPayment(dto.PaymentRequest{StudentID: student.ID, Amount: "200.50", Method: "Cash"})
	require.NoError(t, err)
	assert.InDelta(t, 200.5, record.Amount, 0.0001)
	assert.Len(t, svc.PaymentHistory(student.ID), 1)
	assert.Len(t, svc.FinanceLog(), 1)
}

func TestSchoolServiceConcurrentAdds(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateStudent(dto.CreateStudentRequest{Name: "Student"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, s := range svc.ListStudents() {
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 20)
}

func TestSchoolServiceReleasesLockAfterPanic(t *testing.T) {
	svc, _ := newSchoolServiceForTest(t)

	require.Panics(t, func() {
		_ = svc.exec("render_card", func() error { panic("render failed") })
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.CreateStudent(dto.CreateStudentRequest{Name: "Alicia"})
		assert.NoError(t, err)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("registry lock still held after a panicking operation")
	}
}
