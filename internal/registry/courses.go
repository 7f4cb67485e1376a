package registry

import (
	"strings"

	"github.com/AliciaPky/Astar/internal/models"
)

// AddCourse creates a course taught by an existing teacher.
func (r *Registry) AddCourse(name, instrument string, teacherID int) (*models.Course, error) {
	if r.teacher(teacherID) == nil {
		return nil, notFound("teacher %d not found", teacherID)
	}
	course := &models.Course{
		ID:                 r.nextCourseID,
		Name:               name,
		Instrument:         instrument,
		TeacherID:          teacherID,
		EnrolledStudentIDs: make([]int, 0),
		Lessons:            make([]models.Lesson, 0),
	}
	r.nextCourseID++
	r.courses = append(r.courses, course)
	r.logAction("ADD_COURSE", "Added course: %s, Instrument: %s (ID: %d), Teacher ID: %d", course.Name, course.Instrument, course.ID, teacherID)
	r.persist()
	out := course.Clone()
	return &out, nil
}

// RemoveCourse deletes a course and strips it from every student's enrollment list.
func (r *Registry) RemoveCourse(id int) error {
	idx := r.courseIndex(id)
	if idx < 0 {
		return notFound("course %d not found", id)
	}
	course := r.courses[idx]
	r.courses = append(r.courses[:idx], r.courses[idx+1:]...)
	for _, student := range r.students {
		student.EnrolledCourseIDs, _ = models.RemoveInt(student.EnrolledCourseIDs, id)
	}
	r.logAction("REMOVE_COURSE", "Removed course: %s", course.Name)
	r.persist()
	return nil
}

// FindCourse returns a copy of the course.
func (r *Registry) FindCourse(id int) (*models.Course, error) {
	course := r.course(id)
	if course == nil {
		return nil, notFound("course %d not found", id)
	}
	out := course.Clone()
	return &out, nil
}

// Courses lists every course in creation order.
func (r *Registry) Courses() []models.Course {
	out := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c.Clone())
	}
	return out
}

// AddLessonToCourse appends a weekly lesson. The day is stored in its canonical form; a day that
// is not a weekday name is rejected here as well as by the service layer.
func (r *Registry) AddLessonToCourse(courseID int, title, day, time string, durationMinutes int) error {
	course := r.course(courseID)
	if course == nil {
		return notFound("course %d not found", courseID)
	}
	canonical, ok := models.NormalizeWeekday(day)
	if !ok {
		return invalid("invalid day name %q", day)
	}
	course.Lessons = append(course.Lessons, models.Lesson{
		Title:           title,
		Day:             canonical,
		Time:            time,
		DurationMinutes: durationMinutes,
	})
	r.logAction("ADD_LESSON", "Lesson added to %s: %s on %s at %s (%d min)", course.Name, title, canonical, time, durationMinutes)
	r.persist()
	return nil
}

// RemoveLessonFromCourse removes the first lesson whose title matches exactly.
func (r *Registry) RemoveLessonFromCourse(courseID int, title string) error {
	course := r.course(courseID)
	if course == nil {
		return notFound("course %d not found", courseID)
	}
	for i, lesson := range course.Lessons {
		if lesson.Title == title {
			course.Lessons = append(course.Lessons[:i], course.Lessons[i+1:]...)
			r.logAction("REMOVE_LESSON", "Removed lesson '%s' from course '%s'", title, course.Name)
			r.persist()
			return nil
		}
	}
	return notFound("lesson %q not found in course %q", title, course.Name)
}

// EnrollStudentInCourse links a student and a course on both sides.
func (r *Registry) EnrollStudentInCourse(studentID, courseID int) error {
	student := r.student(studentID)
	if student == nil {
		return notFound("student %d not found", studentID)
	}
	course := r.course(courseID)
	if course == nil {
		return notFound("course %d not found", courseID)
	}
	if student.IsEnrolledIn(courseID) {
		return conflict("%s is already enrolled in %s", student.Name, course.Name)
	}
	student.EnrolledCourseIDs = append(student.EnrolledCourseIDs, courseID)
	if !course.HasStudent(studentID) {
		course.EnrolledStudentIDs = append(course.EnrolledStudentIDs, studentID)
	}
	r.logAction("ENROLL", "%s enrolled in %s", student.Name, course.Name)
	r.persist()
	return nil
}

// SwitchStudentCourse moves a student from one course to another.
func (r *Registry) SwitchStudentCourse(studentID, fromCourseID, toCourseID int) error {
	student := r.student(studentID)
	if student == nil {
		return notFound("student %d not found", studentID)
	}
	from := r.course(fromCourseID)
	if from == nil {
		return notFound("course %d not found", fromCourseID)
	}
	to := r.course(toCourseID)
	if to == nil {
		return notFound("course %d not found", toCourseID)
	}
	if !student.IsEnrolledIn(fromCourseID) {
		return invalid("%s is not enrolled in %s", student.Name, from.Name)
	}
	if student.IsEnrolledIn(toCourseID) {
		return conflict("%s is already enrolled in %s", student.Name, to.Name)
	}

	student.EnrolledCourseIDs, _ = models.RemoveInt(student.EnrolledCourseIDs, fromCourseID)
	from.EnrolledStudentIDs, _ = models.RemoveInt(from.EnrolledStudentIDs, studentID)
	student.EnrolledCourseIDs = append(student.EnrolledCourseIDs, toCourseID)
	if !to.HasStudent(studentID) {
		to.EnrolledStudentIDs = append(to.EnrolledStudentIDs, studentID)
	}
	r.logAction("SWITCH_COURSE", "%s switched from %s to %s", student.Name, from.Name, to.Name)
	r.persist()
	return nil
}

// EnrolledCourses resolves the student's enrollment list, skipping IDs that no longer exist.
// Unknown students yield an empty list.
func (r *Registry) EnrolledCourses(studentID int) []models.Course {
	out := make([]models.Course, 0)
	student := r.student(studentID)
	if student == nil {
		return out
	}
	for _, cid := range student.EnrolledCourseIDs {
		if course := r.course(cid); course != nil {
			out = append(out, course.Clone())
		}
	}
	return out
}

// CheckInStudent appends an attendance record. Enrollment is only required when the registry
// was configured with RequireEnrollmentForCheckIn.
func (r *Registry) CheckInStudent(studentID, courseID int) error {
	student := r.student(studentID)
	if student == nil {
		return notFound("student %d not found", studentID)
	}
	course := r.course(courseID)
	if course == nil {
		return notFound("course %d not found", courseID)
	}
	if r.cfg.RequireEnrollmentForCheckIn && !student.IsEnrolledIn(courseID) {
		return invalid("%s is not enrolled in %s", student.Name, course.Name)
	}
	r.attendanceLog = append(r.attendanceLog, models.AttendanceRecord{
		StudentID:  studentID,
		CourseID:   courseID,
		CourseName: course.Name,
		Timestamp:  r.timestamp(),
	})
	r.logAction("CHECKIN", "%s checked in to %s", student.Name, course.Name)
	r.persist()
	return nil
}

// AttendanceLog returns every check-in in insertion order.
func (r *Registry) AttendanceLog() []models.AttendanceRecord {
	return append(make([]models.AttendanceRecord, 0, len(r.attendanceLog)), r.attendanceLog...)
}

// DailyRoster lists every lesson held on day across all courses. Unknown day names yield an
// empty roster.
func (r *Registry) DailyRoster(day string) []models.RosterEntry {
	out := make([]models.RosterEntry, 0)
	canonical, ok := models.NormalizeWeekday(day)
	if !ok {
		return out
	}
	for _, course := range r.courses {
		teacherName := models.UnknownTeacher
		if teacher := r.teacher(course.TeacherID); teacher != nil {
			teacherName = teacher.Name
		}
		for _, lesson := range course.Lessons {
			if !strings.EqualFold(strings.TrimSpace(lesson.Day), canonical) {
				continue
			}
			out = append(out, models.RosterEntry{
				CourseName:       course.Name,
				CourseID:         course.ID,
				Instrument:       course.Instrument,
				TeacherName:      teacherName,
				LessonTitle:      lesson.Title,
				Time:             lesson.Time,
				Duration:         lesson.DurationMinutes,
				StudentsEnrolled: len(course.EnrolledStudentIDs),
			})
		}
	}
	return out
}

// FrontDeskRoster is DailyRoster without course IDs and instruments.
func (r *Registry) FrontDeskRoster(day string) []models.FrontDeskEntry {
	full := r.DailyRoster(day)
	out := make([]models.FrontDeskEntry, 0, len(full))
	for _, row := range full {
		out = append(out, models.FrontDeskEntry{
			CourseName:       row.CourseName,
			TeacherName:      row.TeacherName,
			LessonTitle:      row.LessonTitle,
			Time:             row.Time,
			Duration:         row.Duration,
			StudentsEnrolled: row.StudentsEnrolled,
		})
	}
	return out
}

func (r *Registry) course(id int) *models.Course {
	if idx := r.courseIndex(id); idx >= 0 {
		return r.courses[idx]
	}
	return nil
}

func (r *Registry) courseIndex(id int) int {
	for i, c := range r.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}
