package models

import "strings"

// Weekdays lists the accepted lesson days in calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NormalizeWeekday maps a case-insensitive day name onto its canonical form.
func NormalizeWeekday(day string) (string, bool) {
	trimmed := strings.TrimSpace(day)
	for _, d := range Weekdays {
		if strings.EqualFold(d, trimmed) {
			return d, true
		}
	}
	return "", false
}

// Lesson is a recurring weekly slot belonging to a course.
type Lesson struct {
	Title           string `json:"title"`
	Day             string `json:"day"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration"`
}

// Course groups lessons taught by a single teacher.
type Course struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Instrument         string   `json:"instrument"`
	TeacherID          int      `json:"teacher_id"`
	EnrolledStudentIDs []int    `json:"enrolled_student_ids"`
	Lessons            []Lesson `json:"lessons"`
}

// HasStudent reports whether the student is on the course roster.
func (c *Course) HasStudent(studentID int) bool {
	return containsInt(c.EnrolledStudentIDs, studentID)
}

// Clone returns a deep copy safe to hand outside the registry.
func (c *Course) Clone() Course {
	out := *c
	out.EnrolledStudentIDs = append(make([]int, 0, len(c.EnrolledStudentIDs)), c.EnrolledStudentIDs...)
	out.Lessons = append(make([]Lesson, 0, len(c.Lessons)), c.Lessons...)
	return out
}

// RosterEntry is one lesson on the daily roster.
type RosterEntry struct {
	CourseName       string `json:"course_name"`
	CourseID         int    `json:"course_id"`
	Instrument       string `json:"instrument"`
	TeacherName      string `json:"teacher_name"`
	LessonTitle      string `json:"lesson_title"`
	Time             string `json:"time"`
	Duration         int    `json:"duration"`
	StudentsEnrolled int    `json:"students_enrolled"`
}

// FrontDeskEntry is the reduced roster row shown at reception.
type FrontDeskEntry struct {
	CourseName       string `json:"course_name"`
	TeacherName      string `json:"teacher_name"`
	LessonTitle      string `json:"lesson_title"`
	Time             string `json:"time"`
	Duration         int    `json:"duration"`
	StudentsEnrolled int    `json:"students_enrolled"`
}

// UnknownTeacher labels roster rows whose teacher no longer exists.
const UnknownTeacher = "Unknown"
