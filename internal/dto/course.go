package dto

// CreateCourseRequest creates a course under an existing teacher.
type CreateCourseRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Instrument string `json:"instrument" validate:"required,max=80"`
	TeacherID  int    `json:"teacherId" validate:"required,gt=0"`
}

// CreateLessonRequest appends a weekly lesson to a course.
type CreateLessonRequest struct {
	Title           string `json:"title" validate:"required,max=120"`
	Day             string `json:"day" validate:"required,weekday"`
	Time            string `json:"time" validate:"required,max=40"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0,lte=600"`
}

// EnrollmentRequest links a student to a course.
type EnrollmentRequest struct {
	StudentID int `json:"studentId" validate:"required,gt=0"`
	CourseID  int `json:"courseId" validate:"required,gt=0"`
}

// SwitchCourseRequest moves a student between courses.
type SwitchCourseRequest struct {
	StudentID    int `json:"studentId" validate:"required,gt=0"`
	FromCourseID int `json:"fromCourseId" validate:"required,gt=0"`
	ToCourseID   int `json:"toCourseId" validate:"required,gt=0,nefield=FromCourseID"`
}

// CheckInRequest records attendance.
type CheckInRequest struct {
	StudentID int `json:"studentId" validate:"required,gt=0"`
	CourseID  int `json:"courseId" validate:"required,gt=0"`
}

// InstrumentRequest names an instrument.
type InstrumentRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}
