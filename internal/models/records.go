package models

import (
	"strconv"
	"time"
)

// TimestampLayout formats log record timestamps (ISO-8601, microsecond precision, local time).
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// AttendanceRecord is appended on every check-in.
type AttendanceRecord struct {
	StudentID  int    `json:"student_id"`
	CourseID   int    `json:"course_id"`
	CourseName string `json:"course_name"`
	Timestamp  string `json:"timestamp"`
}

// Columns lists the export columns in field order.
func (AttendanceRecord) Columns() []string {
	return []string{"student_id", "course_id", "course_name", "timestamp"}
}

// Values maps each column to its rendered value.
func (r AttendanceRecord) Values() map[string]string {
	return map[string]string{
		"student_id":  strconv.Itoa(r.StudentID),
		"course_id":   strconv.Itoa(r.CourseID),
		"course_name": r.CourseName,
		"timestamp":   r.Timestamp,
	}
}

// PaymentRecord is appended on every accepted payment.
type PaymentRecord struct {
	StudentID   int     `json:"student_id"`
	StudentName string  `json:"student_name"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Timestamp   string  `json:"timestamp"`
}

// Columns lists the export columns in field order.
func (PaymentRecord) Columns() []string {
	return []string{"student_id", "student_name", "amount", "method", "timestamp"}
}

// Values maps each column to its rendered value.
func (r PaymentRecord) Values() map[string]string {
	return map[string]string{
		"student_id":   strconv.Itoa(r.StudentID),
		"student_name": r.StudentName,
		"amount":       strconv.FormatFloat(r.Amount, 'f', -1, 64),
		"method":       r.Method,
		"timestamp":    r.Timestamp,
	}
}

// ReportKind selects the log exported by ExportReport.
type ReportKind string

const (
	ReportPayments   ReportKind = "payments"
	ReportAttendance ReportKind = "attendance"
)
