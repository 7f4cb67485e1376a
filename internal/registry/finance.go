package registry

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AliciaPky/Astar/internal/models"
	"github.com/AliciaPky/Astar/pkg/export"
)

// RecordPayment records a payment for an existing student. amount must parse as a finite number
// greater than zero.
func (r *Registry) RecordPayment(studentID int, amount, method string) (*models.PaymentRecord, error) {
	student := r.student(studentID)
	if student == nil {
		return nil, notFound("student %d not found", studentID)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, invalid("amount %q must be numeric", amount)
	}
	if value <= 0 {
		return nil, invalid("payment amount must be greater than 0")
	}

	record := models.PaymentRecord{
		StudentID:   studentID,
		StudentName: student.Name,
		Amount:      value,
		Method:      method,
		Timestamp:   r.timestamp(),
	}
	r.financeLog = append(r.financeLog, record)
	r.logAction("PAYMENT", "%s paid RM%.2f via %s", student.Name, value, method)
	r.persist()
	return &record, nil
}

// PaymentHistory returns the student's payments in insertion order.
func (r *Registry) PaymentHistory(studentID int) []models.PaymentRecord {
	out := make([]models.PaymentRecord, 0)
	for _, p := range r.financeLog {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out
}

// FinanceLog returns every payment in insertion order.
func (r *Registry) FinanceLog() []models.PaymentRecord {
	return append(make([]models.PaymentRecord, 0, len(r.financeLog)), r.financeLog...)
}

// ExportReport writes the payments or attendance log to path. The extension picks the format:
// ".json" writes the records as an indented array, ".csv" a header plus one row per record.
// A CSV export of an empty log fails without creating a file.
func (r *Registry) ExportReport(kind, path string) error {
	var (
		records interface{}
		dataset *export.Dataset
	)
	switch models.ReportKind(kind) {
	case models.ReportPayments:
		records = r.FinanceLog()
		dataset = export.NewDataset(models.PaymentRecord{}.Columns()...)
		for _, p := range r.financeLog {
			dataset.Append(p.Values())
		}
	case models.ReportAttendance:
		records = r.AttendanceLog()
		dataset = export.NewDataset(models.AttendanceRecord{}.Columns()...)
		for _, a := range r.attendanceLog {
			dataset.Append(a.Values())
		}
	default:
		return invalid("invalid report type %q, use 'payments' or 'attendance'", kind)
	}

	var (
		payload []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		payload, err = r.json.Render(records)
	case ".csv":
		if dataset.Empty() {
			return invalid("no %s data to export", kind)
		}
		payload, err = r.csv.Render(*dataset)
	default:
		return invalid("unsupported file format %q, use .json or .csv", filepath.Ext(path))
	}
	if err != nil {
		r.logAction("EXPORT_ERROR", "Failed to render %s report: %v", kind, err)
		return storageFailure(err, "failed to render report")
	}

	if _, err := r.files.Save(path, payload); err != nil {
		r.logAction("EXPORT_ERROR", "Failed to write %s report to %s: %v", kind, path, err)
		return storageFailure(err, "failed to write report")
	}
	r.logAction("EXPORT", "%s report exported to %s", capitalize(kind), r.files.Path(path))
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
