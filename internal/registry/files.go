package registry

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/export"
)

const badgeTitle = "MUSIC SCHOOL ID BADGE"

// Backup copies the data file verbatim to the configured backup path and returns a status line.
// The status is returned on failure too, alongside the error.
func (r *Registry) Backup() (string, error) {
	src, err := r.store.Open()
	if err != nil {
		msg := fmt.Sprintf("Backup failed: data file not found at %s", r.store.Path())
		r.logAction("MANUAL_BACKUP_FAIL", "%s", msg)
		return msg, storageFailure(err, msg)
	}
	defer src.Close() //nolint:errcheck

	if _, err := r.files.SaveStream(r.cfg.BackupPath, src); err != nil {
		msg := fmt.Sprintf("Backup failed due to error: %v", err)
		r.logAction("MANUAL_BACKUP_FAIL", "%s", msg)
		return msg, storageFailure(err, "backup failed")
	}

	msg := fmt.Sprintf("Backup created successfully at %s", r.files.Path(r.cfg.BackupPath))
	r.logAction("MANUAL_BACKUP", "%s", msg)
	return msg, nil
}

// PrintStudentCard writes an ID badge for the student and returns where it was written.
// An empty path defaults to "<id>_card.txt"; ".pdf" paths produce a PDF badge.
func (r *Registry) PrintStudentCard(studentID int, path string) (string, error) {
	student := r.student(studentID)
	if student == nil {
		return "", notFound("student %d not found", studentID)
	}
	if path == "" {
		path = fmt.Sprintf("%d_card.txt", studentID)
	}

	enrolled := "No courses enrolled"
	if len(student.EnrolledCourseIDs) > 0 {
		ids := make([]string, 0, len(student.EnrolledCourseIDs))
		for _, id := range student.EnrolledCourseIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		enrolled = strings.Join(ids, ", ")
	}
	badge := export.Badge{
		Title: badgeTitle,
		Fields: []export.BadgeField{
			{Label: "ID", Value: strconv.Itoa(student.ID)},
			{Label: "Name", Value: student.Name},
			{Label: "Enrolled In", Value: enrolled},
		},
	}

	var (
		payload []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		payload, err = r.textBadge.Render(badge)
	case ".pdf":
		payload, err = r.pdfBadge.Render(badge)
	default:
		return "", invalid("unsupported card format %q, use .txt or .pdf", filepath.Ext(path))
	}
	if err != nil {
		return "", storageFailure(err, "failed to render student card")
	}
	if _, err := r.files.Save(path, payload); err != nil {
		return "", storageFailure(err, "failed to write student card")
	}

	written := r.files.Path(path)
	r.logAction("STUDENT_CARD", "Student card for %s saved as %s", student.Name, written)
	return written, nil
}

func storageFailure(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, message)
}
