package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliciaPky/Astar/internal/models"
	"github.com/AliciaPky/Astar/internal/repository"
)

func cleanSnapshot() *repository.Snapshot {
	return &repository.Snapshot{
		Students: []models.Student{{ID: 4000, Name: "Alice", EnrolledCourseIDs: []int{1}}},
		Teachers: []models.Teacher{{ID: 3000, Name: "Bob", Speciality: "Piano"}},
		Courses: []models.Course{{
			ID: 1, Name: "Piano 101", Instrument: "Piano", TeacherID: 3000,
			EnrolledStudentIDs: []int{4000},
			Lessons:            []models.Lesson{{Title: "Scales", Day: "Monday", Time: "10:00", DurationMinutes: 60}},
		}},
		Admins:        []models.AdminAccount{{ID: 1000, Username: "admin", Password: "password"}},
		NextStudentID: 4001,
		NextTeacherID: 3001,
		NextCourseID:  2,
		NextAdminID:   1001,
	}
}

func rules(findings []finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestAuditCleanSnapshot(t *testing.T) {
	assert.Empty(t, audit(cleanSnapshot()))
}

func TestAuditAsymmetricEnrollment(t *testing.T) {
	snap := cleanSnapshot()
	snap.Students[0].EnrolledCourseIDs = nil

	findings := audit(snap)
	require.Len(t, findings, 1)
	assert.Equal(t, "asymmetric_enrollment", findings[0].Rule)
	assert.True(t, findings[0].Breaking)
}

func TestAuditDanglingReferencesAndDuplicates(t *testing.T) {
	snap := cleanSnapshot()
	snap.Teachers = nil
	snap.Students = append(snap.Students, models.Student{ID: 4000, Name: "Alias"})
	snap.Students[0].EnrolledCourseIDs = append(snap.Students[0].EnrolledCourseIDs, 99)

	got := rules(audit(snap))
	assert.Contains(t, got, "duplicate_id")
	assert.Contains(t, got, "dangling_course")
	assert.Contains(t, got, "dangling_teacher")
}

func TestAuditCountersAndWeekdays(t *testing.T) {
	snap := cleanSnapshot()
	snap.NextStudentID = 4000
	snap.Courses[0].Lessons[0].Day = "Funday"
	snap.Admins = nil
	snap.NextAdminID = 0

	findings := audit(snap)
	got := rules(findings)
	assert.ElementsMatch(t, []string{"stale_counter", "invalid_weekday", "no_admin"}, got)
	for _, f := range findings {
		assert.False(t, f.Breaking)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, nil, false))
	assert.Equal(t, "No findings\n", buf.String())

	buf.Reset()
	require.NoError(t, printReport(&buf, []finding{{Rule: "duplicate_id", Message: "student id 4000 appears more than once", Breaking: true}}, false))
	assert.Contains(t, buf.String(), "[FAIL] duplicate_id")

	buf.Reset()
	require.NoError(t, printReport(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())
}
