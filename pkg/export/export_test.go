package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"student_id", "amount"},
		Rows: []map[string]string{
			{"student_id": "4000", "amount": "200.5"},
			{"student_id": "4001"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "student_id,amount\n4000,200.5\n4001,\n", string(out))
}

func TestDatasetAppend(t *testing.T) {
	data := NewDataset("course_id", "timestamp")
	assert.True(t, data.Empty())

	data.Append(map[string]string{"course_id": "1", "timestamp": "2024-05-01T10:00:00"})
	assert.False(t, data.Empty())

	out, err := NewCSVExporter().Render(*data)
	require.NoError(t, err)
	assert.Equal(t, "course_id,timestamp\n1,2024-05-01T10:00:00\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestJSONExporterRender(t *testing.T) {
	type row struct {
		ID int `json:"id"`
	}

	out, err := NewJSONExporter().Render([]row{{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"id\": 1\n    }\n]", string(out))

	var empty []row
	out, err = NewJSONExporter().Render(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestTextBadgeExporterRender(t *testing.T) {
	out, err := NewTextBadgeExporter().Render(Badge{
		Title: "MUSIC SCHOOL ID BADGE",
		Fields: []BadgeField{
			{Label: "ID", Value: "4000"},
			{Label: "Name", Value: "Alicia"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"========================\n  MUSIC SCHOOL ID BADGE\n========================\nID: 4000\nName: Alicia\n========================\n",
		string(out))

	_, err = NewTextBadgeExporter().Render(Badge{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(Badge{
		Title:  "Music School ID Badge",
		Fields: []BadgeField{{Label: "Name", Value: "Shuen"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
