package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLogWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "system_log.txt")
	fixed := time.Date(2024, 3, 4, 9, 5, 7, 0, time.Local)

	log, err := NewActionLog(path)
	require.NoError(t, err)
	log.WithClock(func() time.Time { return fixed })
	require.NoError(t, log.Record("ADD_STUDENT", "Added student: Alicia (ID 4000)"))

	again, err := NewActionLog(path)
	require.NoError(t, err)
	again.WithClock(func() time.Time { return fixed })
	require.NoError(t, again.Record("LOGIN", "Admin admin signed in"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"=== System Log Started ===\n"+
			"[2024-03-04 09:05:07] [ADD_STUDENT] Added student: Alicia (ID 4000)\n"+
			"[2024-03-04 09:05:07] [LOGIN] Admin admin signed in\n",
		string(raw))
}

func TestActionLogKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system_log.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o644))

	log, err := NewActionLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Record("SAVE", "Data saved"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "previous\n[")
	assert.NotContains(t, string(raw), "System Log Started")
}
