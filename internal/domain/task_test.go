package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRowRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{
		ID:        5,
		UserID:    7,
		Text:      "pay rent",
		Completed: true,
		Priority:  PriorityHigh,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	got, err := TaskFromRow(task.ToRow())
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Text, got.Text)
	assert.Equal(t, task.Priority, got.Priority)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, task.UpdatedAt.Equal(got.UpdatedAt))
}

func TestTaskFromRowAllowsMissingUpdatedAt(t *testing.T) {
	row := TaskRow{ID: 1, UserID: 2, Text: "x", Priority: "low", CreatedAt: "2025-03-01T12:00:00Z"}

	got, err := TaskFromRow(row)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.IsZero())
}

func TestTaskFromRowRejectsUnknownPriority(t *testing.T) {
	row := TaskRow{ID: 1, UserID: 2, Text: "x", Priority: "urgent", CreatedAt: "2025-03-01T12:00:00Z"}

	_, err := TaskFromRow(row)
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	for _, ok := range []string{"low", "medium", "high"} {
		_, err := ParsePriority(ok)
		assert.NoError(t, err)
	}
	_, err := ParsePriority("Medium")
	assert.Error(t, err)
}
