package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_UsesClockAndIDSource(t *testing.T) {
	s := &Session{
		now:   func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) },
		newID: func() (string, error) { return "fixed-id", nil },
	}
	s.StartAdding()
	s.UpdateField(FieldTitle, "Emma")
	s.UpdateField(FieldAuthor, "Jane Austen")

	res, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", res.Book.ID)
	assert.Equal(t, "2026-03-04T05:06:07Z", res.Book.Meta.AddedAt)
}

func TestCommit_IDSourceFailureKeepsSessionOpen(t *testing.T) {
	boom := errors.New("entropy exhausted")
	s := &Session{newID: func() (string, error) { return "", boom }}
	s.StartAdding()
	s.UpdateField(FieldTitle, "Emma")
	s.UpdateField(FieldAuthor, "Jane Austen")

	_, err := s.Commit()
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.IsOpen())
}
