package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPresence(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		age    time.Duration
		bucket PresenceBucket
		label  string
	}{
		{"just joined", 0, PresenceRecording, "Recording"},
		{"90 seconds ago", 90 * time.Second, PresenceRecording, "Recording"},
		{"exactly two minutes", 2 * time.Minute, PresenceListening, "Listening"},
		{"200 seconds ago", 200 * time.Second, PresenceListening, "Listening"},
		{"exactly five minutes", 5 * time.Minute, PresenceIdle, "Idle (5m ago)"},
		{"400 seconds ago", 400 * time.Second, PresenceIdle, "Idle (6m ago)"},
		{"an hour ago", time.Hour, PresenceIdle, "Idle (60m ago)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ClassifyPresence(now, now.Add(-tt.age))
			assert.Equal(t, tt.bucket, p.Bucket)
			assert.Equal(t, tt.label, p.Label)
		})
	}
}

func TestIsValidKeySignature(t *testing.T) {
	assert.True(t, IsValidKeySignature("C Major"))
	assert.True(t, IsValidKeySignature("A Minor"))
	assert.False(t, IsValidKeySignature("H Major"))
	assert.False(t, IsValidKeySignature(""))
}
