package domain

import (
	"fmt"
	"time"
)

type PresenceBucket string

const (
	PresenceRecording PresenceBucket = "recording"
	PresenceListening PresenceBucket = "listening"
	PresenceIdle      PresenceBucket = "idle"
)

const (
	recordingWindow = 2 * time.Minute
	listeningWindow = 5 * time.Minute
)

// Presence is a display classification derived at read time. It is never
// stored; stale participants decay to idle but are only removed by an
// explicit leave.
type Presence struct {
	Bucket PresenceBucket `json:"bucket"`
	Label  string         `json:"label"`
}

// ClassifyPresence buckets a participant by the age of its last heartbeat.
func ClassifyPresence(now, lastActiveAt time.Time) Presence {
	age := now.Sub(lastActiveAt)
	switch {
	case age < recordingWindow:
		return Presence{Bucket: PresenceRecording, Label: "Recording"}
	case age < listeningWindow:
		return Presence{Bucket: PresenceListening, Label: "Listening"}
	default:
		minutes := int(age.Minutes())
		return Presence{Bucket: PresenceIdle, Label: fmt.Sprintf("Idle (%dm ago)", minutes)}
	}
}
