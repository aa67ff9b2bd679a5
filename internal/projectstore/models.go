package projectstore

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a recorded session.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ParseStatus normalizes a status string. Unknown values report false.
func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusRunning:
		return StatusRunning, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusFailed:
		return StatusFailed, true
	default:
		return "", false
	}
}

// Session is one recorded rendering run.
type Session struct {
	ID             string
	Name           string
	ScenePath      string
	Profile        string
	Status         Status
	ErrorMessage   string
	FramesRendered int
	CacheHits      int
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// Duration reports how long the session ran, or zero while it is running.
func (s Session) Duration() time.Duration {
	if s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// EventRecord is one journaled bus event.
type EventRecord struct {
	Seq        int
	Kind       string
	TargetID   string
	Payload    string
	RecordedAt time.Time
}

// FrameRecord is one journaled frame render.
type FrameRecord struct {
	FrameNumber    int
	Time           float64
	EffectsApplied int
	RenderTime     time.Duration
	RequestID      string
}

// Summary closes a session with its final counters.
type Summary struct {
	Status         Status
	ErrorMessage   string
	FramesRendered int
	CacheHits      int
}
