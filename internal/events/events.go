package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "cbt-exam-service"
	eventVersion = "1.0"
)

// EventType represents different types of notification events
type EventType string

const (
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventScoresReset      EventType = "scores.reset"
	EventExamBlockChanged EventType = "exam.block_changed"
)

// NotificationEvent is the envelope shared by all published events.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type AttemptSubmittedEvent struct {
	StudentID   string    `json:"student_id"`
	TotalScore  string    `json:"total_score"`
	Status      string    `json:"status"`
	Duration    string    `json:"duration"`
	Forced      bool      `json:"forced"`
	Reason      string    `json:"reason,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ScoresResetEvent announces an administrative reset. StudentID is
// empty when every score was cleared.
type ScoresResetEvent struct {
	StudentID string    `json:"student_id,omitempty"`
	All       bool      `json:"all"`
	ResetAt   time.Time `json:"reset_at"`
}

type ExamBlockChangedEvent struct {
	Blocked   bool      `json:"blocked"`
	ChangedAt time.Time `json:"changed_at"`
}

// Event factory functions

func NewAttemptSubmittedEvent(data AttemptSubmittedEvent) *NotificationEvent {
	return newEvent(EventAttemptSubmitted, data)
}

func NewScoresResetEvent(data ScoresResetEvent) *NotificationEvent {
	return newEvent(EventScoresReset, data)
}

func NewExamBlockChangedEvent(data ExamBlockChangedEvent) *NotificationEvent {
	return newEvent(EventExamBlockChanged, data)
}

func newEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
