package models

import "time"

type EventType string

const (
	EventUserCreated       EventType = "user.created"
	EventTaskCreated       EventType = "task.created"
	EventTaskStatusChanged EventType = "task.status_changed"
)

// Event được phát ra sau mỗi thao tác ghi thành công
type Event struct {
	Type       EventType `json:"type"`
	User       *User     `json:"user,omitempty"`
	Task       *Task     `json:"task,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
