package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	FormCreated       EventType = "form.created"
	FormUpdated       EventType = "form.updated"
	FormDeleted       EventType = "form.deleted"
	ResponseSubmitted EventType = "response.submitted"
)

// FormEvent is the envelope published for every form lifecycle change and
// response submission. Consumers key off Type; Data carries the per-event
// payload.
type FormEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	FormID    uint                   `json:"form_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewFormEvent builds an event envelope with a fresh id and the service's
// standard source/version headers.
func NewFormEvent(t EventType, formID uint, data map[string]interface{}) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      t,
		FormID:    formID,
		Timestamp: time.Now().UTC(),
		Source:    "form-builder-service",
		Version:   "1.0",
		Data:      data,
	}
}
