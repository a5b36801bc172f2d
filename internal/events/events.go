package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types raised by the services.
const (
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
)

// Event represents something that happened to a domain entity.
type Event struct {
	// ID uniquely identifies this event instance
	ID uuid.UUID `json:"id"`

	// Type names what happened, e.g. "post.created"
	Type string `json:"type"`

	// Payload contains the event-specific data as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the event was raised
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event's payload into v.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an event of the given type with payload encoded as JSON.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes events.
type EventHandler interface {
	// HandleEvent processes an event and returns an error if processing fails.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter delivers events to interested handlers.
type EventEmitter interface {
	// EmitEvent dispatches an event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// PostPayload is carried by post events.
type PostPayload struct {
	PostID     int64 `json:"post_id"`
	UserID     int64 `json:"user_id,omitempty"`
	CategoryID int   `json:"category_id,omitempty"`
}

// CommentPayload is carried by comment events.
type CommentPayload struct {
	CommentID int64 `json:"comment_id"`
	PostID    int64 `json:"post_id"`
	UserID    int64 `json:"user_id"`
}
