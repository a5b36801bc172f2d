package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
)

// emit publishes an event. Failures are logged and never fail the caller.
func emit(ctx context.Context, emitter events.EventEmitter, fallback *slog.Logger, eventType string, payload any) {
	log := logger.FromContextOrDefault(ctx, fallback)

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", redact.Error(err)))
	}
}
