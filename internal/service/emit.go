package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// emit publishes event after a committed mutation. Failures are logged and
// never reach the caller: the mutation already succeeded.
func emit(ctx context.Context, emitter events.EventEmitter, log *slog.Logger, event *events.ActionEvent) {
	if err := emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, log).Error("failed to emit action event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("action", string(event.Action)))
	}
}
