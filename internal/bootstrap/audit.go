package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AuditEvent is emitted once per successful mutation. The sink's storage
// format is out of scope; this process writes to the log stream.
type AuditEvent struct {
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, event AuditEvent)
}

type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, event AuditEvent) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("actor_id", event.ActorID),
		zap.String("action", event.Action),
		zap.String("resource", event.Resource),
		zap.String("resource_id", event.ResourceID),
		zap.Any("details", event.Details),
	)
}
