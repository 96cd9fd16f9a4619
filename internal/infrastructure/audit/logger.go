package audit

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/you/foodauth/domain"
)

type requestIDKey struct{}

// WithRequestID returns a context carrying the request id for audit lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// ZerologAuditLogger implements domain.AuditLogger as structured log lines.
type ZerologAuditLogger struct {
	log zerolog.Logger
}

func NewZerologAuditLogger(log zerolog.Logger) *ZerologAuditLogger {
	return &ZerologAuditLogger{log: log.With().Str("channel", "audit").Logger()}
}

// LogEvent implements domain.AuditLogger. Phone numbers are masked.
func (l *ZerologAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	if event == nil {
		return
	}
	ev := l.log.Info()
	if !event.Success {
		ev = l.log.Warn()
	}
	ev = ev.Str("event", string(event.EventType)).
		Bool("success", event.Success).
		Time("at", event.Timestamp)

	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		ev = ev.Str("request_id", id)
	}
	if event.PrincipalID != "" {
		ev = ev.Str("principal_id", event.PrincipalID).Str("principal_type", string(event.PrincipalType))
	}
	if event.Email != "" {
		ev = ev.Str("email", event.Email)
	}
	if event.Phone != "" {
		ev = ev.Str("phone", MaskPhone(event.Phone))
	}
	if event.ErrorMsg != "" {
		ev = ev.Str("error", event.ErrorMsg)
	}
	if len(event.Metadata) > 0 {
		ev = ev.Fields(event.Metadata)
	}
	ev.Msg("audit")
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	masked := make([]byte, len(phone))
	for i := range phone {
		if i < len(phone)-4 {
			masked[i] = '*'
		} else {
			masked[i] = phone[i]
		}
	}
	return string(masked)
}

var _ domain.AuditLogger = (*ZerologAuditLogger)(nil)
