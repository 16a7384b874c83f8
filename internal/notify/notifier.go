package notify

import "context"

// Notifier hands a message to an out-of-band delivery channel (SMS, email).
// Callers treat delivery as best-effort: a failed Send is logged, never
// propagated as a request failure.
type Notifier interface {
	Send(ctx context.Context, destination, body string) error
}

// Noop drops every message. Used when no broker is configured and in tests.
type Noop struct{}

func (Noop) Send(ctx context.Context, destination, body string) error { return nil }
