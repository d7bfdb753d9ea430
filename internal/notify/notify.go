package notify

import "context"

// Notifier delivers a triggered-alert message to one channel.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans a message out to every configured channel; the first error
// wins but delivery is attempted on all of them.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
