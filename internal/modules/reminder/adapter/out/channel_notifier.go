package out

import (
	"context"
	"fmt"

	"cigbreak/internal/modules/reminder/domain"
	"cigbreak/internal/modules/reminder/dto"
)

// ChannelNotifier hands reminders to an in-process consumer such as the TUI.
// A full buffer rejects the reminder rather than blocking the ticker.
type ChannelNotifier struct {
	ch chan dto.Alert
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan dto.Alert, max(buffer, 1))}
}

func (n *ChannelNotifier) C() <-chan dto.Alert {
	return n.ch
}

func (*ChannelNotifier) Available() bool { return true }

func (*ChannelNotifier) Permission(context.Context) domain.Permission {
	return domain.PermissionGranted
}

func (*ChannelNotifier) RequestPermission(context.Context) (domain.Permission, error) {
	return domain.PermissionGranted, nil
}

func (n *ChannelNotifier) Notify(_ context.Context, note domain.Notification) error {
	select {
	case n.ch <- dto.Alert{Title: note.Title, Body: note.Body}:
		return nil
	default:
		return fmt.Errorf("reminder channel full")
	}
}

// NoopNotifier reports the capability as missing; reminders run silently.
type NoopNotifier struct{}

func (NoopNotifier) Available() bool { return false }

func (NoopNotifier) Permission(context.Context) domain.Permission {
	return domain.PermissionDenied
}

func (NoopNotifier) RequestPermission(context.Context) (domain.Permission, error) {
	return domain.PermissionDenied, nil
}

func (NoopNotifier) Notify(context.Context, domain.Notification) error { return nil }
