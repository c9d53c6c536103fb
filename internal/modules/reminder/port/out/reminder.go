package out

import (
	"context"

	"cigbreak/internal/modules/reminder/domain"
)

// Notifier is the local notification capability.
type Notifier interface {
	Available() bool
	Permission(ctx context.Context) domain.Permission
	RequestPermission(ctx context.Context) (domain.Permission, error)
	Notify(ctx context.Context, n domain.Notification) error
}
