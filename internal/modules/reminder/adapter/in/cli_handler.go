package in

import (
	"context"

	"cigbreak/internal/modules/reminder/dto"
	reminderin "cigbreak/internal/modules/reminder/port/in"
)

type Handler struct {
	usecase reminderin.Usecase
}

func NewHandler(usecase reminderin.Usecase) Handler {
	return Handler{usecase: usecase}
}

func (h Handler) Enable(ctx context.Context, minutes int) dto.ReminderOutput {
	return h.usecase.Enable(ctx, minutes)
}

func (h Handler) Disable(ctx context.Context) dto.ReminderOutput {
	return h.usecase.Disable(ctx)
}

// Toggle flips reminders using the stored cadence.
func (h Handler) Toggle(ctx context.Context) dto.ReminderOutput {
	if h.usecase.Status(ctx).Enabled {
		return h.usecase.Disable(ctx)
	}
	return h.usecase.Enable(ctx, 0)
}

func (h Handler) SetInterval(ctx context.Context, minutes int) dto.ReminderOutput {
	return h.usecase.SetInterval(ctx, minutes)
}

// Nudge shifts the cadence by delta minutes.
func (h Handler) Nudge(ctx context.Context, delta int) dto.ReminderOutput {
	return h.usecase.SetInterval(ctx, h.usecase.Status(ctx).Minutes+delta)
}

func (h Handler) Status(ctx context.Context) dto.ReminderOutput {
	return h.usecase.Status(ctx)
}
