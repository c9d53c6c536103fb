package usecase

import (
	"context"

	"cigbreak/internal/modules/reminder/domain"
	"cigbreak/internal/modules/reminder/dto"
	reminderin "cigbreak/internal/modules/reminder/port/in"
	"cigbreak/internal/modules/reminder/service"
	statsin "cigbreak/internal/modules/stats/port/in"
)

type Interactor struct {
	svc   *service.ReminderService
	stats statsin.Usecase
}

func NewInteractor(svc *service.ReminderService, stats statsin.Usecase) reminderin.Usecase {
	return &Interactor{svc: svc, stats: stats}
}

// Enable treats only zero as "unset"; any other value, negative included, is
// clamped into range.
func (i *Interactor) Enable(ctx context.Context, minutes int) dto.ReminderOutput {
	if minutes == 0 {
		minutes = i.stats.Get(ctx).ReminderMinutes
	}
	stored := i.stats.SetReminderMinutes(ctx, minutes)
	return toOutput(i.svc.Start(ctx, stored.ReminderMinutes))
}

func (i *Interactor) Disable(_ context.Context) dto.ReminderOutput {
	return toOutput(i.svc.Stop())
}

// SetInterval stores the cadence; a running loop restarts with it.
func (i *Interactor) SetInterval(ctx context.Context, minutes int) dto.ReminderOutput {
	stored := i.stats.SetReminderMinutes(ctx, minutes)
	if i.svc.Status().Enabled {
		return toOutput(i.svc.Start(ctx, stored.ReminderMinutes))
	}
	out := toOutput(i.svc.Status())
	out.Minutes = stored.ReminderMinutes
	return out
}

func (i *Interactor) Status(ctx context.Context) dto.ReminderOutput {
	state := i.svc.Status()
	out := toOutput(state)
	if !state.Enabled {
		out.Minutes = i.stats.Get(ctx).ReminderMinutes
	}
	return out
}

func toOutput(s domain.State) dto.ReminderOutput {
	return dto.ReminderOutput{
		Enabled:    s.Enabled,
		Minutes:    s.Minutes,
		Permission: string(s.Permission),
		Delivering: s.Delivering,
		Sent:       s.Sent,
	}
}
