package usecase

import (
	"context"
	"sync"

	"cigbreak/internal/modules/stats/domain"
	"cigbreak/internal/modules/stats/dto"
	statsin "cigbreak/internal/modules/stats/port/in"
	"cigbreak/internal/modules/stats/service"
)

// Interactor holds the in-memory record, loaded on first use, and saves it
// after every change.
type Interactor struct {
	svc *service.StatsService

	mu     sync.Mutex
	loaded bool
	stats  domain.Stats
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) dto.StatsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ensureLoaded(ctx)
	return toOutput(i.stats)
}

func (i *Interactor) RecordBreak(ctx context.Context) dto.StatsOutput {
	return i.mutate(ctx, func(s *domain.Stats) { s.BreaksTaken++ })
}

func (i *Interactor) RecordYes(ctx context.Context) dto.StatsOutput {
	return i.mutate(ctx, func(s *domain.Stats) { s.YesCount++ })
}

func (i *Interactor) RecordNotYet(ctx context.Context) dto.StatsOutput {
	return i.mutate(ctx, func(s *domain.Stats) { s.NotYetCount++ })
}

func (i *Interactor) SetReminderMinutes(ctx context.Context, minutes int) dto.StatsOutput {
	return i.mutate(ctx, func(s *domain.Stats) { s.ReminderMinutes = domain.ClampReminderMinutes(minutes) })
}

func (i *Interactor) Reset(ctx context.Context) dto.StatsOutput {
	return i.mutate(ctx, func(s *domain.Stats) { *s = domain.Defaults() })
}

func (i *Interactor) mutate(ctx context.Context, fn func(*domain.Stats)) dto.StatsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ensureLoaded(ctx)
	fn(&i.stats)
	i.stats = i.stats.Normalize()
	i.svc.Save(ctx, i.stats)
	return toOutput(i.stats)
}

func (i *Interactor) ensureLoaded(ctx context.Context) {
	if i.loaded {
		return
	}
	i.stats = i.svc.Load(ctx)
	i.loaded = true
}

func toOutput(s domain.Stats) dto.StatsOutput {
	return dto.StatsOutput{
		BreaksTaken:     s.BreaksTaken,
		YesCount:        s.YesCount,
		NotYetCount:     s.NotYetCount,
		ReminderMinutes: s.ReminderMinutes,
	}
}
