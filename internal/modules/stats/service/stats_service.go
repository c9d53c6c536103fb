package service

import (
	"context"
	"errors"
	"log/slog"

	"cigbreak/internal/modules/stats/domain"
	statsout "cigbreak/internal/modules/stats/port/out"
	apperrors "cigbreak/internal/platform/errors"
	"cigbreak/internal/platform/logger"
)

// StatsService persists the stats record best-effort: read and write failures
// are logged and never returned.
type StatsService struct {
	kv  statsout.KeyValueStore
	log *slog.Logger
}

func NewStatsService(kv statsout.KeyValueStore, log *slog.Logger) *StatsService {
	return &StatsService{kv: kv, log: logger.OrDiscard(log)}
}

func (s *StatsService) Load(ctx context.Context) domain.Stats {
	raw, err := s.kv.Get(ctx, domain.StorageKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("stats load failed, using defaults", "error", err)
		}
		return domain.Defaults()
	}
	return domain.Decode(raw)
}

func (s *StatsService) Save(ctx context.Context, stats domain.Stats) {
	raw, err := domain.Encode(stats)
	if err != nil {
		s.log.Warn("stats encode failed", "error", err)
		return
	}
	if err := s.kv.Put(ctx, domain.StorageKey, raw); err != nil {
		s.log.Warn("stats save dropped", "error", err)
	}
}
