package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cigbreak/internal/modules/breaksession/domain"
	"cigbreak/internal/modules/breaksession/dto"
	breakin "cigbreak/internal/modules/breaksession/port/in"
	breakout "cigbreak/internal/modules/breaksession/port/out"
	"cigbreak/internal/modules/breaksession/service"
	clipin "cigbreak/internal/modules/clip/port/in"
	statsdto "cigbreak/internal/modules/stats/dto"
	statsin "cigbreak/internal/modules/stats/port/in"
	apperrors "cigbreak/internal/platform/errors"
	"cigbreak/internal/platform/logger"
)

type Interactor struct {
	svc    *service.BreakService
	clips  clipin.Usecase
	stats  statsin.Usecase
	player breakout.Player
	log    *slog.Logger

	eventsOnce sync.Once
	events     chan dto.BreakEvent
}

// NewInteractor wires the break state machine to the counters. player may be
// nil, in which case clips are never opened.
func NewInteractor(svc *service.BreakService, clips clipin.Usecase, stats statsin.Usecase, player breakout.Player, log *slog.Logger) breakin.Usecase {
	return &Interactor{
		svc:    svc,
		clips:  clips,
		stats:  stats,
		player: player,
		log:    logger.OrDiscard(log),
		events: make(chan dto.BreakEvent, 16),
	}
}

func (i *Interactor) Start(ctx context.Context) (dto.BreakOutput, error) {
	session, err := i.svc.Start(ctx)
	if err != nil {
		return i.output(ctx, session, i.stats.Get(ctx)), err
	}
	out := i.output(ctx, session, i.stats.RecordBreak(ctx))
	i.play(ctx, out)
	return out, nil
}

func (i *Interactor) ConfirmBetter(ctx context.Context) (dto.BreakOutput, error) {
	session, err := i.svc.ConfirmBetter(ctx)
	if err != nil {
		return i.output(ctx, session, i.stats.Get(ctx)), err
	}
	return i.output(ctx, session, i.stats.RecordYes(ctx)), nil
}

func (i *Interactor) RequestAnother(ctx context.Context) (dto.BreakOutput, error) {
	session, err := i.svc.RequestAnother(ctx)
	if err != nil {
		return i.output(ctx, session, i.stats.Get(ctx)), err
	}
	out := i.output(ctx, session, i.stats.RecordNotYet(ctx))
	i.play(ctx, out)
	return out, nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.BreakOutput, error) {
	session, err := i.svc.Stop(ctx)
	return i.output(ctx, session, i.stats.Get(ctx)), err
}

func (i *Interactor) Current(ctx context.Context) dto.BreakOutput {
	return i.output(ctx, i.svc.Snapshot(), i.stats.Get(ctx))
}

func (i *Interactor) Replay(ctx context.Context) (dto.BreakOutput, error) {
	out := i.Current(ctx)
	switch {
	case !out.Active:
		return out, apperrors.ErrNoActiveBreak
	case i.player == nil:
		return out, fmt.Errorf("browser playback is off: %w", apperrors.ErrUnavailable)
	case !out.Playable:
		return out, fmt.Errorf("clip %s has no video id: %w", out.SourceURL, apperrors.ErrUnavailable)
	}
	if err := i.player.Play(ctx, out.EmbedURL); err != nil {
		return out, fmt.Errorf("replay clip: %w", err)
	}
	return out, nil
}

func (i *Interactor) Events(ctx context.Context) <-chan dto.BreakEvent {
	i.eventsOnce.Do(func() {
		go i.forward(ctx)
	})
	return i.events
}

func (i *Interactor) forward(ctx context.Context) {
	defer close(i.events)
	source := i.svc.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-source:
			out := dto.BreakEvent{Kind: string(ev.Kind), Break: i.output(ctx, ev.Session, i.stats.Get(ctx))}
			select {
			case i.events <- out:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (i *Interactor) play(ctx context.Context, out dto.BreakOutput) {
	if i.player == nil {
		return
	}
	if !out.Playable {
		i.log.Warn("clip has no video id, skipping playback", "clip", out.SourceURL)
		return
	}
	if err := i.player.Play(ctx, out.EmbedURL); err != nil {
		i.log.Warn("open clip", "clip", out.SourceURL, "error", err)
	}
}

func (i *Interactor) output(ctx context.Context, s domain.Session, stats statsdto.StatsOutput) dto.BreakOutput {
	out := dto.BreakOutput{
		BreakID:       s.BreakID,
		State:         s.State.String(),
		Active:        s.Active(),
		PromptVisible: s.PromptVisible(),
		Generation:    s.Generation,
		ClipTitle:     s.Clip.Title,
		SourceURL:     s.Clip.SourceURL,
		SegmentDue:    s.SegmentDue,
		Stats:         stats,
	}
	if s.Clip.SourceURL != "" {
		resolved := i.clips.Resolve(ctx, s.Clip.SourceURL)
		out.VideoID = resolved.VideoID
		out.EmbedURL = resolved.EmbedURL
		out.Playable = resolved.Playable
	}
	return out
}
