package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cigbreak/internal/modules/breaksession/domain"
	clipdto "cigbreak/internal/modules/clip/dto"
	clipin "cigbreak/internal/modules/clip/port/in"
	"cigbreak/internal/platform/clock"
	"cigbreak/internal/platform/id"
	"cigbreak/internal/platform/logger"
	"cigbreak/internal/platform/schedule"
)

const eventBuffer = 16

// BreakService runs the break state machine. One mutex serialises user
// transitions and segment-timer callbacks.
type BreakService struct {
	clips   clipin.Usecase
	sched   schedule.Scheduler
	clock   clock.Clock
	ids     id.Generator
	segment time.Duration
	log     *slog.Logger

	mu            sync.Mutex
	session       domain.Session
	seen          []string
	seenSet       map[string]struct{}
	cancelSegment schedule.Cancel
	events        chan domain.Event
}

func NewBreakService(clips clipin.Usecase, sched schedule.Scheduler, clk clock.Clock, ids id.Generator, segment time.Duration, log *slog.Logger) *BreakService {
	return &BreakService{
		clips:   clips,
		sched:   sched,
		clock:   clk,
		ids:     ids,
		segment: segment,
		log:     logger.OrDiscard(log),
		seenSet: make(map[string]struct{}),
		events:  make(chan domain.Event, eventBuffer),
	}
}

// Events delivers state changes, including ones caused by the segment timer.
// Sends never block; a full buffer drops the event.
func (s *BreakService) Events() <-chan domain.Event {
	return s.events
}

func (s *BreakService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *BreakService) Start(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.CanStart(); err != nil {
		return s.session, err
	}
	clip, err := s.pick(ctx)
	if err != nil {
		return s.session, err
	}
	next, err := s.session.Start(s.ids.New(), clip, s.segmentDue())
	if err != nil {
		return s.session, err
	}
	s.showClip(next)
	s.log.Info("break started", "break_id", next.BreakID, "clip", clip.SourceURL, "generation", next.Generation)
	return next, nil
}

func (s *BreakService) RequestAnother(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.CanAnswer(); err != nil {
		return s.session, err
	}
	clip, err := s.pick(ctx)
	if err != nil {
		return s.session, err
	}
	next, err := s.session.RequestAnother(clip, s.segmentDue())
	if err != nil {
		return s.session, err
	}
	s.showClip(next)
	s.log.Info("another clip requested", "break_id", next.BreakID, "clip", clip.SourceURL, "generation", next.Generation)
	return next, nil
}

func (s *BreakService) ConfirmBetter(_ context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakID := s.session.BreakID
	next, err := s.session.ConfirmBetter()
	if err != nil {
		return s.session, err
	}
	s.end(next)
	s.log.Info("break finished", "break_id", breakID)
	return next, nil
}

func (s *BreakService) Stop(_ context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakID := s.session.BreakID
	next, err := s.session.Stop()
	if err != nil {
		return s.session, err
	}
	s.end(next)
	s.log.Info("break stopped", "break_id", breakID)
	return next, nil
}

func (s *BreakService) segmentElapsed(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.session.SegmentElapsed(generation)
	if !ok {
		s.log.Debug("stale segment timer ignored", "generation", generation, "current", s.session.Generation)
		return
	}
	s.session = next
	s.cancelSegment = nil
	s.emit(domain.EventPromptShown)
}

func (s *BreakService) pick(ctx context.Context) (domain.Clip, error) {
	out, err := s.clips.PickNext(ctx, clipdto.PickInput{Seen: s.seen})
	if err != nil {
		return domain.Clip{}, err
	}
	return domain.Clip{Title: out.Title, SourceURL: out.SourceURL}, nil
}

func (s *BreakService) segmentDue() time.Time {
	return s.clock.Now().Add(s.segment)
}

// showClip commits a clip change: marks the clip seen and re-arms the segment
// timer under the new generation.
func (s *BreakService) showClip(next domain.Session) {
	s.session = next
	if _, ok := s.seenSet[next.Clip.SourceURL]; !ok {
		s.seenSet[next.Clip.SourceURL] = struct{}{}
		s.seen = append(s.seen, next.Clip.SourceURL)
	}
	s.disarm()
	generation := next.Generation
	s.cancelSegment = s.sched.After(s.segment, func() { s.segmentElapsed(generation) })
	s.emit(domain.EventClipChanged)
}

func (s *BreakService) end(next domain.Session) {
	s.session = next
	s.disarm()
	s.emit(domain.EventEnded)
}

func (s *BreakService) disarm() {
	if s.cancelSegment != nil {
		s.cancelSegment()
		s.cancelSegment = nil
	}
}

func (s *BreakService) emit(kind domain.EventKind) {
	select {
	case s.events <- domain.Event{Kind: kind, Session: s.session}:
	default:
		s.log.Debug("break event dropped", "kind", kind)
	}
}
