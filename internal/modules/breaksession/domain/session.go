package domain

import (
	"time"

	apperrors "cigbreak/internal/platform/errors"
)

type State int

const (
	StateIdle State = iota
	StateWaitingSegment
	StatePromptShown
)

func (s State) String() string {
	switch s {
	case StateWaitingSegment:
		return "waiting_segment"
	case StatePromptShown:
		return "prompt_shown"
	default:
		return "idle"
	}
}

type Clip struct {
	Title     string
	SourceURL string
}

// Session is the break state machine. Transitions are pure: each returns the
// next value and leaves the receiver untouched, and a rejected transition
// returns the receiver unchanged with an error.
//
// Generation grows on every clip change. A segment task armed for an older
// generation is stale and SegmentElapsed ignores it.
type Session struct {
	BreakID    string
	State      State
	Clip       Clip
	Generation uint64
	SegmentDue time.Time
}

func (s Session) Active() bool {
	return s.State != StateIdle
}

func (s Session) PromptVisible() bool {
	return s.State == StatePromptShown
}

func (s Session) CanStart() error {
	if s.Active() {
		return apperrors.ErrBreakActive
	}
	return nil
}

func (s Session) CanAnswer() error {
	if !s.Active() {
		return apperrors.ErrNoActiveBreak
	}
	if s.State != StatePromptShown {
		return apperrors.ErrPromptNotShown
	}
	return nil
}

func (s Session) Start(breakID string, clip Clip, segmentDue time.Time) (Session, error) {
	if err := s.CanStart(); err != nil {
		return s, err
	}
	return Session{
		BreakID:    breakID,
		State:      StateWaitingSegment,
		Clip:       clip,
		Generation: s.Generation + 1,
		SegmentDue: segmentDue,
	}, nil
}

// SegmentElapsed reveals the prompt when the firing task belongs to the current
// clip. It reports false for a stale or out-of-state firing.
func (s Session) SegmentElapsed(generation uint64) (Session, bool) {
	if s.State != StateWaitingSegment || generation != s.Generation {
		return s, false
	}
	s.State = StatePromptShown
	return s, true
}

func (s Session) ConfirmBetter() (Session, error) {
	if err := s.CanAnswer(); err != nil {
		return s, err
	}
	return s.idle(), nil
}

func (s Session) RequestAnother(clip Clip, segmentDue time.Time) (Session, error) {
	if err := s.CanAnswer(); err != nil {
		return s, err
	}
	s.State = StateWaitingSegment
	s.Clip = clip
	s.Generation++
	s.SegmentDue = segmentDue
	return s, nil
}

func (s Session) Stop() (Session, error) {
	if !s.Active() {
		return s, apperrors.ErrNoActiveBreak
	}
	return s.idle(), nil
}

func (s Session) idle() Session {
	return Session{Generation: s.Generation}
}

type EventKind string

const (
	EventClipChanged EventKind = "clip_changed"
	EventPromptShown EventKind = "prompt_shown"
	EventEnded       EventKind = "ended"
)

type Event struct {
	Kind    EventKind
	Session Session
}
