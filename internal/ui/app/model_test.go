package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	breakdto "cigbreak/internal/modules/breaksession/dto"
	clipdto "cigbreak/internal/modules/clip/dto"
	reminderdto "cigbreak/internal/modules/reminder/dto"
	statsdto "cigbreak/internal/modules/stats/dto"
	apperrors "cigbreak/internal/platform/errors"
	"cigbreak/internal/ui/components"
	"cigbreak/internal/ui/views/breaktime"
	"cigbreak/internal/ui/views/scoreboard"
)

type fakeClips struct{}

func (fakeClips) List(context.Context) ([]clipdto.ClipOutput, error) {
	return []clipdto.ClipOutput{{Title: "Clip", SourceURL: "https://youtu.be/abc"}}, nil
}

func (fakeClips) Resolve(_ context.Context, u string) clipdto.ResolveOutput {
	return clipdto.ResolveOutput{SourceURL: u, VideoID: "abc", EmbedURL: "https://www.youtube.com/embed/abc", Playable: true}
}

type fakeStats struct{}

func (fakeStats) Show(context.Context) statsdto.StatsOutput {
	return statsdto.StatsOutput{ReminderMinutes: 90}
}

type fakeBreak struct {
	current breakdto.BreakOutput
}

func (f *fakeBreak) Start(context.Context) (breakdto.BreakOutput, error) {
	if f.current.Active {
		return f.current, apperrors.ErrBreakActive
	}
	f.current = breakdto.BreakOutput{
		BreakID: "b1", Active: true, State: "waiting_segment", Generation: 1,
		ClipTitle: "Clip", SourceURL: "https://youtu.be/abc",
		SegmentDue: time.Now().Add(22 * time.Second),
		Stats:      statsdto.StatsOutput{BreaksTaken: 1, ReminderMinutes: 90},
	}
	return f.current, nil
}

func (f *fakeBreak) ConfirmBetter(context.Context) (breakdto.BreakOutput, error) {
	if !f.current.PromptVisible {
		return f.current, apperrors.ErrPromptNotShown
	}
	f.current = breakdto.BreakOutput{Generation: f.current.Generation}
	return f.current, nil
}

func (f *fakeBreak) RequestAnother(ctx context.Context) (breakdto.BreakOutput, error) {
	return f.ConfirmBetter(ctx)
}

func (f *fakeBreak) Stop(context.Context) (breakdto.BreakOutput, error) {
	f.current = breakdto.BreakOutput{Generation: f.current.Generation}
	return f.current, nil
}

func (f *fakeBreak) Current(context.Context) breakdto.BreakOutput { return f.current }

func (f *fakeBreak) Replay(context.Context) (breakdto.BreakOutput, error) { return f.current, nil }

type fakeReminders struct {
	out reminderdto.ReminderOutput
}

func (f *fakeReminders) Status(context.Context) reminderdto.ReminderOutput { return f.out }

func (f *fakeReminders) Toggle(context.Context) reminderdto.ReminderOutput {
	f.out.Enabled = !f.out.Enabled
	return f.out
}

func (f *fakeReminders) Nudge(ctx context.Context, delta int) reminderdto.ReminderOutput {
	return f.SetInterval(ctx, f.out.Minutes+delta)
}

func (f *fakeReminders) SetInterval(_ context.Context, minutes int) reminderdto.ReminderOutput {
	f.out.Minutes = min(max(minutes, 15), 240)
	return f.out
}

func newTestModel(t *testing.T) (Model, *fakeBreak, *fakeReminders) {
	t.Helper()
	brk := &fakeBreak{}
	rem := &fakeReminders{out: reminderdto.ReminderOutput{Minutes: 90}}
	m := NewModel(22*time.Second, fakeClips{}, fakeStats{}, brk, rem, nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), brk, rem
}

func press(t *testing.T, m Model, keys string) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	if cmd == nil {
		t.Fatalf("key %q produced no command", keys)
	}
	return next.(Model), cmd()
}

func TestStartKeyRunsBreak(t *testing.T) {
	t.Parallel()
	m, brk, _ := newTestModel(t)

	m, msg := press(t, m, "b")
	result, ok := msg.(breaktime.ResultMsg)
	if !ok || result.Err != nil {
		t.Fatalf("expected start result, got %#v", msg)
	}
	next, _ := m.Update(result)
	m = next.(Model)
	if !m.breakView.Break().Active || !brk.current.Active {
		t.Fatalf("break view must show the active break")
	}
	if !strings.Contains(m.status, "now playing: Clip") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "Let it land") {
		t.Fatalf("waiting view must show the hint")
	}
}

func TestConfirmBeforePromptReportsError(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	m, msg := press(t, m, "b")
	next, _ := m.Update(msg)
	m = next.(Model)

	m, msg = press(t, m, "y")
	next, _ = m.Update(msg)
	m = next.(Model)
	if !strings.Contains(m.status, apperrors.ErrPromptNotShown.Error()) {
		t.Fatalf("expected rejection in status, got %q", m.status)
	}
	if !m.breakView.Break().Active {
		t.Fatalf("rejected confirm must leave the break running")
	}
}

func TestPromptEventUpdatesView(t *testing.T) {
	t.Parallel()
	m, brk, _ := newTestModel(t)
	m, msg := press(t, m, "b")
	next, _ := m.Update(msg)
	m = next.(Model)

	brk.current.PromptVisible = true
	brk.current.State = "prompt_shown"
	next, _ = m.Update(breakEventMsg{event: breakdto.BreakEvent{Kind: "prompt_shown", Break: brk.current}, ok: true})
	m = next.(Model)
	if m.status != "feel better?" || !strings.Contains(m.View(), "Feel better?") {
		t.Fatalf("prompt not rendered, status %q", m.status)
	}
}

func TestPaletteSetsReminderCadence(t *testing.T) {
	t.Parallel()
	m, _, rem := newTestModel(t)

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "remind:every 5"})
	m = next.(Model)
	msg, ok := cmd().(scoreboard.ReminderMsg)
	if !ok || msg.Reminders.Minutes != 15 || rem.out.Minutes != 15 {
		t.Fatalf("expected clamped cadence 15, got %#v", msg)
	}
	next, _ = m.Update(msg)
	m = next.(Model)
	if m.status != "reminders off, cadence 15m" {
		t.Fatalf("unexpected status %q", m.status)
	}

	next, cmd = m.Update(components.PaletteSubmitMsg{Input: "remind:every soon"})
	if cmd != nil || !strings.Contains(next.(Model).status, "invalid minutes") {
		t.Fatalf("expected invalid minutes status")
	}
	next, _ = m.Update(components.PaletteSubmitMsg{Input: "warp:drive"})
	if next.(Model).status != "unknown command: warp:drive" {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}

func TestCopyLinkUsesPlayingClip(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	_, msg := press(t, m, "c")
	if c, ok := msg.(copiedMsg); !ok || c.err == nil {
		t.Fatalf("expected an error without a clip, got %#v", msg)
	}

	m, msg = press(t, m, "b")
	next, _ := m.Update(msg)
	m = next.(Model)
	_, msg = press(t, m, "c")
	if c := msg.(copiedMsg); c.err != nil || copied != "https://youtu.be/abc" {
		t.Fatalf("expected source link copied, got %q (%v)", copied, c.err)
	}
}

func TestAlertRingsBellAndShowsReminder(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	rang := 0
	m.bell = func() { rang++ }

	next, _ := m.Update(alertMsg{alert: reminderdto.Alert{Title: "Cig Break", Body: "Time to step away"}, ok: true})
	m = next.(Model)
	if rang != 1 || !strings.Contains(m.status, "Time to step away") {
		t.Fatalf("alert not surfaced: rang=%d status=%q", rang, m.status)
	}

	next, cmd := m.Update(alertMsg{ok: false})
	if cmd != nil || next.(Model).status != m.status {
		t.Fatalf("closed alert channel must be ignored")
	}
}

func TestToggleReminderKey(t *testing.T) {
	t.Parallel()
	m, _, rem := newTestModel(t)
	m, msg := press(t, m, "r")
	next, _ := m.Update(msg)
	m = next.(Model)
	if !rem.out.Enabled || m.status != "reminders on, every 90m" {
		t.Fatalf("expected reminders on, status %q", m.status)
	}
}
