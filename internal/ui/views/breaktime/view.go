package breaktime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	breakdto "cigbreak/internal/modules/breaksession/dto"
	"cigbreak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BreakPort interface {
	Start(ctx context.Context) (breakdto.BreakOutput, error)
	ConfirmBetter(ctx context.Context) (breakdto.BreakOutput, error)
	RequestAnother(ctx context.Context) (breakdto.BreakOutput, error)
	Stop(ctx context.Context) (breakdto.BreakOutput, error)
	Current(ctx context.Context) breakdto.BreakOutput
	Replay(ctx context.Context) (breakdto.BreakOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ResultMsg reports the outcome of a user action.
type ResultMsg struct {
	Action string
	Break  breakdto.BreakOutput
	Err    error
}

// EventMsg carries a transition the view did not ask for, such as the prompt
// appearing when the segment ends.
type EventMsg struct {
	Event breakdto.BreakEvent
}

type countdownMsg struct{ generation uint64 }

const countdownEvery = 250 * time.Millisecond

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     BreakPort
	now      func() time.Time
	segment  time.Duration
	current  breakdto.BreakOutput
	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int
}

func New(port BreakPort, segment time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	pr := progress.New(progress.WithGradient(string(theme.Lavender), string(theme.Peach)))
	pr.ShowPercentage = false

	return Model{
		port:     port,
		now:      time.Now,
		segment:  segment,
		spinner:  sp,
		progress: pr,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Break returns the last known break state.
func (m Model) Break() breakdto.BreakOutput { return m.current }

func (m Model) Start() tea.Cmd          { return m.actionCmd("start", m.port.Start) }
func (m Model) ConfirmBetter() tea.Cmd  { return m.actionCmd("feel better", m.port.ConfirmBetter) }
func (m Model) RequestAnother() tea.Cmd { return m.actionCmd("another one", m.port.RequestAnother) }
func (m Model) Stop() tea.Cmd           { return m.actionCmd("stop", m.port.Stop) }
func (m Model) Replay() tea.Cmd         { return m.actionCmd("open", m.port.Replay) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(m.width-8, 60), 10)

	case ResultMsg:
		// A rejected action still reports the state it was checked against.
		return m.apply(msg.Break)

	case EventMsg:
		return m.apply(msg.Event.Break)

	case countdownMsg:
		if msg.generation == m.current.Generation && m.waiting() {
			return m, m.countdownCmd()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) apply(out breakdto.BreakOutput) (Model, tea.Cmd) {
	restart := out.Generation != m.current.Generation
	m.current = out
	if restart && m.waiting() {
		return m, m.countdownCmd()
	}
	return m, nil
}

func (m Model) waiting() bool {
	return m.current.Active && !m.current.PromptVisible
}

// Fraction reports how much of the clip segment has played, in [0,1].
func (m Model) Fraction() float64 {
	if !m.current.Active {
		return 0
	}
	if m.current.PromptVisible || m.segment <= 0 {
		return 1
	}
	left := m.current.SegmentDue.Sub(m.now())
	f := 1 - float64(left)/float64(m.segment)
	return min(max(f, 0), 1)
}

func (m Model) View() string {
	var sb strings.Builder
	switch {
	case !m.current.Active:
		sb.WriteString(theme.Title.Render("Need a reset?") + "\n\n")
		sb.WriteString(theme.Muted.Render("Start a break. Coach pops up. If it didn't hit, run it back until it does.") + "\n\n")
		sb.WriteString(theme.Hot.Render("[b] Take a Cig Break"))
	default:
		sb.WriteString(theme.Title.Render("Coach Curt… on deck") + "\n\n")
		sb.WriteString(theme.Hot.Render(m.current.ClipTitle) + "\n")
		sb.WriteString(theme.Muted.Render(m.current.SourceURL) + "\n")
		if !m.current.Playable {
			sb.WriteString(theme.Muted.Render("no playable video id for this clip") + "\n")
		}
		sb.WriteString("\n" + m.progress.ViewAs(m.Fraction()) + "\n\n")
		if m.current.PromptVisible {
			sb.WriteString(theme.Title.Render("Feel better?") + "\n")
			sb.WriteString(theme.Good.Render("[y] Feel better… yes") + "   " + theme.Bad.Render("[n] Not yet… another one"))
		} else {
			remaining := m.current.SegmentDue.Sub(m.now()).Round(time.Second)
			sb.WriteString(m.spinner.View() + " Let it land… " + theme.Muted.Render(fmt.Sprintf("(%s)", max(remaining, 0))) + "\n")
			sb.WriteString(theme.Muted.Render("[y] Feel better… yes   [n] Not yet… another one"))
		}
		sb.WriteString("\n\n" + theme.Muted.Render("[x] stop   [o] open in browser   [c] copy link"))
	}
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: breakdto.BreakEvent{Kind: "loaded", Break: m.port.Current(context.Background())}}
	}
}

func (m Model) actionCmd(action string, fn func(context.Context) (breakdto.BreakOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		return ResultMsg{Action: action, Break: out, Err: err}
	}
}

func (m Model) countdownCmd() tea.Cmd {
	generation := m.current.Generation
	return tea.Tick(countdownEvery, func(time.Time) tea.Msg {
		return countdownMsg{generation: generation}
	})
}
