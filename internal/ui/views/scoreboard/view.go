package scoreboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reminderdto "cigbreak/internal/modules/reminder/dto"
	statsdto "cigbreak/internal/modules/stats/dto"
	"cigbreak/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type StatsPort interface {
	Show(ctx context.Context) statsdto.StatsOutput
}

type ReminderPort interface {
	Status(ctx context.Context) reminderdto.ReminderOutput
	Toggle(ctx context.Context) reminderdto.ReminderOutput
	Nudge(ctx context.Context, delta int) reminderdto.ReminderOutput
	SetInterval(ctx context.Context, minutes int) reminderdto.ReminderOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Stats     statsdto.StatsOutput
	Reminders reminderdto.ReminderOutput
}

// ReminderMsg reports a reminder setting change.
type ReminderMsg struct {
	Reminders reminderdto.ReminderOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	stats     StatsPort
	reminders ReminderPort

	current  statsdto.StatsOutput
	reminder reminderdto.ReminderOutput
	width    int
	height   int
}

func New(stats StatsPort, reminders ReminderPort) Model {
	return Model{stats: stats, reminders: reminders}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Reminders() reminderdto.ReminderOutput { return m.reminder }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return LoadedMsg{Stats: m.stats.Show(ctx), Reminders: m.reminders.Status(ctx)}
	}
}

func (m Model) Toggle() tea.Cmd {
	return m.reminderCmd(func(ctx context.Context) reminderdto.ReminderOutput { return m.reminders.Toggle(ctx) })
}

func (m Model) Nudge(delta int) tea.Cmd {
	return m.reminderCmd(func(ctx context.Context) reminderdto.ReminderOutput { return m.reminders.Nudge(ctx, delta) })
}

func (m Model) SetInterval(minutes int) tea.Cmd {
	return m.reminderCmd(func(ctx context.Context) reminderdto.ReminderOutput {
		return m.reminders.SetInterval(ctx, minutes)
	})
}

// SetStats shows counters reported by another view.
func (m *Model) SetStats(s statsdto.StatsOutput) { m.current = s }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.current = msg.Stats
		m.reminder = msg.Reminders
	case ReminderMsg:
		m.reminder = msg.Reminders
		m.current.ReminderMinutes = msg.Reminders.Minutes
	}
	return m, nil
}

func (m Model) View() string {
	kpis := lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Breaks taken", fmt.Sprint(m.current.BreaksTaken)),
		kpi("Felt better", fmt.Sprint(m.current.YesCount)),
		kpi("Needed another", fmt.Sprint(m.current.NotYetCount)),
		kpi("Cadence", fmt.Sprintf("%dm", m.current.ReminderMinutes)),
	)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Scoreboard") + "\n\n")
	sb.WriteString(kpis + "\n\n")
	sb.WriteString(theme.Title.Render("Reminders") + "\n")
	sb.WriteString(m.reminderLine() + "\n\n")
	sb.WriteString(theme.Muted.Render("[r] turn reminders on/off   [+/-] cadence ±15m   :remind:every <minutes>"))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

func (m Model) reminderLine() string {
	r := m.reminder
	if !r.Enabled {
		return theme.Muted.Render(fmt.Sprintf("off (every %dm when on)", m.current.ReminderMinutes))
	}
	line := theme.Good.Render("on") + fmt.Sprintf(" every %dm, %d sent", r.Minutes, r.Sent)
	if !r.Delivering {
		line += theme.Muted.Render("  (notifications unavailable, running silently)")
	}
	return line
}

func kpi(label, value string) string {
	return theme.KPI.Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}

func (m Model) reminderCmd(fn func(context.Context) reminderdto.ReminderOutput) tea.Cmd {
	return func() tea.Msg {
		return ReminderMsg{Reminders: fn(context.Background())}
	}
}
