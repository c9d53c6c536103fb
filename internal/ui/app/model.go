package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	breakdto "cigbreak/internal/modules/breaksession/dto"
	clipdto "cigbreak/internal/modules/clip/dto"
	reminderdto "cigbreak/internal/modules/reminder/dto"
	statsdto "cigbreak/internal/modules/stats/dto"
	"cigbreak/internal/ui/components"
	"cigbreak/internal/ui/theme"
	"cigbreak/internal/ui/views/breaktime"
	catalogview "cigbreak/internal/ui/views/catalog"
	"cigbreak/internal/ui/views/scoreboard"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type clipPort interface {
	List(ctx context.Context) ([]clipdto.ClipOutput, error)
	Resolve(ctx context.Context, sourceURL string) clipdto.ResolveOutput
}

type statsPort interface {
	Show(ctx context.Context) statsdto.StatsOutput
}

type breakPort interface {
	breaktime.BreakPort
}

type reminderPort interface {
	scoreboard.ReminderPort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBreak tabID = iota
	tabScoreboard
	tabCatalog
	tabCount
)

var tabLabels = [tabCount]string{
	"Break", "Scoreboard", "Clips",
}

// ─── async messages ───────────────────────────────────────────────────────────

type breakEventMsg struct {
	event breakdto.BreakEvent
	ok    bool
}

type alertMsg struct {
	alert reminderdto.Alert
	ok    bool
}

type copiedMsg struct {
	url string
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Yes     key.Binding
	Another key.Binding
	Stop    key.Binding
	Open    key.Binding
	Copy    key.Binding
	Remind  key.Binding
	Faster  key.Binding
	Slower  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "take a break")),
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "feel better")),
		Another: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "another one")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop break")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open clip")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		Remind:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reminders on/off")),
		Faster:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "cadence -15m")),
		Slower:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "cadence +15m")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Yes, k.Another, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Yes, k.Another, k.Stop},
		{k.Open, k.Copy},
		{k.Remind, k.Faster, k.Slower},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

const cadenceStep = 15

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the listeners for break events and reminder alerts.
type Model struct {
	breakView   breaktime.Model
	scoreView   scoreboard.Model
	catalogView catalogview.Model

	events <-chan breakdto.BreakEvent
	alerts <-chan reminderdto.Alert
	copy   func(string) error
	bell   func()

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the root model. events and alerts may be nil.
func NewModel(
	segment time.Duration,
	clips clipPort,
	stats statsPort,
	brk breakPort,
	reminders reminderPort,
	events <-chan breakdto.BreakEvent,
	alerts <-chan reminderdto.Alert,
) Model {
	return Model{
		breakView:   breaktime.New(brk, segment),
		scoreView:   scoreboard.New(stats, reminders),
		catalogView: catalogview.New(clips),
		events:      events,
		alerts:      alerts,
		copy:        clipboard.WriteAll,
		bell:        func() { _, _ = os.Stderr.WriteString("\a") },
		activeTab:   tabBreak,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.breakView.Init(),
		m.scoreView.Init(),
		m.catalogView.Init(),
		waitForBreakEvent(m.events),
		waitForAlert(m.alerts),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case breaktime.ResultMsg:
		if msg.Err != nil {
			m.status = msg.Action + ": " + msg.Err.Error()
		} else {
			m.status = describeResult(msg)
		}
		m.scoreView.SetStats(msg.Break.Stats)
		var cmd tea.Cmd
		m.breakView, cmd = m.breakView.Update(msg)
		return m, cmd

	case breakEventMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.event.Kind == "prompt_shown" {
			m.status = "feel better?"
		}
		var cmd tea.Cmd
		m.breakView, cmd = m.breakView.Update(breaktime.EventMsg{Event: msg.event})
		return m, tea.Batch(cmd, waitForBreakEvent(m.events))

	case alertMsg:
		if !msg.ok {
			return m, nil
		}
		m.status = theme.Hot.Render(msg.alert.Title) + "  " + msg.alert.Body
		if m.bell != nil {
			m.bell()
		}
		return m, tea.Batch(m.scoreView.Refresh(), waitForAlert(m.alerts))

	case scoreboard.ReminderMsg:
		r := msg.Reminders
		if r.Enabled {
			m.status = fmt.Sprintf("reminders on, every %dm", r.Minutes)
		} else {
			m.status = fmt.Sprintf("reminders off, cadence %dm", r.Minutes)
		}

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.url
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the clip list while its filter is open.
		if m.activeTab == tabCatalog && m.catalogView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "b":
			m.activeTab = tabBreak
			return m, m.breakView.Start()
		case "y":
			return m, m.breakView.ConfirmBetter()
		case "n":
			return m, m.breakView.RequestAnother()
		case "x":
			return m, m.breakView.Stop()
		case "o":
			return m, m.breakView.Replay()
		case "c":
			return m, m.copyLinkCmd()
		case "r":
			return m, m.scoreView.Toggle()
		case "+", "=":
			return m, m.scoreView.Nudge(cadenceStep)
		case "-":
			return m, m.scoreView.Nudge(-cadenceStep)
		}
	}

	// Views that keep state from async messages see every message; key input
	// only goes to the active tab.
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabCatalog {
		m.catalogView, cmd = m.catalogView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.breakView, cmd = m.breakView.Update(msg)
		cmds = append(cmds, cmd)
		m.scoreView, cmd = m.scoreView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBreak:
		return m.breakView.View()
	case tabScoreboard:
		return m.scoreView.View()
	case tabCatalog:
		return m.catalogView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "cig break  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if b := m.breakView.Break(); b.Active {
		left = theme.Hot.Render("● "+b.ClipTitle) + "  " + left
	}
	if m.scoreView.Reminders().Enabled {
		left = theme.Good.Render("⏰") + " " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "break:start":
		m.activeTab = tabBreak
		return m, m.breakView.Start()
	case "break:yes":
		return m, m.breakView.ConfirmBetter()
	case "break:another":
		return m, m.breakView.RequestAnother()
	case "break:stop":
		return m, m.breakView.Stop()
	case "break:open":
		return m, m.breakView.Replay()
	case "clip:copy":
		return m, m.copyLinkCmd()

	case "remind:every":
		if len(parts) < 2 {
			m.status = "usage: remind:every <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes: " + parts[1]
			return m, nil
		}
		return m, m.scoreView.SetInterval(minutes)

	case "remind:toggle":
		return m, m.scoreView.Toggle()

	case "stats:refresh":
		m.activeTab = tabScoreboard
		return m, m.scoreView.Refresh()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// linkToCopy picks the highlighted clip on the Clips tab and the playing clip
// elsewhere.
func (m Model) linkToCopy() string {
	if m.activeTab == tabCatalog {
		if u, ok := m.catalogView.SelectedSourceURL(); ok {
			return u
		}
	}
	return m.breakView.Break().SourceURL
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.breakView, _ = m.breakView.Update(sz)
	m.scoreView, _ = m.scoreView.Update(sz)
	m.catalogView, _ = m.catalogView.Update(sz)
}

func describeResult(msg breaktime.ResultMsg) string {
	switch msg.Action {
	case "start", "another one":
		return "now playing: " + msg.Break.ClipTitle
	case "feel better":
		return "nice. back to the grind"
	case "stop":
		return "break stopped"
	case "open":
		return "opened " + msg.Break.EmbedURL
	}
	return msg.Action
}

// ─── async commands ───────────────────────────────────────────────────────────

func waitForBreakEvent(ch <-chan breakdto.BreakEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return breakEventMsg{event: ev, ok: ok}
	}
}

func waitForAlert(ch <-chan reminderdto.Alert) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		return alertMsg{alert: a, ok: ok}
	}
}

func (m Model) copyLinkCmd() tea.Cmd {
	url := m.linkToCopy()
	if url == "" {
		return func() tea.Msg { return copiedMsg{err: fmt.Errorf("no clip to copy")} }
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{url: url, err: copyFn(url)}
	}
}
