package catalog

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	clipdto "cigbreak/internal/modules/clip/dto"
	"cigbreak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ClipPort interface {
	List(ctx context.Context) ([]clipdto.ClipOutput, error)
	Resolve(ctx context.Context, sourceURL string) clipdto.ResolveOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type ClipsLoadedMsg struct {
	Clips []clipdto.ClipOutput
	Err   error
}

type ResolvedMsg struct {
	Resolved clipdto.ResolveOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type clipItem struct {
	clip clipdto.ClipOutput
}

func (i clipItem) Title() string       { return i.clip.Title }
func (i clipItem) Description() string { return i.clip.SourceURL }
func (i clipItem) FilterValue() string { return i.clip.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     ClipPort
	list     list.Model
	resolved clipdto.ResolveOutput
	preview  viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port ClipPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Clips"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadClipsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ClipsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Clips: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Clips))
		for i, c := range msg.Clips {
			items[i] = clipItem{clip: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Clips) > 0 {
			cmds = append(cmds, m.resolveCmd(msg.Clips[0].SourceURL))
		}

	case ResolvedMsg:
		m.resolved = msg.Resolved
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(clipItem); ok {
				cmds = append(cmds, m.resolveCmd(item.clip.SourceURL))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading clips…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedSourceURL returns the highlighted clip's source link, if any.
func (m Model) SelectedSourceURL() (string, bool) {
	if item, ok := m.list.SelectedItem().(clipItem); ok {
		return item.clip.SourceURL, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	r := m.resolved
	if r.SourceURL == "" {
		return theme.Muted.Render("Select a clip to see its embed link")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Clip") + "\n\n")
	sb.WriteString(theme.Muted.Render("source: ") + r.SourceURL + "\n")
	if r.Playable {
		sb.WriteString(theme.Muted.Render("id:     ") + r.VideoID + "\n")
		sb.WriteString(theme.Muted.Render("embed:  ") + r.EmbedURL + "\n")
	} else {
		sb.WriteString(theme.Bad.Render("no video id, this clip cannot play") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("c: copy source link"))
	return sb.String()
}

func (m Model) loadClipsCmd() tea.Cmd {
	return func() tea.Msg {
		clips, err := m.port.List(context.Background())
		return ClipsLoadedMsg{Clips: clips, Err: err}
	}
}

func (m Model) resolveCmd(sourceURL string) tea.Cmd {
	return func() tea.Msg {
		return ResolvedMsg{Resolved: m.port.Resolve(context.Background(), sourceURL)}
	}
}
