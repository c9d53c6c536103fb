package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cigbreak/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// PaletteCommand is one entry understood by app.Model.executePalette.
type PaletteCommand struct {
	Name  string
	Args  string
	About string
}

var PaletteCommands = []PaletteCommand{
	{Name: "break:start", About: "start a break"},
	{Name: "break:yes", About: "feeling better, end the break"},
	{Name: "break:another", About: "not yet, queue another clip"},
	{Name: "break:stop", About: "stop the current break"},
	{Name: "break:open", About: "replay the current clip"},
	{Name: "clip:copy", About: "copy the clip link"},
	{Name: "remind:every", Args: "<minutes>", About: "set the reminder cadence"},
	{Name: "remind:toggle", About: "turn reminders on or off"},
	{Name: "stats:refresh", About: "reload the scoreboard"},
}

const maxPaletteHints = 5

var (
	paletteFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Padding(0, 1)
	paletteAbout = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// MatchCommands returns the commands whose name contains the first word of
// query, name-prefix matches first.
func MatchCommands(query string) []PaletteCommand {
	word := ""
	if fields := strings.Fields(strings.ToLower(query)); len(fields) > 0 {
		word = fields[0]
	}
	var prefix, inner []PaletteCommand
	for _, c := range PaletteCommands {
		switch {
		case strings.HasPrefix(c.Name, word):
			prefix = append(prefix, c)
		case strings.Contains(c.Name, word):
			inner = append(inner, c)
		}
	}
	return append(prefix, inner...)
}

// Palette is the ":" overlay. Tab completes the best match.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command"
	ti.CharLimit = 64
	return Palette{input: ti, width: 64}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) {
	if w >= 20 {
		p.width = w
	}
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			p.complete()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete replaces the command word with the best match, keeping any
// arguments already typed.
func (p *Palette) complete() {
	matches := MatchCommands(p.input.Value())
	if len(matches) == 0 {
		return
	}
	best := matches[0]
	fields := strings.Fields(p.input.Value())
	line := best.Name + " "
	if len(fields) > 1 {
		line += strings.Join(fields[1:], " ")
	}
	p.input.SetValue(line)
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Commands"), p.input.View()}
	for i, c := range MatchCommands(p.input.Value()) {
		if i == maxPaletteHints {
			break
		}
		usage := c.Name
		if c.Args != "" {
			usage += " " + c.Args
		}
		lines = append(lines, "  "+theme.Hot.Render(usage)+"  "+paletteAbout.Render(c.About))
	}
	return paletteFrame.Width(p.width - 2).Render(strings.Join(lines, "\n"))
}
