package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helmwatch/internal/ui/theme"
)

// PaletteSubmitMsg carries a confirmed order.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette is dismissed with esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Brass).
			Background(theme.Deck).
			Foreground(theme.Foam).
			Padding(0, 1)

	hintStyle       = lipgloss.NewStyle().Foreground(theme.Fog)
	activeHintStyle = lipgloss.NewStyle().Foreground(theme.Brass).Bold(true)
)

// Orders lists every order the dashboard understands, with its arguments.
// app.executePalette switches on the first word of each.
var Orders = []string{
	"session:start",
	"session:stop",
	"session:stop!",
	"session:catch",
	"session:sign <session-id> <efficiency>",
	"crew:emergency <member-id>",
	"crew:rescue <member-id>",
	"crew:flare <member-id> <red|white|green>",
	"crew:resolve <member-id>",
	"crew:check <member-id>",
	"connection:check",
	"position:resolve",
	"devmode <on|off>",
}

const (
	maxHints   = 6
	maxRecall  = 20
	paletteMin = 20
)

// Palette is the order prompt. Tab completes the highlighted hint and
// up/down walk back through orders already given.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	selected int
	recall   []string
	cursor   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "give an order…"
	ti.CharLimit = 256
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty prompt and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.cursor = len(p.recall)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

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
			order := strings.TrimSpace(p.input.Value())
			p.remember(order)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: order} }
		case "tab":
			if hints := p.Hints(); len(hints) > 0 {
				p.input.SetValue(completion(hints[min(p.selected, len(hints)-1)]))
				p.input.CursorEnd()
			}
			return p, nil
		case "ctrl+n":
			p.selected = min(p.selected+1, max(len(p.Hints())-1, 0))
			return p, nil
		case "ctrl+p":
			p.selected = max(p.selected-1, 0)
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.recall[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.recall)-1 {
				p.cursor++
				p.input.SetValue(p.recall[p.cursor])
			} else {
				p.cursor = len(p.recall)
				p.input.SetValue("")
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

// Hints returns the orders whose name contains the typed word.
func (p Palette) Hints() []string {
	word := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	var out []string
	for _, order := range Orders {
		name, _, _ := strings.Cut(order, " ")
		if word == "" || strings.Contains(name, word) {
			out = append(out, order)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Orders") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if hints := p.Hints(); len(hints) > 0 {
		sb.WriteString("\n")
		for i, h := range hints {
			if i == p.selected {
				sb.WriteString(activeHintStyle.Render("› "+h) + "\n")
				continue
			}
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("tab: complete  ↑/↓: recall  esc: belay"))

	w := p.width
	if w < paletteMin {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// remember keeps the latest orders for recall, without repeating the
// one just given.
func (p *Palette) remember(order string) {
	if order == "" {
		return
	}
	if n := len(p.recall); n > 0 && p.recall[n-1] == order {
		return
	}
	p.recall = append(p.recall, order)
	if len(p.recall) > maxRecall {
		p.recall = p.recall[len(p.recall)-maxRecall:]
	}
}

// completion is the order name plus a trailing space when it takes
// arguments.
func completion(order string) string {
	name, args, ok := strings.Cut(order, " ")
	if ok && args != "" {
		return name + " "
	}
	return name
}
