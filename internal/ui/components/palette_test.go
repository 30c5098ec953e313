package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"helmwatch/internal/ui/components"
)

func typed(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func key(p components.Palette, t tea.KeyType) (components.Palette, tea.Cmd) {
	return p.Update(tea.KeyMsg{Type: t})
}

func TestPaletteHintsFilterOnOrderName(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typed(p, "flare")
	hints := p.Hints()
	if len(hints) != 1 || !strings.HasPrefix(hints[0], "crew:flare") {
		t.Fatalf("unexpected hints %v", hints)
	}
	if all := components.NewPalette(); len(all.Hints()) != 6 {
		t.Fatalf("empty prompt should show the first six orders, got %d", len(all.Hints()))
	}
}

func TestPaletteTabCompletesWithArgumentSpace(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typed(p, "resc")
	p, _ = key(p, tea.KeyTab)
	p = typed(p, "mate")
	_, cmd := key(p, tea.KeyEnter)
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "crew:rescue mate" {
		t.Fatalf("unexpected submit %#v", msg)
	}
}

func TestPaletteRecallsEarlierOrders(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	for _, order := range []string{"session:start", "session:catch", "session:catch"} {
		p.Open()
		p = typed(p, order)
		p, _ = key(p, tea.KeyEnter)
	}
	if p.Visible() {
		t.Fatalf("enter should close the palette")
	}

	p.Open()
	p, _ = key(p, tea.KeyUp)
	p, _ = key(p, tea.KeyUp)
	p, _ = key(p, tea.KeyUp)
	_, cmd := key(p, tea.KeyEnter)
	if msg := cmd().(components.PaletteSubmitMsg); msg.Input != "session:start" {
		t.Fatalf("repeated orders should be recalled once, got %q", msg.Input)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typed(p, "session")
	p, cmd := key(p, tea.KeyEsc)
	if p.Visible() {
		t.Fatalf("esc should close the palette")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
	if p.View() != "" {
		t.Fatalf("closed palette should render nothing")
	}
}
