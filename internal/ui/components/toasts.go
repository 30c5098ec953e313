package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"helmwatch/internal/platform/notify"
	"helmwatch/internal/ui/theme"
)

const (
	toastLimit    = 4
	toastLifetime = 6 * time.Second
)

var toastStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(theme.Sea).
	Background(theme.Deck).
	Foreground(theme.Foam).
	Padding(0, 1)

type toast struct {
	note      notify.Notification
	expiresAt time.Time
}

// Toasts is the stack of advisories shown in the corner of the dashboard.
// Newer toasts push older ones out once the stack is full.
type Toasts struct {
	items []toast
}

func (t *Toasts) Push(n notify.Notification, now time.Time) {
	t.items = append(t.items, toast{note: n, expiresAt: now.Add(toastLifetime)})
	if len(t.items) > toastLimit {
		t.items = t.items[len(t.items)-toastLimit:]
	}
}

// Expire drops every toast whose lifetime ended by now.
func (t *Toasts) Expire(now time.Time) {
	live := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.expiresAt) {
			live = append(live, item)
		}
	}
	t.items = live
}

func (t Toasts) Len() int { return len(t.items) }

func (t Toasts) View(width int) string {
	if len(t.items) == 0 {
		return ""
	}
	if width < 24 {
		width = 40
	}
	rendered := make([]string, 0, len(t.items))
	for i := len(t.items) - 1; i >= 0; i-- {
		n := t.items[i].note
		body := theme.Title.Render(n.Title)
		if strings.TrimSpace(n.Body) != "" {
			body += "\n" + n.Body
		}
		rendered = append(rendered, toastStyle.Width(width).Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
