package deck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	connectivitydto "helmwatch/internal/modules/connectivity/dto"
	positiondto "helmwatch/internal/modules/position/dto"
	presencedto "helmwatch/internal/modules/presence/dto"
	sessiondto "helmwatch/internal/modules/session/dto"
	"helmwatch/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Session(ctx context.Context) (sessiondto.StatusOutput, error)
	Connection(ctx context.Context) (connectivitydto.ConnectionOutput, error)
	Presence(ctx context.Context) (presencedto.PresenceOutput, error)
	Position(ctx context.Context) (positiondto.FixOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries one full reading of the deck. A part that failed to
// load is left zero and named in Err.
type LoadedMsg struct {
	Session    sessiondto.StatusOutput
	Connection connectivitydto.ConnectionOutput
	Presence   presencedto.PresenceOutput
	Position   positiondto.FixOutput
	Err        error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	shift   progress.Model
	reading LoadedMsg
	loaded  bool
	width   int
	height  int
	now     func() time.Time
}

func New(port Port) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sea), string(theme.Brass)), progress.WithoutPercentage())
	return Model{port: port, shift: bar, now: time.Now}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg LoadedMsg
		var errs []string
		var err error
		if msg.Session, err = m.port.Session(ctx); err != nil {
			errs = append(errs, "session: "+err.Error())
		}
		if msg.Connection, err = m.port.Connection(ctx); err != nil {
			errs = append(errs, "connection: "+err.Error())
		}
		if msg.Presence, err = m.port.Presence(ctx); err != nil {
			errs = append(errs, "presence: "+err.Error())
		}
		if msg.Position, err = m.port.Position(ctx); err != nil {
			errs = append(errs, "position: "+err.Error())
		}
		if len(errs) > 0 {
			msg.Err = fmt.Errorf("%s", strings.Join(errs, "; "))
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shift.Width = max(m.width/2-8, 10)
	case LoadedMsg:
		m.reading = msg
		m.loaded = true
	}
	return m, nil
}

// Overtime reports whether the last reading showed the shift exceeded.
func (m Model) Overtime() bool {
	return m.reading.Session.Overtime
}

// SessionOpen reports whether the last reading had a voyage under way.
func (m Model) SessionOpen() bool {
	return m.reading.Session.Open
}

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Taking the first reading…"))
	}
	half := max(m.width/2-2, 20)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(half, m.Overtime()).Render(m.renderSession()),
		m.pane(half, m.reading.Connection.State == "OFFLINE").Render(m.renderConnection()),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(half, false).Render(m.renderPresence()),
		m.pane(half, false).Render(m.renderPosition()),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	if m.reading.Err != nil {
		view += "\n" + theme.Alarm.Render(m.reading.Err.Error())
	}
	return view
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) pane(width int, alert bool) lipgloss.Style {
	if alert {
		return theme.PaneAlert.Width(width)
	}
	return theme.Pane.Width(width)
}

func (m Model) renderSession() string {
	s := m.reading.Session
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Voyage") + "\n")
	if !s.Open {
		sb.WriteString(theme.Muted.Render("In harbour. s: cast off"))
		return sb.String()
	}
	elapsed := time.Duration(s.ElapsedSeconds) * time.Second
	sb.WriteString(theme.Muted.Render("under way  ") + elapsed.String() + "\n")
	sb.WriteString(theme.Muted.Render("catch      ") + fmt.Sprintf("%d", s.ItemsCaught) + "\n")
	sb.WriteString(theme.Muted.Render("earnings   ") + fmt.Sprintf("%.2f", s.Earnings) + "\n")
	if s.ShiftSeconds > 0 {
		ratio := float64(s.ElapsedSeconds) / float64(s.ShiftSeconds)
		sb.WriteString(m.shift.ViewAs(min(ratio, 1)) + "\n")
	}
	if s.Overtime {
		sb.WriteString(theme.Alarm.Render("OVERTIME") + "\n")
	}
	return sb.String()
}

func (m Model) renderConnection() string {
	c := m.reading.Connection
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Signal") + "\n")
	sb.WriteString(theme.Muted.Render("state    ") + theme.ForState(c.State).Render(c.State) + "\n")
	if c.State != "OFFLINE" && !c.CheckedAt.IsZero() {
		sb.WriteString(theme.Muted.Render("latency  ") + fmt.Sprintf("%d ms", c.LatencyMS) + "\n")
	}
	if c.OutageStart != nil {
		sb.WriteString(theme.Muted.Render("lost for ") + m.now().Sub(*c.OutageStart).Truncate(time.Second).String() + "\n")
	}
	return sb.String()
}

func (m Model) renderPresence() string {
	p := m.reading.Presence
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Watch") + "\n")
	watch := theme.Good.Render("on deck")
	if !p.Visible {
		watch = theme.Warn.Render("below deck")
	}
	sb.WriteString(theme.Muted.Render("captain   ") + watch + "\n")
	if !p.LastActivity.IsZero() {
		sb.WriteString(theme.Muted.Render("last move ") + m.now().Sub(p.LastActivity).Truncate(time.Second).String() + " ago\n")
	}
	if p.TabAwayPending {
		sb.WriteString(theme.Warn.Render("drift timer running") + "\n")
	}
	return sb.String()
}

func (m Model) renderPosition() string {
	f := m.reading.Position
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Position") + "\n")
	if f.Status == "" {
		sb.WriteString(theme.Muted.Render("no fix yet"))
		return sb.String()
	}
	sb.WriteString(theme.Muted.Render("fix   ") + theme.ForState(f.Status).Render(f.Status) + "  " + f.Label + "\n")
	sb.WriteString(theme.Muted.Render("at    ") + fmt.Sprintf("%.4f, %.4f", f.Latitude, f.Longitude) + "\n")
	if f.Message != "" {
		sb.WriteString(theme.Muted.Render(f.Message) + "\n")
	}
	return sb.String()
}
