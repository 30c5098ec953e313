package crew

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	crewdto "helmwatch/internal/modules/crew/dto"
	"helmwatch/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) ([]crewdto.MemberOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Members []crewdto.MemberOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type memberItem struct {
	member crewdto.MemberOutput
}

func (i memberItem) Title() string {
	title := i.member.Name
	if i.member.ActiveFlare != "" {
		title += "  " + theme.ForFlare(i.member.ActiveFlare).Render("✦ "+i.member.ActiveFlare)
	}
	return title
}

func (i memberItem) Description() string {
	return fmt.Sprintf("%s  %s", i.member.Role, theme.ForState(i.member.Status).Render(i.member.Status))
}

func (i memberItem) FilterValue() string { return i.member.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	detail viewport.Model
	err    error
	now    func() time.Time
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Brass).BorderForeground(theme.Brass)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Fog).BorderForeground(theme.Brass)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Crew"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Deck).Foreground(theme.Foam).Padding(1)

	return Model{port: port, list: l, detail: vp, now: time.Now}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the roster again. The app calls it on every refresh tick
// and after any crew order.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		members, err := m.port.List(context.Background())
		return LoadedMsg{Members: members, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			items := make([]list.Item, len(msg.Members))
			for i, member := range msg.Members {
				items[i] = memberItem{member: member}
			}
			cmds = append(cmds, m.list.SetItems(items))
		}
		m.detail.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)
	}

	var lCmd tea.Cmd
	prev := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())

	pane := theme.Pane
	if member, ok := m.selected(); ok && member.Status == "MAN_OVERBOARD" {
		pane = theme.PaneAlert
	}
	detailPane := pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedMemberID returns the highlighted member, if any.
func (m Model) SelectedMemberID() (string, bool) {
	member, ok := m.selected()
	return member.ID, ok
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) selected() (crewdto.MemberOutput, bool) {
	if item, ok := m.list.SelectedItem().(memberItem); ok {
		return item.member, true
	}
	return crewdto.MemberOutput{}, false
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Alarm.Render("roster unavailable: " + m.err.Error())
	}
	member, ok := m.selected()
	if !ok {
		return theme.Muted.Render("No crew aboard")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(member.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("role:      ") + member.Role + "\n")
	sb.WriteString(theme.Muted.Render("kind:      ") + member.Kind + "\n")
	sb.WriteString(theme.Muted.Render("status:    ") + theme.ForState(member.Status).Render(member.Status) + "\n")
	flare := "none"
	if member.ActiveFlare != "" {
		flare = theme.ForFlare(member.ActiveFlare).Render(member.ActiveFlare)
	}
	sb.WriteString(theme.Muted.Render("flare:     ") + flare + "\n")
	if !member.LastHeartbeat.IsZero() {
		ago := m.now().Sub(member.LastHeartbeat).Truncate(time.Second)
		sb.WriteString(theme.Muted.Render("heartbeat: ") + ago.String() + " ago\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("e: emergency  r: rescue  w: welfare check  1/2/3: red/white/green flare  0: stand down flare"))
	return sb.String()
}
