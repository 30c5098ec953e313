package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	connectivitydto "helmwatch/internal/modules/connectivity/dto"
	crewdto "helmwatch/internal/modules/crew/dto"
	positiondto "helmwatch/internal/modules/position/dto"
	presencedto "helmwatch/internal/modules/presence/dto"
	safetydto "helmwatch/internal/modules/safety/dto"
	sessiondto "helmwatch/internal/modules/session/dto"
	telemetrydto "helmwatch/internal/modules/telemetry/dto"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/notify"
	"helmwatch/internal/ui/components"
	"helmwatch/internal/ui/theme"
	crewview "helmwatch/internal/ui/views/crew"
	deckview "helmwatch/internal/ui/views/deck"
	vitalsview "helmwatch/internal/ui/views/vitals"
)

const (
	frameInterval   = time.Second / 30
	refreshInterval = time.Second
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type SessionPort interface {
	Start(ctx context.Context) (sessiondto.StartOutput, error)
	Stop(ctx context.Context, force bool) (sessiondto.SettlementOutput, error)
	Catch(ctx context.Context) (sessiondto.CatchOutput, error)
	Sign(ctx context.Context, sessionID string, efficiency float64) (sessiondto.SessionOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

type CrewPort interface {
	List(ctx context.Context) ([]crewdto.MemberOutput, error)
	Emergency(ctx context.Context, id string) (crewdto.TransitionOutput, error)
	Rescue(ctx context.Context, id string) (crewdto.TransitionOutput, error)
	FireFlare(ctx context.Context, id, flare string) (crewdto.TransitionOutput, error)
	ResolveFlare(ctx context.Context, id string) (crewdto.TransitionOutput, error)
}

type SafetyPort interface {
	Check(ctx context.Context, targetID string) (safetydto.CheckOutput, error)
}

type PresencePort interface {
	Focus(ctx context.Context) error
	Blur(ctx context.Context) error
	Input(ctx context.Context) error
	Status(ctx context.Context) (presencedto.PresenceOutput, error)
}

type ConnectionPort interface {
	Status(ctx context.Context) (connectivitydto.ConnectionOutput, error)
	Check(ctx context.Context) (connectivitydto.ConnectionOutput, error)
}

type PositionPort interface {
	Resolve(ctx context.Context) (positiondto.FixOutput, error)
	Last(ctx context.Context) (positiondto.FixOutput, error)
}

type TelemetryPort interface {
	Frame()
	StartSampling(onSample func(fps int))
	StopSampling()
	Vitals(ctx context.Context) (telemetrydto.VitalsOutput, error)
	SetDeveloperMode(ctx context.Context, enabled bool) (telemetrydto.DeveloperModeOutput, error)
}

// Ports bundles everything the dashboard drives.
type Ports struct {
	Session    SessionPort
	Crew       CrewPort
	Safety     SafetyPort
	Presence   PresencePort
	Connection ConnectionPort
	Position   PositionPort
	Telemetry  TelemetryPort
	Toasts     <-chan notify.Notification
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDeck tabID = iota
	tabCrew
	tabVitals
	tabCount
)

var tabLabels = [tabCount]string{"Deck", "Crew", "Vitals"}

// ─── async messages ──────────────────────────────────────────────────────────

type frameTickMsg time.Time

type refreshTickMsg time.Time

type toastMsg notify.Notification

// orderDoneMsg reports the outcome of any order given from the dashboard.
type orderDoneMsg struct {
	status string
	err    error
}


// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Start     key.Binding
	Stop      key.Binding
	ForceStop key.Binding
	Catch     key.Binding
	Emergency key.Binding
	Rescue    key.Binding
	Welfare   key.Binding
	Flare     key.Binding
	StandDown key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "orders")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start voyage")),
		Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop voyage")),
		ForceStop: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "force stop")),
		Catch:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "log a catch")),
		Emergency: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "man overboard")),
		Rescue:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescue")),
		Welfare:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "welfare check")),
		Flare:     key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1/2/3", "red/white/green flare")),
		StandDown: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "stand down flare")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.ForceStop, k.Catch},
		{k.Emergency, k.Rescue, k.Welfare, k.Flare, k.StandDown},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

var flareKeys = map[string]string{"1": "red", "2": "white", "3": "green"}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help
// overlay, the order palette and the toast stack, and it reports focus,
// blur and input to the presence module. Business logic lives behind the
// ports; rendering lives in the sub-views.
type Model struct {
	ports Ports
	now   func() time.Time
	fps   *atomic.Int64

	deckView   deckview.Model
	crewView   crewview.Model
	vitalsView vitalsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	toasts    components.Toasts
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ports Ports, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		ports:      ports,
		now:        now,
		fps:        new(atomic.Int64),
		deckView:   deckview.New(deckPortBridge{ports: ports}),
		crewView:   crewview.New(ports.Crew),
		vitalsView: vitalsview.New(ports.Telemetry),
		activeTab:  tabDeck,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "all hands on deck",
	}
}

func (m Model) Init() tea.Cmd {
	fps := m.fps
	m.ports.Telemetry.StartSampling(func(v int) { fps.Store(int64(v)) })
	return tea.Batch(
		m.deckView.Init(),
		m.crewView.Init(),
		m.vitalsView.Init(),
		frameTick(),
		refreshTick(),
		m.waitForToast(),
	)
}

// Shutdown stops frame sampling. Call it once the program has exited.
func (m Model) Shutdown() {
	m.ports.Telemetry.StopSampling()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case frameTickMsg:
		m.ports.Telemetry.Frame()
		return m, frameTick()

	case refreshTickMsg:
		m.toasts.Expire(m.now())
		return m, tea.Batch(m.reloadAll(), refreshTick())

	case toastMsg:
		m.toasts.Push(notify.Notification(msg), m.now())
		return m, m.waitForToast()

	case tea.FocusMsg:
		m.reportPresence(m.ports.Presence.Focus)
		return m, nil

	case tea.BlurMsg:
		m.reportPresence(m.ports.Presence.Blur)
		return m, nil

	case tea.MouseMsg:
		m.reportPresence(m.ports.Presence.Input)

	case orderDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, m.reloadAll()

	case deckview.LoadedMsg:
		var cmd tea.Cmd
		m.deckView, cmd = m.deckView.Update(msg)
		return m, cmd

	case crewview.LoadedMsg:
		var cmd tea.Cmd
		m.crewView, cmd = m.crewView.Update(msg)
		return m, cmd

	case vitalsview.LoadedMsg:
		var cmd tea.Cmd
		m.vitalsView, cmd = m.vitalsView.Update(msg)
		return m, cmd
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.reportPresence(m.ports.Presence.Input)
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "as you were"
		return m, nil

	case tea.KeyMsg:
		m.reportPresence(m.ports.Presence.Input)

		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, tea.Batch(cmds...)
		}

		// Yield to the crew list while its search filter is open.
		if m.activeTab == tabCrew && m.crewView.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, tea.Batch(cmds...)
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Palette):
			return m, tea.Batch(append(cmds, m.palette.Open())...)
		case key.Matches(msg, m.keys.Start):
			return m, tea.Batch(append(cmds, m.startCmd())...)
		case key.Matches(msg, m.keys.Stop):
			return m, tea.Batch(append(cmds, m.stopCmd(false))...)
		case key.Matches(msg, m.keys.ForceStop):
			return m, tea.Batch(append(cmds, m.stopCmd(true))...)
		case key.Matches(msg, m.keys.Catch):
			return m, tea.Batch(append(cmds, m.catchCmd())...)
		}

		if m.activeTab == tabCrew {
			if cmd := m.crewOrder(msg.String()); cmd != nil {
				return m, tea.Batch(append(cmds, cmd)...)
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDeck:
		m.deckView, tabCmd = m.deckView.Update(msg)
	case tabCrew:
		m.crewView, tabCmd = m.crewView.Update(msg)
	case tabVitals:
		m.vitalsView, tabCmd = m.vitalsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// crewOrder maps a crew-tab key to an order for the highlighted member.
func (m Model) crewOrder(k string) tea.Cmd {
	id, ok := m.crewView.SelectedMemberID()
	if !ok {
		return nil
	}
	switch {
	case k == "e":
		return m.emergencyCmd(id)
	case k == "r":
		return m.rescueCmd(id)
	case k == "w":
		return m.welfareCmd(id)
	case k == "0":
		return m.standDownCmd(id)
	}
	if flare, ok := flareKeys[k]; ok {
		return m.flareCmd(id, flare)
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

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

	screen := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
	if m.toasts.Len() == 0 {
		return screen
	}
	toastWidth := min(44, max(m.width/3, 24))
	overlay := m.toasts.View(toastWidth)
	x := max(m.width-lipgloss.Width(overlay)-1, 0)
	return components.Splice(screen, overlay, x, lipgloss.Height(tabBar))
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDeck:
		return m.deckView.View()
	case tabCrew:
		return m.crewView.View()
	case tabVitals:
		return m.vitalsView.View()
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
	bar := "helmwatch  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Hull).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.deckView.SessionOpen() {
		marker := theme.Good.Render("● under way")
		if m.deckView.Overtime() {
			marker = theme.Alarm.Render("● overtime")
		}
		left = marker + "  " + left
	}
	right := theme.Muted.Render(fmt.Sprintf("%d fps  ?:help  tab:switch  ::orders  q:quit", m.fps.Load()))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Hull).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	memberArg := func(usage string) (string, bool) {
		if len(parts) >= 2 {
			return parts[1], true
		}
		if id, ok := m.crewView.SelectedMemberID(); ok {
			return id, true
		}
		m.status = "usage: " + usage
		return "", false
	}

	switch parts[0] {
	case "session:start":
		return m, m.startCmd()
	case "session:stop":
		return m, m.stopCmd(false)
	case "session:stop!":
		return m, m.stopCmd(true)
	case "session:catch":
		return m, m.catchCmd()
	case "session:sign":
		if len(parts) < 3 {
			m.status = "usage: session:sign <session-id> <efficiency>"
			return m, nil
		}
		efficiency, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			m.status = "invalid efficiency"
			return m, nil
		}
		return m, m.signCmd(parts[1], efficiency)
	case "crew:emergency":
		if id, ok := memberArg("crew:emergency <member-id>"); ok {
			return m, m.emergencyCmd(id)
		}
	case "crew:rescue":
		if id, ok := memberArg("crew:rescue <member-id>"); ok {
			return m, m.rescueCmd(id)
		}
	case "crew:flare":
		if len(parts) < 3 {
			m.status = "usage: crew:flare <member-id> <red|white|green>"
			return m, nil
		}
		return m, m.flareCmd(parts[1], parts[2])
	case "crew:resolve":
		if id, ok := memberArg("crew:resolve <member-id>"); ok {
			return m, m.standDownCmd(id)
		}
	case "crew:check":
		if id, ok := memberArg("crew:check <member-id>"); ok {
			return m, m.welfareCmd(id)
		}
	case "connection:check":
		return m, m.connectionCheckCmd()
	case "position:resolve":
		return m, m.positionResolveCmd()
	case "devmode":
		if len(parts) < 2 || (parts[1] != "on" && parts[1] != "off") {
			m.status = "usage: devmode <on|off>"
			return m, nil
		}
		return m, m.devModeCmd(parts[1] == "on")
	default:
		m.status = "unknown order: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.deckView, _ = m.deckView.Update(sz)
	m.crewView, _ = m.crewView.Update(sz)
	m.vitalsView, _ = m.vitalsView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.deckView.Reload(), m.crewView.Reload(), m.vitalsView.Reload())
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshTickMsg(t) })
}

func (m Model) waitForToast() tea.Cmd {
	if m.ports.Toasts == nil {
		return nil
	}
	ch := m.ports.Toasts
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(n)
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

// reportPresence runs inside Update so focus, blur and input reach the
// watchdog in the order the terminal sent them. The reports never block.
func (m *Model) reportPresence(report func(context.Context) error) {
	if err := report(context.Background()); err != nil {
		m.status = "presence: " + err.Error()
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Session.Start(context.Background())
		if errors.Is(err, apperrors.ErrActiveSessionExists) {
			return orderDoneMsg{err: errors.New("a voyage is already under way")}
		}
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("start: %w", err)}
		}
		return orderDoneMsg{status: "voyage " + out.SessionID + " under way"}
	}
}

func (m Model) stopCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Session.Stop(context.Background(), force)
		switch {
		case errors.Is(err, apperrors.ErrStopDeclined):
			return orderDoneMsg{err: errors.New("voyage too short to settle; X to stop anyway")}
		case errors.Is(err, apperrors.ErrNoActiveSession):
			return orderDoneMsg{err: errors.New("no voyage under way")}
		case err != nil:
			return orderDoneMsg{err: fmt.Errorf("stop: %w", err)}
		}
		d := time.Duration(out.DurationSeconds) * time.Second
		return orderDoneMsg{status: fmt.Sprintf("voyage settled: %s, earnings %.2f", d, out.Earnings)}
	}
}

func (m Model) catchCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Session.Catch(context.Background())
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("catch: %w", err)}
		}
		return orderDoneMsg{status: fmt.Sprintf("catch logged, %d aboard", out.ItemsCaught)}
	}
}

func (m Model) signCmd(sessionID string, efficiency float64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.ports.Session.Sign(context.Background(), sessionID, efficiency); err != nil {
			return orderDoneMsg{err: fmt.Errorf("sign: %w", err)}
		}
		return orderDoneMsg{status: "voyage " + sessionID + " signed"}
	}
}

func (m Model) transitionCmd(verb string, order func() (crewdto.TransitionOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := order()
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("%s: %w", verb, err)}
		}
		if !out.Changed {
			return orderDoneMsg{status: fmt.Sprintf("%s: %s unchanged", verb, out.Member.Name)}
		}
		return orderDoneMsg{status: fmt.Sprintf("%s: %s is %s", verb, out.Member.Name, out.Member.Status)}
	}
}

func (m Model) emergencyCmd(id string) tea.Cmd {
	return m.transitionCmd("emergency", func() (crewdto.TransitionOutput, error) {
		return m.ports.Crew.Emergency(context.Background(), id)
	})
}

func (m Model) rescueCmd(id string) tea.Cmd {
	return m.transitionCmd("rescue", func() (crewdto.TransitionOutput, error) {
		return m.ports.Crew.Rescue(context.Background(), id)
	})
}

func (m Model) flareCmd(id, flare string) tea.Cmd {
	return m.transitionCmd("flare", func() (crewdto.TransitionOutput, error) {
		return m.ports.Crew.FireFlare(context.Background(), id, flare)
	})
}

func (m Model) standDownCmd(id string) tea.Cmd {
	return m.transitionCmd("stand down", func() (crewdto.TransitionOutput, error) {
		return m.ports.Crew.ResolveFlare(context.Background(), id)
	})
}

func (m Model) welfareCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Safety.Check(context.Background(), id)
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("welfare check: %w", err)}
		}
		status := fmt.Sprintf("welfare check on %s: %d in window", id, out.InWindow)
		if out.Advised {
			status += ", advisory raised"
		}
		return orderDoneMsg{status: status}
	}
}

func (m Model) connectionCheckCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Connection.Check(context.Background())
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("connection check: %w", err)}
		}
		return orderDoneMsg{status: fmt.Sprintf("signal %s (%dms)", out.State, out.LatencyMS)}
	}
}

func (m Model) positionResolveCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Position.Resolve(context.Background())
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("position: %w", err)}
		}
		return orderDoneMsg{status: fmt.Sprintf("position %s: %s", out.Status, out.Label)}
	}
}

func (m Model) devModeCmd(enabled bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Telemetry.SetDeveloperMode(context.Background(), enabled)
		if err != nil {
			return orderDoneMsg{err: fmt.Errorf("devmode: %w", err)}
		}
		if out.Enabled {
			return orderDoneMsg{status: "developer mode on, recording"}
		}
		return orderDoneMsg{status: "developer mode off"}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────
// The deck reads from four modules at once; the bridge narrows them to
// the one port the deck view knows.

type deckPortBridge struct{ ports Ports }

func (b deckPortBridge) Session(ctx context.Context) (sessiondto.StatusOutput, error) {
	return b.ports.Session.Status(ctx)
}
func (b deckPortBridge) Connection(ctx context.Context) (connectivitydto.ConnectionOutput, error) {
	return b.ports.Connection.Status(ctx)
}
func (b deckPortBridge) Presence(ctx context.Context) (presencedto.PresenceOutput, error) {
	return b.ports.Presence.Status(ctx)
}
func (b deckPortBridge) Position(ctx context.Context) (positiondto.FixOutput, error) {
	return b.ports.Position.Last(ctx)
}
