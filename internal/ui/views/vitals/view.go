package vitals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	telemetrydto "helmwatch/internal/modules/telemetry/dto"
	"helmwatch/internal/ui/theme"
)

type Port interface {
	Vitals(ctx context.Context) (telemetrydto.VitalsOutput, error)
}

type LoadedMsg struct {
	Vitals telemetrydto.VitalsOutput
	Err    error
}

// Model shows the forensic snapshot: fps history, host and recent logs.
type Model struct {
	port     Port
	viewport viewport.Model
	vitals   telemetrydto.VitalsOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		v, err := m.port.Vitals(context.Background())
		return LoadedMsg{Vitals: v, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-1, 1)
		m.viewport.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		m.vitals = msg.Vitals
		m.err = msg.Err
		m.viewport.SetContent(m.render())
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := theme.Muted.Render(fmt.Sprintf("%.0f%%  ↑/↓: scroll", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Alarm.Render("vitals unavailable: " + m.err.Error())
	}
	v := m.vitals
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Vitals") + "\n\n")
	sb.WriteString(theme.Muted.Render("fps        ") + fmt.Sprintf("%d  ", v.FPS) + Sparkline(v.FPSHistory) + "\n")
	recording := theme.Muted.Render("off")
	if v.RecordingEnabled {
		recording = theme.Good.Render("on")
	}
	sb.WriteString(theme.Muted.Render("recording  ") + recording + "\n")
	env := v.Environment
	sb.WriteString(theme.Muted.Render("host       ") + fmt.Sprintf("%s %s/%s %s, %d cpu, %d goroutines", env.Hostname, env.OS, env.Arch, env.GoVersion, env.NumCPU, env.Goroutines) + "\n")
	if v.Memory != nil {
		sb.WriteString(theme.Muted.Render("memory     ") + fmt.Sprintf("heap %d KiB of %d KiB, %d gc", v.Memory.HeapAllocBytes/1024, v.Memory.HeapSysBytes/1024, v.Memory.NumGC) + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Recent log") + "\n")
	if len(v.RecentLogs) == 0 {
		sb.WriteString(theme.Muted.Render("nothing recorded; enable developer mode to keep a log") + "\n")
	}
	for _, entry := range v.RecentLogs {
		style := theme.Muted
		switch entry.Level {
		case "warn":
			style = theme.Warn
		case "error":
			style = theme.Alarm
		}
		sb.WriteString(fmt.Sprintf("%s %s %s %s\n",
			theme.Muted.Render(entry.Timestamp.Format("15:04:05")),
			style.Render(fmt.Sprintf("%-5s", entry.Level)),
			theme.Hot.Render(entry.Source),
			entry.Message,
		))
	}
	return sb.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws samples oldest first, scaled to the largest sample.
func Sparkline(samples []int) string {
	if len(samples) == 0 {
		return ""
	}
	peak := 0
	for _, s := range samples {
		peak = max(peak, s)
	}
	out := make([]rune, len(samples))
	for i, s := range samples {
		idx := 0
		if peak > 0 {
			idx = s * (len(sparkBlocks) - 1) / peak
		}
		out[i] = sparkBlocks[max(idx, 0)]
	}
	return string(out)
}
