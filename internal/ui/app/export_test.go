package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func FrameTick(t time.Time) tea.Msg { return frameTickMsg(t) }

func WaitForToast(m Model) tea.Cmd { return m.waitForToast() }
