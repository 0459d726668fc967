// ABOUTME: Bubbletea model for the remote control TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/protocol"
)

// Commander sends transport commands to the daemon. Satisfied by
// protocol.Client; tests substitute a recorder.
type Commander interface {
	Toggle() error
	Stop() error
	Next() error
	Prev() error
	Seek(seconds int, relative bool) error
	SetVolume(percent int, relative bool) error
	Quit() error
}

// Model represents the TUI state
type Model struct {
	commander Commander

	// Last snapshot received from the daemon
	status   protocol.Status
	received bool

	// Last command failure, shown in the footer
	lastErr error

	// Dimensions
	width  int
	height int
}

// StatusMsg carries a daemon snapshot into the update loop
type StatusMsg protocol.Status

// NewModel creates a TUI model that sends commands through c
func NewModel(c Commander) Model {
	return Model{commander: c}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.status = protocol.Status(msg)
		m.received = true
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.lastErr = m.commander.Toggle()
	case "s":
		m.lastErr = m.commander.Stop()
	case "n":
		m.lastErr = m.commander.Next()
	case "p":
		m.lastErr = m.commander.Prev()
	case "right":
		m.lastErr = m.commander.Seek(5, true)
	case "left":
		m.lastErr = m.commander.Seek(-5, true)
	case "up", "+":
		m.lastErr = m.commander.SetVolume(5, true)
	case "down", "-":
		m.lastErr = m.commander.SetVolume(-5, true)
	case "Q":
		m.lastErr = m.commander.Quit()
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	s := m.renderHeader()
	s += m.renderTrack()
	s += m.renderControls()
	s += m.renderHelp()
	return s
}

// renderHeader renders the title bar and daemon state
func (m Model) renderHeader() string {
	stateText := "Waiting for daemon..."
	if m.received {
		stateText = stateName(m.status.State)
	}

	return fmt.Sprintf(`┌─ Jukebox Remote ─────────────────────────────────────┐
│ State: %-46s │
├──────────────────────────────────────────────────────┤
`, stateText)
}

// renderTrack renders the current track, position and playlist slot
func (m Model) renderTrack() string {
	if !m.received || m.status.File == "" {
		return "│ Nothing playing                                      │\n"
	}

	progress := renderBar(m.status.Pos, m.status.Dur, 30)

	s := fmt.Sprintf("│ Track:  %-44s │\n", truncate(m.status.File, 44))
	s += fmt.Sprintf("│ Slot:   %d of %d%-38s │\n", m.status.Track, m.status.Total, "")
	s += fmt.Sprintf("│ [%s] %s / %s%-7s │\n",
		progress, clock(m.status.Pos), clock(m.status.Dur), "")
	s += fmt.Sprintf("│ Rate:   %d Hz%-40s │\n", m.status.Rate, "")

	return s
}

// renderControls renders the volume bar and the last command error
func (m Model) renderControls() string {
	volumeBar := renderBar(m.status.Vol, 100, 10)

	s := fmt.Sprintf("│ Volume: [%s] %3d%%%-31s │\n", volumeBar, m.status.Vol, "")
	if m.lastErr != nil {
		s += fmt.Sprintf("│ ! %-51s │\n", truncate(m.lastErr.Error(), 51))
	}
	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ space:Play/Pause  n/p:Track  ←/→:Seek  ↑/↓:Vol  q:Quit │
└──────────────────────────────────────────────────────┘
`
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func stateName(state string) string {
	switch state {
	case "playing":
		return "▶ Playing"
	case "paused":
		return "⏸ Paused"
	case "stopped":
		return "■ Stopped"
	}
	return state
}
