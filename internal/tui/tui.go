package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)

	advisoryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

const (
	refreshInterval = 250 * time.Millisecond
	recordTimeout   = 15 * time.Second
	recordPrompt    = "Press a key. ESC to cancel. Hotkeys work globally."
)

// Controller is the part of the clicker service the terminal UI drives.
type Controller interface {
	Settings() autoclicker.SettingsSnapshot
	IsRunning() bool
	IsActive(side autoclicker.Side) bool
	HotkeysAvailable() bool
	ClickCount() int64
	ToggleRunning() bool
	SetHoldMode(hold bool)
	SetRandomize(randomize bool)
	SetClickSpeed(ms float64) error
	SetHotkey(side autoclicker.Side, value string)
	RecordHotkey(ctx context.Context) (string, error)
	Subscribe(buffer int) (<-chan autoclicker.ActivationEvent, func())
}

type Model struct {
	ctrl   Controller
	events <-chan autoclicker.ActivationEvent
	cancel func()

	advisory  autoclicker.Advisory
	dismissed bool
	expanded  bool

	unit      autoclicker.SpeedUnit
	recording bool
	recordFor autoclicker.Side
	status    string
	err       error
	width     int
}

type tickMsg time.Time

type activationMsg autoclicker.ActivationEvent

type recordedMsg struct {
	side  autoclicker.Side
	value string
	err   error
}

func New(ctrl Controller, advisory autoclicker.Advisory) Model {
	events, cancel := ctrl.Subscribe(8)
	return Model{
		ctrl:     ctrl,
		events:   events,
		cancel:   cancel,
		advisory: advisory,
	}
}

// Run blocks until the user quits the terminal UI.
func Run(ctrl Controller, advisory autoclicker.Advisory) error {
	m := New(ctrl, advisory)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForActivation(m.events))
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForActivation(events <-chan autoclicker.ActivationEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return activationMsg(event)
	}
}

func (m Model) record(side autoclicker.Side) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		value, err := ctrl.RecordHotkey(ctx)
		return recordedMsg{side: side, value: value, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tick()

	case activationMsg:
		return m, waitForActivation(m.events)

	case recordedMsg:
		m.recording = false
		switch {
		case msg.err == nil:
			m.ctrl.SetHotkey(msg.side, msg.value)
			m.status = fmt.Sprintf("%s hotkey set to %s", msg.side, msg.value)
			m.err = nil
		case errors.Is(msg.err, autoclicker.ErrRecordCancelled):
			m.status = "Recording cancelled"
		case errors.Is(msg.err, context.DeadlineExceeded):
			m.status = "Recording timed out"
		default:
			m.err = msg.err
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	// The recorder reads the devices directly; the terminal copy of the
	// keystroke is ignored.
	if m.recording {
		return m, nil
	}

	switch key {
	case "q", "esc":
		return m, tea.Quit
	case " ", "s":
		if m.ctrl.ToggleRunning() {
			m.status = "Started"
		} else {
			m.status = "Stopped"
		}
	case "h":
		hold := !m.ctrl.Settings().HoldMode
		m.ctrl.SetHoldMode(hold)
		m.status = "Mode: " + modeName(hold)
	case "r":
		m.ctrl.SetRandomize(!m.ctrl.Settings().Randomize)
	case "+", "=", "right":
		m.nudgeSpeed(1)
	case "-", "left":
		m.nudgeSpeed(-1)
	case "u":
		m.unit = m.unit.Next()
	case "1", "2":
		side := autoclicker.SideLeft
		if key == "2" {
			side = autoclicker.SideRight
		}
		if !m.ctrl.HotkeysAvailable() {
			m.err = autoclicker.ErrHotkeysUnavailable
			return m, nil
		}
		m.recording = true
		m.recordFor = side
		m.err = nil
		m.status = ""
		return m, m.record(side)
	case "x":
		m.ctrl.SetHotkey(autoclicker.SideLeft, "")
		m.ctrl.SetHotkey(autoclicker.SideRight, "")
		m.status = "Hotkeys cleared"
	case "d":
		m.dismissed = true
	case "i":
		m.expanded = !m.expanded
	}
	return m, nil
}

func (m *Model) nudgeSpeed(direction float64) {
	snap := m.ctrl.Settings()
	step := 1.0
	if m.unit == autoclicker.UnitMS {
		step = 10
	}
	next := m.unit.Step(snap.ClickSpeedMS, direction*step)
	if err := m.ctrl.SetClickSpeed(next); err != nil {
		m.err = err
	}
}

func (m Model) View() string {
	var b strings.Builder
	snap := m.ctrl.Settings()

	b.WriteString(titleStyle.Render("Autoclicker"))
	b.WriteString("\n")

	if m.showAdvisory() {
		b.WriteString(m.renderAdvisory())
		b.WriteString("\n")
	}

	running := inactiveStyle.Render("stopped")
	if m.ctrl.IsRunning() {
		running = activeStyle.Render("running")
	}
	status := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s\n%s %s",
		labelStyle.Render("State:     "), running,
		labelStyle.Render("Speed:     "), valueStyle.Render(m.unit.Format(snap.ClickSpeedMS)),
		labelStyle.Render("Mode:      "), valueStyle.Render(modeName(snap.HoldMode)),
		labelStyle.Render("Randomize: "), valueStyle.Render(onOff(snap.Randomize)),
		labelStyle.Render("Clicks:    "), valueStyle.Render(fmt.Sprintf("%d", m.ctrl.ClickCount())),
	)
	b.WriteString(boxStyle.Render(status))
	b.WriteString("\n")

	hotkeys := fmt.Sprintf(
		"%s %s %s\n%s %s %s",
		labelStyle.Render("Left: "), valueStyle.Render(hotkeyLabel(snap.HotkeyLeft)), m.activity(autoclicker.SideLeft),
		labelStyle.Render("Right:"), valueStyle.Render(hotkeyLabel(snap.HotkeyRight)), m.activity(autoclicker.SideRight),
	)
	b.WriteString(boxStyle.Render(hotkeys))
	b.WriteString("\n")

	if m.recording {
		b.WriteString(warnStyle.Render(fmt.Sprintf("Recording %s hotkey. %s", m.recordFor, recordPrompt)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) showAdvisory() bool {
	return !m.dismissed && !m.advisory.Empty() && !m.ctrl.HotkeysAvailable()
}

func (m Model) renderAdvisory() string {
	var content strings.Builder
	content.WriteString(warnStyle.Render(m.advisory.Title))
	if m.advisory.Summary != "" {
		content.WriteString("\n")
		content.WriteString(m.advisory.Summary)
	}
	if m.expanded && len(m.advisory.Details) > 0 {
		content.WriteString("\n\n")
		content.WriteString(m.advisory.DetailText())
	}
	return advisoryStyle.Render(content.String())
}

func (m Model) activity(side autoclicker.Side) string {
	if m.ctrl.IsActive(side) {
		return activeStyle.Render("● active")
	}
	return inactiveStyle.Render("○ idle")
}

func (m Model) help() string {
	parts := []string{
		"space: start/stop",
		"+/-: speed",
		"u: " + m.unit.Next().String(),
		"h: mode",
		"r: randomize",
		"1/2: record",
		"x: clear",
	}
	if m.showAdvisory() {
		detail := "i: details"
		if m.expanded {
			detail = "i: hide details"
		}
		parts = append(parts, detail, "d: dismiss")
	}
	parts = append(parts, "q: quit")
	return strings.Join(parts, " • ")
}

func hotkeyLabel(raw string) string {
	if raw == "" {
		return "not set"
	}
	spec, ok := hotkey.Parse(raw)
	if !ok {
		return raw + " (invalid)"
	}
	return hotkey.Format(spec)
}

func modeName(hold bool) string {
	if hold {
		return "hold"
	}
	return "toggle"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
