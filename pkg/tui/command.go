package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timescope/pkg/timeutil"
	"tableflip.dev/timescope/pkg/viewport"
)

func (m *Model) onCommandKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		return m.runCommand(input)
	case "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.setStatus("command cancelled")
		return nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
}

// runCommand executes one ':' command. Every viewport mutation goes through
// Controller.Apply so the playhead-feature usage error is enforced in exactly
// one place.
func (m *Model) runCommand(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]

	switch name {
	case "q", "quit", "exit":
		return tea.Quit

	case "goto":
		if len(args) != 1 {
			m.setError("usage: goto <time>")
			return nil
		}
		t, err := timeutil.ParseTime(args[0])
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		change := viewport.Change{Timestamp: &t}
		if m.cfg.DrawPlayhead {
			change.PlayheadTime = &t
		}
		if err := m.ctl.Apply(change); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus("jumped to " + timeutil.FormatTime(t))
		return m.viewportChanged()

	case "zoom":
		if len(args) != 1 {
			m.setError("usage: zoom <percent>")
			return nil
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		if err != nil || pct <= 0 {
			m.setError(fmt.Sprintf("invalid zoom %q", args[0]))
			return nil
		}
		if err := m.ctl.Apply(viewport.Change{Zoom: &pct}); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus(fmt.Sprintf("zoom %.0f%%", pct))
		return m.viewportChanged()

	case "speed":
		if len(args) != 1 {
			m.setError("usage: speed <multiplier>")
			return nil
		}
		speed, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			m.setError(fmt.Sprintf("invalid speed %q", args[0]))
			return nil
		}
		if err := m.ctl.Apply(viewport.Change{PlaySpeed: &speed}); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus(fmt.Sprintf("speed ×%g", speed))
		return nil

	case "play", "pause":
		playing := name == "play"
		if err := m.ctl.Apply(viewport.Change{PlayPlayhead: &playing}); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus(name)
		return nil

	case "follow":
		follow := true
		if len(args) == 1 {
			follow = args[0] == "on"
		}
		m.applyChange(viewport.Change{PlayViewport: &follow})
		if follow {
			m.setStatus("viewport follows playback")
		} else {
			m.setStatus("viewport pinned")
		}
		return nil

	case "help":
		m.mode = modeHelp
		return nil

	default:
		m.setError(fmt.Sprintf("unknown command: %s", name))
		return nil
	}
}

func (m *Model) enterCommand() tea.Cmd {
	m.mode = modeCommand
	m.input.Reset()
	var cmds []tea.Cmd
	if cmd := m.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, textinput.Blink)
	return tea.Batch(cmds...)
}
