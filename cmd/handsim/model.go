package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

const (
	maxEventLines = 8
	barWidth      = 10
)

type frameMsg time.Time

type model struct {
	sim    *sim
	frame  time.Duration
	active common.Handedness
	events []string
	status string
}

func newModel(s *sim, frame time.Duration) model {
	return model{sim: s, frame: frame, active: common.HandRight}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m = m.stepFrame(float32(m.frame.Seconds()))
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) stepFrame(dt float32) model {
	for _, e := range m.sim.step(dt) {
		m.events = append(m.events, m.sim.describe(e))
	}
	if over := len(m.events) - maxEventLines; over > 0 {
		m.events = append([]string(nil), m.events[over:]...)
	}
	return m
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.active == common.HandLeft {
			m.active = common.HandRight
		} else {
			m.active = common.HandLeft
		}
		m.status = ""
		return m, nil
	case "g":
		m.sim.toggleButton(m.active, common.ButtonGrip)
		return m, nil
	case "t":
		m.sim.toggleButton(m.active, common.ButtonTrigger)
		return m, nil
	case "c":
		m.sim.setCurls(m.active, 1)
		return m, nil
	case "o":
		m.sim.setCurls(m.active, 0)
		return m, nil
	case "1", "2", "3", "4", "5":
		m.sim.bumpCurl(m.active, common.Finger(key[0]-'1'))
		return m, nil
	}

	for _, it := range m.sim.items {
		if it.key == key {
			verb := "left"
			if m.sim.toggleNear(m.active, it.x) {
				verb = "entered"
			}
			m.status = fmt.Sprintf("%s %s %s reach", it.x.Name(), verb, m.active)
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("oxy-hands simulator"))
	b.WriteString("\n\n")

	panels := make([]string, 0, len(handOrder))
	for _, hd := range handOrder {
		panels = append(panels, m.renderHand(hd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n")
	b.WriteString(m.renderItems())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("events"))
	b.WriteString("\n")
	for _, e := range m.events {
		b.WriteString(eventStyle.Render("  " + e))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(textStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab hand · g grip · t trigger · 1-5 curl · c fist · o open · m/r/s/b reach · q quit"))
	return b.String()
}

func (m model) renderHand(hd common.Handedness) string {
	h := m.sim.hand(hd).hand
	in := m.sim.eng.Input()
	g := h.Graph()

	var b strings.Builder
	b.WriteString(titleStyle.Render(hd.String() + " hand"))
	b.WriteString("\n")

	target := "idle"
	if x := h.Interactor().Current(); x != nil {
		target = x.Name()
		if h.Interactor().IsSelecting() {
			target = "holding " + target
		} else {
			target = "hovering " + target
		}
		if h.Interactor().IsUsing() {
			target += " (using)"
		}
	}
	b.WriteString(labelStyle.Render("target ") + textStyle.Render(target) + "\n")
	b.WriteString(labelStyle.Render("pose   ") + textStyle.Render(g.Pose().Name) + "\n")
	b.WriteString(labelStyle.Render("grip   ") + renderButton(in.Button(hd, common.ButtonGrip)))
	b.WriteString(labelStyle.Render("  trigger ") + renderButton(in.Button(hd, common.ButtonTrigger)) + "\n")

	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-7s", f)))
		b.WriteString(renderBar(g.FingerWeight(f)))
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %.2f/%.2f", g.FingerWeight(f), in.FingerCurl(hd, f))))
		b.WriteString("\n")
	}

	style := panelStyle
	if hd == m.active {
		style = activePanelStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderItems() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("props"))
	b.WriteString("\n")
	for _, it := range m.sim.items {
		state := it.x.State()
		near := ""
		for _, hd := range handOrder {
			if m.sim.isNear(hd, it.x) {
				near += " " + hd.String()
			}
		}
		if near == "" {
			near = " -"
		}
		line := fmt.Sprintf("  [%s] %-7s ", it.key, it.x.Name())
		b.WriteString(textStyle.Render(line))
		b.WriteString(stateStyles[state].Render(fmt.Sprintf("%-9s", state)))
		b.WriteString(labelStyle.Render(" near:" + near))
		b.WriteString("\n")
	}
	return b.String()
}

func renderButton(s common.ButtonState) string {
	if s == common.ButtonDown {
		return downStyle.Render("down")
	}
	return labelStyle.Render("up")
}

func renderBar(v float32) string {
	n := int(v*barWidth + 0.5)
	n = max(0, min(barWidth, n))
	return barStyle.Render(strings.Repeat("█", n)) + barOffStyle.Render(strings.Repeat("░", barWidth-n))
}
