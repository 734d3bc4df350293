package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/sim"
)

const historyCapacity = 400

type TickMsg time.Time

// LiveModel integrates the dynamics while rendering, one output step per
// frame, honoring the same stopping rules as the solver.
type LiveModel struct {
	fm       dynamo.ForceModel
	sys      dynamo.System
	adv      dynamo.Advancer
	params   sim.Params
	isAngle  bool
	interval time.Duration

	state  dynamo.State
	t      float64
	posLog []float64
	velLog []float64

	running bool
	done    bool
	status  string
}

func NewLiveModel(fm dynamo.ForceModel, adv dynamo.Advancer, p sim.Params, isAngle bool, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	m := LiveModel{
		fm:       fm,
		sys:      dynamo.Braked(fm),
		adv:      adv,
		params:   p,
		isAngle:  isAngle,
		interval: time.Second / time.Duration(fps),
		running:  true,
	}
	m.reset()
	return m
}

func (m *LiveModel) reset() {
	m.state = dynamo.State{m.params.Q0, 0}
	m.t = 0
	m.posLog = append(m.posLog[:0], m.params.Q0)
	m.velLog = append(m.velLog[:0], 0)
	m.done = false
	m.status = "running"
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				m.status = "running"
			} else {
				m.status = "paused"
			}
		case "r":
			m.reset()
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *LiveModel) advance() {
	if m.t >= m.params.TMax {
		m.done = true
		m.status = "horizon reached"
		return
	}
	if m.state[0] <= m.params.QMin || m.state[0] >= m.params.QMax {
		m.done = true
		m.status = "left domain"
		return
	}

	next, err := m.adv.Advance(m.sys, m.state, m.t, m.t+m.params.Dt, m.params.Tol)
	if err != nil || !next.IsValid() {
		m.done = true
		m.status = "stepper failed"
		return
	}

	m.state = next
	m.t += m.params.Dt
	m.posLog = append(m.posLog, m.state[0])
	m.velLog = append(m.velLog, m.state[1])
	if len(m.posLog) > historyCapacity {
		m.posLog = m.posLog[1:]
		m.velLog = m.velLog[1:]
	}
}

func (m LiveModel) View() string {
	posLabel, velLabel, _ := dofLabel(m.isAngle)

	transform := 1.0
	if m.isAngle {
		transform = radToDeg
	}

	posGraph := asciigraph.Plot(scaled(m.posLog, transform),
		asciigraph.Height(8), asciigraph.Width(70))
	velGraph := asciigraph.Plot(scaled(m.velLog, transform),
		asciigraph.Height(8), asciigraph.Width(70))

	stats := lipgloss.JoinVertical(lipgloss.Left,
		StatLabel.Render("time")+StatValue.Render(fmt.Sprintf("%8.3f s", m.t)),
		StatLabel.Render("dof")+StatValue.Render(fmt.Sprintf("%8.4f", m.state[0]*transform)),
		StatLabel.Render("velocity")+StatValue.Render(fmt.Sprintf("%8.4f", m.state[1]*transform)),
		StatLabel.Render("lenz force")+StatValue.Render(fmt.Sprintf("%8.4f", -m.fm.Lenz(m.state[0])*m.state[1])),
		StatLabel.Render("status")+StatValue.Render(m.status),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("lenzsim live"),
		PanelStyle.Render(posGraph),
		Subtle.Render(posLabel),
		PanelStyle.Render(velGraph),
		Subtle.Render(velLabel),
		PanelStyle.Render(stats),
		Subtle.Render("space pause · r reset · q quit"),
	)
}

// RunLive drives the live view until quit or completion.
func RunLive(fm dynamo.ForceModel, adv dynamo.Advancer, p sim.Params, isAngle bool, fps int) error {
	prog := tea.NewProgram(NewLiveModel(fm, adv, p, isAngle, fps))
	_, err := prog.Run()
	return err
}
