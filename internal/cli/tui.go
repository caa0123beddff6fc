package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IamSagarRai/optimesh/pkg/mesh"
	"github.com/IamSagarRai/optimesh/pkg/pipeline"
)

// =============================================================================
// SmoothModel - Live smoothing progress
// =============================================================================

// stepMsg reports one committed relaxation step.
type stepMsg struct {
	step  int
	stats mesh.Stats
}

// doneMsg reports the end of the pipeline run.
type doneMsg struct {
	result *pipeline.Result
	err    error
}

// tickMsg advances the spinner animation.
type tickMsg time.Time

// smoothModel is the bubbletea model showing live smoothing progress.
type smoothModel struct {
	method   string
	step     int
	stats    mesh.Stats
	haveStat bool
	frame    int
	frames   []string
	done     bool
}

func newSmoothModel(method string) smoothModel {
	return smoothModel{
		method: method,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m smoothModel) Init() tea.Cmd {
	return tick()
}

func (m smoothModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case stepMsg:
		m.step = msg.step
		m.stats = msg.stats
		m.haveStat = true
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m smoothModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Smoothing with " + m.method))
	b.WriteString("\n\n")

	frame := m.frames[m.frame%len(m.frames)]
	b.WriteString(styleIconSpinner.Render(frame))
	b.WriteString(" ")
	if m.haveStat {
		b.WriteString(StyleDim.Render(fmt.Sprintf("step %d", m.step)))
		b.WriteString(StyleDim.Render(" · "))
		b.WriteString(StyleDim.Render(fmt.Sprintf("quality min %.4f avg %.4f", m.stats.MinQuality, m.stats.AvgQuality)))
	} else {
		b.WriteString(StyleDim.Render("starting..."))
	}
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Runner Integration
// =============================================================================

// runSmoothWithProgress executes the pipeline while showing a live progress
// view. The step callback disables the smoothing cache, so watch runs always
// recompute.
func runSmoothWithProgress(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	p := tea.NewProgram(newSmoothModel(opts.Method), tea.WithContext(ctx))

	opts.Callback = func(step int, m *mesh.Mesh) {
		p.Send(stepMsg{step: step, stats: m.ComputeStats()})
	}

	var (
		result *pipeline.Result
		runErr error
	)
	go func() {
		result, runErr = runner.Execute(ctx, opts)
		p.Send(doneMsg{result: result, err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}
	if result == nil {
		return nil, ctx.Err()
	}
	return result, nil
}
