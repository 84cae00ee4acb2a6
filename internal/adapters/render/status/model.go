package status

import (
	"errors"
	"io"

	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	build  func(styles) string
	styles styles
	output string
}

func newModel(build func(styles) string) model {
	return model{
		build:  build,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.build(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws one block per account: tier, unlocked features and today's
// message allowance.
func Render(statuses []application.Status, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderView(statuses, opts, s)
	})
}

func RenderPlans(catalog []domain.TierDefinition) (string, error) {
	return run(func(s styles) string {
		return renderPlans(catalog, s)
	})
}

func RenderStats(stats application.Stats) (string, error) {
	return run(func(s styles) string {
		return renderStats(stats, s)
	})
}

func run(build func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(build),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
