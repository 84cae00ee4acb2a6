package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type resultMsg[T any] struct {
	value T
	err   error
}

// progressModel animates while a single query runs and keeps whatever it
// returned. The elapsed counter appears once the query has taken a second.
type progressModel[T any] struct {
	spinner spinner.Model
	label   string
	query   tea.Cmd
	started time.Time
	now     func() time.Time

	result resultMsg[T]
	done   bool
}

func newProgressModel[T any](label string, query tea.Cmd, now func() time.Time) progressModel[T] {
	return progressModel[T]{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		query:   query,
		started: now(),
		now:     now,
	}
}

func (m progressModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.query)
}

func (m progressModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case resultMsg[T]:
		m.done = true
		m.result = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m progressModel[T]) View() string {
	if m.done {
		return ""
	}

	view := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if elapsed := m.now().Sub(m.started); elapsed >= time.Second {
		view += " " + elapsedStyle.Render(fmt.Sprintf("(%ds)", int(elapsed.Seconds())))
	}
	return view
}

// withProgress runs query and returns its result. A spinner is drawn on
// output only when it is a terminal.
func withProgress[T any](ctx context.Context, output io.Writer, label string, query func(context.Context) (T, error)) (T, error) {
	if !isTerminal(output) {
		return query(ctx)
	}

	queryCmd := func() tea.Msg {
		value, err := query(ctx)
		return resultMsg[T]{value: value, err: err}
	}

	p := tea.NewProgram(
		newProgressModel[T](label, queryCmd, time.Now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	var zero T
	finalModel, err := p.Run()
	if err != nil {
		return zero, err
	}

	final, ok := finalModel.(progressModel[T])
	if !ok {
		return zero, fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return final.result.value, final.result.err
}
