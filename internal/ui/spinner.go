package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user aborts a running action.
var ErrCanceled = errors.New("check canceled")

// RunSpinner runs a minimal Bubble Tea spinner while executing the given action.
// The UI exits when the action completes and returns the action's error.
// Canceling from the keyboard cancels the action's context; RunSpinner still
// waits for the action to return. Without a terminal the action simply runs
// in the foreground.
func RunSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !IsInteractive() {
		return action(ctx)
	}
	m := newSpinnerModel(ctx, title, action)
	defer m.cancel()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		m.cancel()
		<-m.done
		return err
	}
	<-m.done
	return m.result()
}

type actionDoneMsg struct{}

type spinnerModel struct {
	title  string
	spin   spinner.Model
	style  lipgloss.Style
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	finished  bool
	canceling bool
	err       error
}

func newSpinnerModel(ctx context.Context, title string, action func(ctx context.Context) error) *spinnerModel {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &spinnerModel{
		title:  title,
		spin:   s,
		style:  lipgloss.NewStyle().Padding(0, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// Kick off the action in the background and notify on completion
	go func() {
		defer close(m.done)
		// Small delay for smoother paint before heavy work
		time.Sleep(50 * time.Millisecond)
		err := action(ctx)
		m.mu.Lock()
		m.err = err
		m.finished = true
		m.mu.Unlock()
	}()

	return m
}

// result is the action's error, or ErrCanceled when the user aborted it.
func (m *spinnerModel) result() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.canceling {
		return ErrCanceled
	}
	return m.err
}

func (m *spinnerModel) state() (finished, canceling bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished, m.canceling
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForCompletion(m))
}

func waitForCompletion(m *spinnerModel) tea.Cmd {
	return func() tea.Msg {
		<-m.done
		return actionDoneMsg{}
	}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// quit only once the action has released what it holds
			m.mu.Lock()
			m.canceling = true
			m.mu.Unlock()
			m.cancel()
			return m, nil
		}
	case actionDoneMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	finished, canceling := m.state()
	switch {
	case finished:
		if err := m.result(); err != nil {
			return m.style.Render("✗ " + m.title + " (" + err.Error() + ")\n")
		}
		return m.style.Render("✓ " + m.title + "\n")
	case canceling:
		return m.style.Render(m.spin.View() + " Canceling...")
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
