package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"frostpaw/internal/engine"
)

// RunDen opens the den dashboard. Vital decay runs only while the den is
// open: the scheduler starts with the program and stops when it exits.
func RunDen(ctx context.Context, svc *engine.Service, decayInterval time.Duration, out io.Writer) error {
	sched := engine.NewDecayScheduler(svc, decayInterval)
	sched.Start(ctx)
	defer sched.Stop()

	m := newDenModel(ctx, svc, decayInterval)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
