package engine

import (
	"context"
	"sync"
	"time"

	"frostpaw/internal/storage"
)

// Vital decay per tick. The companion ages only while a session is open;
// closed-app time does not accrue.
const (
	DefaultDecayInterval = time.Minute

	decayHunger    = 1.0
	decayEnergy    = 0.5
	decayHappiness = 0.5
	decayHealth    = 0.3
)

func clampVital(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// TickDecay ages the companion's vitals by one tick and re-checks the stage
// against the current level. Decay never touches level or experience.
func TickDecay(c storage.Companion) storage.Companion {
	c.Hunger = clampVital(c.Hunger + decayHunger)
	c.Energy = clampVital(c.Energy - decayEnergy)
	c.Happiness = clampVital(c.Happiness - decayHappiness)
	c.Health = clampVital(c.Health - decayHealth)
	c.Stage = string(AdvanceStage(Stage(c.Stage), c.Level))
	return c
}

// DecayScheduler owns the recurring decay tick for one companion session.
// At most one timer runs per scheduler: Start after Start is a no-op, and
// Stop is safe to call any number of times.
type DecayScheduler struct {
	svc      *Service
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDecayScheduler(svc *Service, interval time.Duration) *DecayScheduler {
	if interval <= 0 {
		interval = DefaultDecayInterval
	}
	return &DecayScheduler{svc: svc, interval: interval}
}

func (d *DecayScheduler) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A failed tick (e.g. companion not adopted yet) is dropped;
				// the next tick retries.
				_, _ = d.svc.ApplyDecayTick(ctx)
			}
		}
	}(d.done)
}

func (d *DecayScheduler) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	done := d.done
	d.cancel = nil
	d.done = nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (d *DecayScheduler) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}
