// Package counter animates the marketing "impact" numbers: each counter
// climbs from 1 to its target in fixed steps, then the whole set restarts
// after a cycle period. The driver is an explicit timer resource with
// guaranteed teardown, not a free-running global.
package counter

import (
	"context"
	"sync"
	"time"
)

// Stat is one animated figure.
type Stat struct {
	Label  string
	Target int
	Suffix string
}

// Driver steps a set of counters toward their targets. Values reset to 1
// and climb again every cycle until the driver is stopped.
type Driver struct {
	stats []Stat
	step  time.Duration
	cycle time.Duration

	mu     sync.Mutex
	values []int
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Driver. step is the per-increment tick, cycle the restart
// period; both fall back to the storefront defaults when non-positive.
func New(stats []Stat, step, cycle time.Duration) *Driver {
	if step <= 0 {
		step = 30 * time.Millisecond
	}
	if cycle <= 0 {
		cycle = 5 * time.Second
	}
	values := make([]int, len(stats))
	for i := range values {
		values[i] = 1
	}
	return &Driver{
		stats:  stats,
		step:   step,
		cycle:  cycle,
		values: values,
	}
}

// Start begins animating under ctx. Calling Start on a running driver is a
// no-op; the driver can be restarted after Stop.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	done := make(chan struct{})
	d.done = done
	go d.run(runCtx, done)
}

// Stop cancels the animation and waits for the timer goroutine to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	done := d.done
	d.cancel = nil
	d.done = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Values returns the current counter values, index-aligned with the stats.
func (d *Driver) Values() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int, len(d.values))
	copy(out, d.values)
	return out
}

func (d *Driver) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	stepTicker := time.NewTicker(d.step)
	defer stepTicker.Stop()
	cycleTicker := time.NewTicker(d.cycle)
	defer cycleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stepTicker.C:
			d.advance()
		case <-cycleTicker.C:
			d.reset()
		}
	}
}

// advance moves every counter one step toward its target, in increments of
// ceil(target/100), clamped at the target.
func (d *Driver) advance() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, stat := range d.stats {
		if d.values[i] >= stat.Target {
			continue
		}
		inc := (stat.Target + 99) / 100
		if inc < 1 {
			inc = 1
		}
		d.values[i] += inc
		if d.values[i] > stat.Target {
			d.values[i] = stat.Target
		}
	}
}

func (d *Driver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.values {
		d.values[i] = 1
	}
}
