package counter

import (
	"context"
	"testing"
	"time"
)

func TestAdvanceStepsTowardTargetsAndClamps(t *testing.T) {
	d := New([]Stat{
		{Label: "Customer Satisfaction", Target: 99, Suffix: "%"},
		{Label: "Covers Sold", Target: 50, Suffix: "M+"},
	}, time.Millisecond, time.Hour)

	// 99 climbs in steps of 1, 50 in steps of 1; after 200 advances both
	// must sit exactly on their targets.
	for i := 0; i < 200; i++ {
		d.advance()
	}

	values := d.Values()
	if values[0] != 99 || values[1] != 50 {
		t.Fatalf("expected values [99 50], got %v", values)
	}
}

func TestAdvanceUsesCeilStep(t *testing.T) {
	d := New([]Stat{{Label: "Unique Designs", Target: 150, Suffix: "+"}}, time.Millisecond, time.Hour)

	d.advance()

	// ceil(150/100) = 2, starting from 1.
	if got := d.Values()[0]; got != 3 {
		t.Fatalf("expected 3 after one step, got %d", got)
	}
}

func TestResetReturnsValuesToOne(t *testing.T) {
	d := New([]Stat{{Label: "Covers Sold", Target: 50, Suffix: "M+"}}, time.Millisecond, time.Hour)
	for i := 0; i < 10; i++ {
		d.advance()
	}

	d.reset()

	if got := d.Values()[0]; got != 1 {
		t.Fatalf("expected reset to 1, got %d", got)
	}
}

func TestStartAnimatesAndStopTearsDown(t *testing.T) {
	d := New([]Stat{{Label: "Covers Sold", Target: 50, Suffix: "M+"}}, time.Millisecond, time.Hour)

	d.Start(context.Background())

	deadline := time.After(time.Second)
	for d.Values()[0] < 50 {
		select {
		case <-deadline:
			t.Fatalf("counter never reached target, stuck at %d", d.Values()[0])
		case <-time.After(5 * time.Millisecond):
		}
	}

	d.Stop()

	// A stopped driver no longer moves, even after a reset.
	d.reset()
	time.Sleep(20 * time.Millisecond)
	if got := d.Values()[0]; got != 1 {
		t.Fatalf("driver still running after Stop: %d", got)
	}
}

func TestStartIsIdempotentAndRestartable(t *testing.T) {
	d := New([]Stat{{Label: "Covers Sold", Target: 50, Suffix: "M+"}}, time.Millisecond, time.Hour)

	d.Start(context.Background())
	d.Start(context.Background())
	d.Stop()

	d.Start(context.Background())
	defer d.Stop()

	deadline := time.After(time.Second)
	for d.Values()[0] < 2 {
		select {
		case <-deadline:
			t.Fatalf("restarted driver never advanced")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStopWithoutStartIsSafe(t *testing.T) {
	d := New([]Stat{{Label: "Covers Sold", Target: 50, Suffix: "M+"}}, 0, 0)
	d.Stop()
}
