package system

import (
	"testing"
	"time"
)

func TestLifecycle_OnceSemantics(t *testing.T) {
	l := NewLifecycle()
	calls := 0
	l.Once(PhaseBeforeSystems, func() { calls++ })

	l.Drain(PhaseBeforeSystems)
	l.Drain(PhaseBeforeSystems)

	if calls != 1 {
		t.Fatalf("one-shot ran %d times, want 1", calls)
	}
}

func TestLifecycle_IndependentQueueing(t *testing.T) {
	l := NewLifecycle()
	calls := 0
	// Two registrations for the same phase queue independently.
	l.Once(PhaseBeforeSystems, func() { calls++ })
	l.Once(PhaseBeforeSystems, func() { calls++ })
	l.Once(PhaseUpdate, func() { calls += 10 })

	l.Drain(PhaseBeforeSystems)
	if calls != 2 {
		t.Fatalf("beforeSystems drain: calls = %d, want 2", calls)
	}
	l.Drain(PhaseUpdate)
	if calls != 12 {
		t.Fatalf("update drain: calls = %d, want 12", calls)
	}
}

func TestLifecycle_ReregisterDuringDrainDefers(t *testing.T) {
	l := NewLifecycle()
	calls := 0
	l.Once(PhaseBeforeSystems, func() {
		calls++
		l.Once(PhaseBeforeSystems, func() { calls++ })
	})

	l.Drain(PhaseBeforeSystems)
	if calls != 1 {
		t.Fatalf("nested one-shot ran in the same drain")
	}
	if l.Pending(PhaseBeforeSystems) != 1 {
		t.Fatalf("nested one-shot not queued for next occurrence")
	}
	l.Drain(PhaseBeforeSystems)
	if calls != 2 {
		t.Fatalf("nested one-shot never ran")
	}
}

type probeSystem struct {
	phase Phase
	fn    func()
}

func (p *probeSystem) Phase() Phase           { return p.phase }
func (p *probeSystem) Update(_ time.Duration) { p.fn() }

func TestRunner_PhaseOrderAndLifecycleDrain(t *testing.T) {
	l := NewLifecycle()
	r := NewRunner(l)

	var trace []string
	// Register out of order; the runner must sort by phase.
	r.Register(&probeSystem{phase: PhaseCleanup, fn: func() { trace = append(trace, "cleanup") }})
	r.Register(&probeSystem{phase: PhaseUpdate, fn: func() { trace = append(trace, "update") }})
	r.Register(&probeSystem{phase: PhaseBeforeSystems, fn: func() { trace = append(trace, "before-sys") }})

	l.Once(PhaseBeforeSystems, func() { trace = append(trace, "one-shot") })

	r.Tick(time.Millisecond)

	want := []string{"one-shot", "before-sys", "update", "cleanup"}
	if len(trace) != len(want) {
		t.Fatalf("trace %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q (full: %v)", i, trace[i], want[i], trace)
		}
	}

	// Second tick: the one-shot is gone, systems still run.
	trace = trace[:0]
	r.Tick(time.Millisecond)
	if len(trace) != 3 || trace[0] != "before-sys" {
		t.Fatalf("second tick trace: %v", trace)
	}
}
