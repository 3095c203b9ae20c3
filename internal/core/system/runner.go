package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. It also owns the
// lifecycle scheduler: before running a phase's systems it drains that
// phase's one-shot queue, so deferred corrections registered in tick N land
// at the phase boundary in tick N+1.
type Runner struct {
	systems   []System
	lifecycle *Lifecycle
	sorted    bool
}

func NewRunner(lifecycle *Lifecycle) *Runner {
	return &Runner{
		systems:   make([]System, 0, 16),
		lifecycle: lifecycle,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Lifecycle() *Lifecycle { return r.lifecycle }

// Tick walks every phase in order, draining one-shots then running systems.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	i := 0
	for phase := PhaseEvents; phase <= PhaseCleanup; phase++ {
		r.lifecycle.Drain(phase)
		for i < len(r.systems) && r.systems[i].Phase() == phase {
			r.systems[i].Update(dt)
			i++
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
