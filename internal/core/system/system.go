package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents        Phase = iota // 0: swap + dispatch last tick's events
	PhaseBeforeSystems              // 1: deferred one-shot corrections
	PhaseUpdate                     // 2: simulation logic (decay, hooks)
	PhaseAfterSystems               // 3: derived state (idle sweep)
	PhaseOutput                     // 4: observer feed
	PhasePersist                    // 5: event journal flush
	PhaseCleanup                    // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseEvents:
		return "events"
	case PhaseBeforeSystems:
		return "beforeSystems"
	case PhaseUpdate:
		return "update"
	case PhaseAfterSystems:
		return "afterSystems"
	case PhaseOutput:
		return "output"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
