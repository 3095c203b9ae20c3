package system

// Lifecycle holds one-shot callbacks keyed to a tick phase. Each callback
// runs exactly once, on the next occurrence of its phase after registration,
// and is then discarded. Registrations queue independently — two callbacks
// for the same entity and phase both fire, in registration order. There is
// no cancellation: callbacks that may outlive their subject must check it
// themselves.
type Lifecycle struct {
	queues map[Phase][]func()
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		queues: make(map[Phase][]func(), 8),
	}
}

// Once registers fn to run at the next occurrence of phase.
func (l *Lifecycle) Once(phase Phase, fn func()) {
	l.queues[phase] = append(l.queues[phase], fn)
}

// Pending reports how many callbacks are queued for phase.
func (l *Lifecycle) Pending(phase Phase) int {
	return len(l.queues[phase])
}

// Drain runs and discards every callback queued for phase. The queue is
// detached first, so a callback registering another one-shot for the same
// phase defers it to the next tick rather than the current drain.
func (l *Lifecycle) Drain(phase Phase) {
	queue := l.queues[phase]
	if len(queue) == 0 {
		return
	}
	delete(l.queues, phase)
	for _, fn := range queue {
		fn()
	}
}
