package system

import (
	"time"

	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
)

// EventDispatchSystem rotates the bus buffers and delivers last tick's
// events. Phase 0 — everything emitted during tick N is observed at the
// start of tick N+1.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
