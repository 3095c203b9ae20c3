package world

import (
	"time"

	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	"go.uber.org/zap"
)

// newTestState builds a bare world with a nop logger. Tests drive the bus
// and lifecycle scheduler by hand instead of running the full tick loop.
func newTestState() (*State, *coresys.Lifecycle) {
	sched := coresys.NewLifecycle()
	return NewState(ecs.NewWorld(), event.NewBus(), sched, zap.NewNop()), sched
}

// collectRoomEvents subscribes a recorder for RoomEvent. Call pump to
// deliver what has been emitted so far.
func collectRoomEvents(s *State) *[]event.RoomEvent {
	var got []event.RoomEvent
	event.Subscribe(s.Bus(), func(ev event.RoomEvent) {
		got = append(got, ev)
	})
	return &got
}

func pump(s *State) {
	s.Bus().SwapBuffers()
	s.Bus().DispatchAll()
}

func contains(ids []ecs.EntityID, id ecs.EntityID) bool {
	for _, e := range ids {
		if e == id {
			return true
		}
	}
	return false
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
