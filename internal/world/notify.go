package world

import (
	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
)

// EventState tags the room event carrying a refreshed snapshot.
const EventState = "state"

// EmitRoomEvent queues a per-room notification. Fire-and-forget; the bus
// preserves emission order, which gives per-room ordering for free.
func (s *State) EmitRoomEvent(room ecs.EntityID, kind string, payload any) {
	event.Emit(s.bus, event.RoomEvent{Room: room, Kind: kind, Payload: payload})
}

// notifyWorldStateChange signals the runtime once per mutation batch.
func (s *State) notifyWorldStateChange() {
	event.Emit(s.bus, event.WorldStateChanged{})
}
