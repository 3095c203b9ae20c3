package world

import (
	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	"go.uber.org/zap"
)

// DefaultRoomName is assigned when a room is created without a name.
const DefaultRoomName = "New Room"

// CreateRoom allocates a room entity from a partial description. Empty
// fields fall back to defaults; an empty ID defaults to the entity handle
// stringified. Always succeeds; emits no event.
func (s *State) CreateRoom(data component.Room) ecs.EntityID {
	id := s.ecs.CreateEntity()
	room := &component.Room{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Type:        data.Type,
	}
	if room.ID == "" {
		room.ID = id.String()
	}
	if room.Name == "" {
		room.Name = DefaultRoomName
	}
	if room.Type == "" {
		room.Type = component.RoomTypePhysical
	}
	s.Rooms.Set(id, room)
	s.log.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("name", room.Name),
		zap.String("type", room.Type))
	return id
}

// RoomStates snapshots every room, in query order.
func (s *State) RoomStates() []RoomState {
	out := make([]RoomState, 0, s.Rooms.Len())
	s.Rooms.Each(func(id ecs.EntityID, _ *component.Room) {
		out = append(out, s.RoomState(id))
	})
	return out
}

// RoomByID scans all rooms for the first matching string ID. Returns the
// zero handle when nothing matches. Linear; room populations are small.
func (s *State) RoomByID(roomID string) ecs.EntityID {
	var found ecs.EntityID
	matched := false
	s.Rooms.Each(func(id ecs.EntityID, r *component.Room) {
		if !matched && r.ID == roomID {
			found = id
			matched = true
		}
	})
	return found
}

// DeleteRoom evicts every occupant, then destroys the room entity. Eviction
// comes first so no occupancy edge ever references a freed handle.
func (s *State) DeleteRoom(room ecs.EntityID) {
	r, ok := s.Rooms.Get(room)
	if !ok {
		s.log.Error("delete room: not a room", zap.Stringer("room", room))
		return
	}
	name := r.Name // read before the entity goes away
	for _, agent := range s.Occupancy.Owners(room) {
		s.Occupancy.Unlink(agent, room)
		s.log.Debug("agent evicted", zap.Stringer("agent", agent), zap.String("room", name))
	}
	s.log.Info("room deleted", zap.String("name", name))
	s.ecs.DestroyNow(room)
}

// RoomPatch is a partial room update. Nil fields keep their stored value.
type RoomPatch struct {
	ID          *string
	Name        *string
	Description *string
	Type        *string
}

// UpdateRoom merges a patch into the stored room and emits a "state" event
// with the refreshed snapshot. A room whose stored ID is empty was never
// fully initialised; the update is then a pure no-op — no log, no event.
func (s *State) UpdateRoom(room ecs.EntityID, patch RoomPatch) {
	r, ok := s.Rooms.Get(room)
	if !ok {
		s.log.Error("update room: not a room", zap.Stringer("room", room))
		return
	}
	if r.ID == "" {
		return
	}
	if patch.ID != nil {
		r.ID = *patch.ID
	}
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	s.EmitRoomEvent(room, EventState, s.RoomState(room))
}
