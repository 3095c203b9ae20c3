package world

import (
	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	"go.uber.org/zap"
)

// DefaultStimulusWeight is used when AddStimulusToRoom is called with a
// zero weight.
const DefaultStimulusWeight = 1.0

// AddStimulusToRoom creates or updates the weighted stimulus→room edge.
// Both entities must carry their components; otherwise the call logs and
// mutates nothing. Stimulus lifecycle (decay, destruction) is handled
// elsewhere — this only manages the association.
func (s *State) AddStimulusToRoom(stim, room ecs.EntityID, weight float64) {
	if !s.Stimuli.Has(stim) {
		s.log.Error("add stimulus: stimulus does not exist", zap.Stringer("stimulus", stim))
		return
	}
	if !s.Rooms.Has(room) {
		s.log.Error("add stimulus: room does not exist", zap.Stringer("room", room))
		return
	}
	if weight == 0 {
		weight = DefaultStimulusWeight
	}
	s.StimulusRooms.Set(stim, room, component.RoomAffinity{
		Weight: weight,
		Scope:  component.ScopeRoom,
	})
	s.log.Debug("stimulus bound to room",
		zap.Stringer("stimulus", stim),
		zap.Stringer("room", room),
		zap.Float64("weight", weight))
}

// RoomStimuli returns all stimuli with a live edge to room.
func (s *State) RoomStimuli(room ecs.EntityID) []ecs.EntityID {
	return s.StimulusRooms.Owners(room)
}
