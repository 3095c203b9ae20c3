package world

import (
	"github.com/vivarium/server/internal/core/ecs"
)

// RoomState is an immutable point-in-time view of a room: its descriptive
// fields plus the occupants and stimuli bound to it. Serialised as-is onto
// the observer feed and into the event journal.
type RoomState struct {
	Entity      ecs.EntityID   `json:"entity"`
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Occupants   []ecs.EntityID `json:"occupants"`
	Stimuli     []StimulusRef  `json:"stimuli"`
}

// StimulusRef is a stimulus entry inside a room snapshot.
type StimulusRef struct {
	Entity ecs.EntityID `json:"entity"`
	Kind   string       `json:"kind"`
	Weight float64      `json:"weight"`
}

// RoomState builds the snapshot for a room handle. A handle that no longer
// resolves yields a snapshot with only Entity set.
func (s *State) RoomState(room ecs.EntityID) RoomState {
	state := RoomState{Entity: room}
	r, ok := s.Rooms.Get(room)
	if !ok {
		return state
	}
	state.ID = r.ID
	state.Name = r.Name
	state.Description = r.Description
	state.Type = r.Type
	state.Occupants = s.Occupancy.Owners(room)
	for _, stim := range s.StimulusRooms.Owners(room) {
		ref := StimulusRef{Entity: stim}
		if c, ok := s.Stimuli.Get(stim); ok {
			ref.Kind = c.Kind
		}
		if aff, ok := s.StimulusRooms.Get(stim, room); ok {
			ref.Weight = aff.Weight
		}
		state.Stimuli = append(state.Stimuli, ref)
	}
	return state
}
