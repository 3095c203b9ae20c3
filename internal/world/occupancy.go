package world

import (
	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	"go.uber.org/zap"
)

// MoveAgentToRoom reassigns an agent's occupancy. The transition is total:
// it works from any prior state, including a corrupted multi-edge one, which
// it sweeps clean. An invalid target room leaves everything untouched.
//
// Side effects, in order: vacate events for every prior room, the new edge,
// the appearance update plus its beforeSystems one-shot, a state event for
// the new room, one world-state-changed signal.
func (s *State) MoveAgentToRoom(agent, room ecs.EntityID) {
	if !s.ecs.Alive(room) || !s.Rooms.Has(room) {
		s.log.Error("move agent: target room does not exist",
			zap.Stringer("agent", agent),
			zap.Stringer("room", room))
		return
	}

	// Sweep every existing edge, not just the expected single one.
	priors := s.Occupancy.Targets(agent)
	for _, prev := range priors {
		s.Occupancy.Unlink(agent, prev)
		s.log.Debug("agent left room",
			zap.Stringer("agent", agent),
			zap.Stringer("room", prev))
		s.EmitRoomEvent(prev, EventState, s.RoomState(prev))
	}

	now := s.now()
	s.Occupancy.SetExclusive(agent, room, now)

	if app, ok := s.Appearances.Get(agent); ok {
		app.CurrentAction = component.ActionEntered
		app.LastUpdate = now
		s.sched.Once(coresys.PhaseBeforeSystems, func() {
			// No cancellation on one-shots; the agent may be gone
			// by the time the phase fires.
			ap, ok := s.Appearances.Get(agent)
			if !ok {
				return
			}
			ap.CurrentAction = component.ActionPresent
			ap.LastUpdate = s.now()
		})
	}

	s.EmitRoomEvent(room, EventState, s.RoomState(room))

	var from ecs.EntityID
	if len(priors) > 0 {
		from = priors[0]
	}
	event.Emit(s.bus, event.AgentMoved{Agent: agent, From: from, To: room})
	s.notifyWorldStateChange()

	s.log.Debug("agent entered room",
		zap.Stringer("agent", agent),
		zap.Stringer("room", room))
}

// RoomOccupants returns the agents currently holding an edge to room, in
// arrival order.
func (s *State) RoomOccupants(room ecs.EntityID) []ecs.EntityID {
	return s.Occupancy.Owners(room)
}

// AgentRoom returns the room the agent occupies, or the zero handle. Trusts
// the at-most-one-edge invariant; does not re-validate it.
func (s *State) AgentRoom(agent ecs.EntityID) ecs.EntityID {
	targets := s.Occupancy.Targets(agent)
	if len(targets) == 0 {
		return 0
	}
	return targets[0]
}
