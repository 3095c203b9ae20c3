package event

import "github.com/vivarium/server/internal/core/ecs"

// RoomEvent is the per-room notification channel. Kind is a short verb tag
// ("state" for snapshot refreshes); Payload carries the room snapshot and is
// opaque to the bus.
type RoomEvent struct {
	Room    ecs.EntityID
	Kind    string
	Payload any
}

// AgentMoved fires once per completed occupancy transition. From is zero
// when the agent was previously unassigned.
type AgentMoved struct {
	Agent ecs.EntityID
	From  ecs.EntityID
	To    ecs.EntityID
}

// WorldStateChanged is the single coarse dirty signal per mutation batch,
// consumed by the observer feed.
type WorldStateChanged struct{}
