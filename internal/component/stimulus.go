package component

import "time"

// Stimulus is a transient perceivable event. Intensity drops by Decay each
// tick; the decay system destroys the entity when it reaches zero.
type Stimulus struct {
	Kind      string
	Intensity float64
	Decay     float64
	CreatedAt time.Time
}

// RoomAffinity is the payload on a stimulus→room edge: how strongly the
// stimulus is perceived in that room, plus a fixed scope tag.
type RoomAffinity struct {
	Weight float64
	Scope  string
}

// ScopeRoom is the scope tag for room-bound stimuli.
const ScopeRoom = "room"
