package component

import "time"

// Agent marks an entity as a simulated actor. Identity and behaviour live
// elsewhere; this core only needs the marker and a display name.
type Agent struct {
	Name string
}

// Appearance is the externally visible activity of an agent. Occupancy
// transitions overwrite CurrentAction; a one-shot on the next beforeSystems
// phase settles it back to ActionPresent. Optional — agents without an
// Appearance simply skip those side effects.
type Appearance struct {
	CurrentAction string
	LastUpdate    time.Time
}

const (
	ActionEntered = "entered the room"
	ActionPresent = "present"
	ActionIdle    = "idle"
)
