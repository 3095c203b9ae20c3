package system

import (
	"time"

	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	coresys "github.com/vivarium/server/internal/core/system"
	"github.com/vivarium/server/internal/world"
)

// IdleSystem marks agents idle when their appearance has not been touched
// for idleAfter. Only "present" decays to "idle"; transition actions set by
// the occupancy manager are left alone.
type IdleSystem struct {
	state     *world.State
	idleAfter time.Duration
	now       func() time.Time
}

func NewIdleSystem(state *world.State, idleAfter time.Duration) *IdleSystem {
	return &IdleSystem{state: state, idleAfter: idleAfter, now: time.Now}
}

// SetClock overrides the wall clock. Tests use this to pin timestamps.
func (s *IdleSystem) SetClock(now func() time.Time) {
	s.now = now
}

func (s *IdleSystem) Phase() coresys.Phase { return coresys.PhaseAfterSystems }

func (s *IdleSystem) Update(_ time.Duration) {
	if s.idleAfter <= 0 {
		return
	}
	cutoff := s.now().Add(-s.idleAfter)
	ecs.Each2(s.state.Agents, s.state.Appearances,
		func(_ ecs.EntityID, _ *component.Agent, app *component.Appearance) {
			if app.CurrentAction == component.ActionPresent && app.LastUpdate.Before(cutoff) {
				app.CurrentAction = component.ActionIdle
			}
		})
}
