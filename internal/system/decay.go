package system

import (
	"time"

	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	coresys "github.com/vivarium/server/internal/core/system"
	"github.com/vivarium/server/internal/world"
	"go.uber.org/zap"
)

// DecaySystem fades stimuli each tick and queues spent ones for
// destruction. Cleanup strips their room edges via the registry, so a
// destroyed stimulus never lingers in a room snapshot.
type DecaySystem struct {
	state *world.State
	log   *zap.Logger
}

func NewDecaySystem(state *world.State, log *zap.Logger) *DecaySystem {
	return &DecaySystem{state: state, log: log}
}

func (s *DecaySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DecaySystem) Update(_ time.Duration) {
	s.state.Stimuli.Each(func(id ecs.EntityID, stim *component.Stimulus) {
		if stim.Decay <= 0 {
			return // permanent stimulus
		}
		stim.Intensity -= stim.Decay
		if stim.Intensity <= 0 {
			s.state.ECS().MarkForDestruction(id)
			s.log.Debug("stimulus expired",
				zap.Stringer("stimulus", id),
				zap.String("kind", stim.Kind))
		}
	})
}
