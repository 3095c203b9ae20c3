package world

import (
	"time"

	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	"go.uber.org/zap"
)

// State is the in-memory simulation world: component stores, the two
// relation tables, and the collaborators room/occupancy mutations fan out
// to. Accessed only from the game loop goroutine — no locks.
type State struct {
	ecs   *ecs.World
	bus   *event.Bus
	sched *coresys.Lifecycle
	log   *zap.Logger
	now   func() time.Time

	Rooms       *ecs.Store[component.Room]
	Agents      *ecs.Store[component.Agent]
	Appearances *ecs.Store[component.Appearance]
	Stimuli     *ecs.Store[component.Stimulus]

	// Occupancy holds agent→room edges with the entry time as payload.
	// Invariant: at most one edge per agent after any completed transition.
	Occupancy *ecs.Relation[time.Time]

	// StimulusRooms holds weighted stimulus→room edges.
	StimulusRooms *ecs.Relation[component.RoomAffinity]
}

func NewState(w *ecs.World, bus *event.Bus, sched *coresys.Lifecycle, log *zap.Logger) *State {
	s := &State{
		ecs:   w,
		bus:   bus,
		sched: sched,
		log:   log,
		now:   time.Now,

		Rooms:       ecs.NewStore[component.Room](),
		Agents:      ecs.NewStore[component.Agent](),
		Appearances: ecs.NewStore[component.Appearance](),
		Stimuli:     ecs.NewStore[component.Stimulus](),

		Occupancy:     ecs.NewRelation[time.Time](),
		StimulusRooms: ecs.NewRelation[component.RoomAffinity](),
	}
	reg := w.Registry()
	reg.Register(s.Rooms)
	reg.Register(s.Agents)
	reg.Register(s.Appearances)
	reg.Register(s.Stimuli)
	reg.Register(s.Occupancy)
	reg.Register(s.StimulusRooms)
	return s
}

func (s *State) ECS() *ecs.World { return s.ecs }
func (s *State) Bus() *event.Bus { return s.bus }

// SetClock overrides the wall clock. Tests use this to pin timestamps.
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

// CreateAgent spawns an agent entity. withAppearance controls whether the
// agent carries the optional Appearance component.
func (s *State) CreateAgent(name string, withAppearance bool) ecs.EntityID {
	id := s.ecs.CreateEntity()
	s.Agents.Set(id, &component.Agent{Name: name})
	if withAppearance {
		s.Appearances.Set(id, &component.Appearance{
			CurrentAction: component.ActionPresent,
			LastUpdate:    s.now(),
		})
	}
	s.log.Debug("agent created", zap.Stringer("agent", id), zap.String("name", name))
	return id
}

// CreateStimulus spawns a stimulus entity. decay is the intensity drop per
// tick; zero means the stimulus never expires on its own.
func (s *State) CreateStimulus(kind string, intensity, decay float64) ecs.EntityID {
	id := s.ecs.CreateEntity()
	s.Stimuli.Set(id, &component.Stimulus{
		Kind:      kind,
		Intensity: intensity,
		Decay:     decay,
		CreatedAt: s.now(),
	})
	return id
}
