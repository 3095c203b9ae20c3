package system

import (
	"encoding/json"
	"time"

	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	gonet "github.com/vivarium/server/internal/net"
	"go.uber.org/zap"
)

// BroadcastSystem pushes dispatched room events onto the websocket observer
// feed. Frames accumulate during dispatch and go out in the output phase, in
// emission order.
type BroadcastSystem struct {
	srv    *gonet.Server
	log    *zap.Logger
	frames [][]byte
	dirty  bool
}

type roomFrame struct {
	Room    ecs.EntityID `json:"room"`
	Kind    string       `json:"kind"`
	Payload any          `json:"payload,omitempty"`
}

func NewBroadcastSystem(bus *event.Bus, srv *gonet.Server, log *zap.Logger) *BroadcastSystem {
	s := &BroadcastSystem{
		srv:    srv,
		log:    log,
		frames: make([][]byte, 0, 64),
	}
	event.Subscribe(bus, func(ev event.RoomEvent) {
		frame, err := json.Marshal(roomFrame{Room: ev.Room, Kind: ev.Kind, Payload: ev.Payload})
		if err != nil {
			s.log.Warn("room event not serialisable", zap.String("kind", ev.Kind), zap.Error(err))
			return
		}
		s.frames = append(s.frames, frame)
	})
	event.Subscribe(bus, func(event.WorldStateChanged) {
		s.dirty = true
	})
	return s
}

func (s *BroadcastSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *BroadcastSystem) Update(_ time.Duration) {
	if s.srv.Observers() == 0 {
		s.frames = s.frames[:0]
		s.dirty = false
		return
	}
	for _, frame := range s.frames {
		s.srv.Broadcast(frame)
	}
	s.frames = s.frames[:0]
	if s.dirty {
		s.srv.Broadcast([]byte(`{"kind":"world_changed"}`))
		s.dirty = false
	}
}
