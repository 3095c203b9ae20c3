package system

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	"github.com/vivarium/server/internal/persist"
	"github.com/vivarium/server/internal/world"
	"go.uber.org/zap"
)

// JournalSystem appends dispatched room events to the Postgres journal.
// Strictly best-effort: a failed flush is logged and the batch dropped. The
// journal is never read back, so losing rows cannot corrupt the simulation.
type JournalSystem struct {
	repo    *persist.EventRepo
	log     *zap.Logger
	timeout time.Duration
	tick    int64
	buf     []persist.RoomEventRow
}

func NewJournalSystem(bus *event.Bus, repo *persist.EventRepo, log *zap.Logger) *JournalSystem {
	s := &JournalSystem{
		repo:    repo,
		log:     log,
		timeout: 2 * time.Second,
		buf:     make([]persist.RoomEventRow, 0, 64),
	}
	event.Subscribe(bus, func(ev event.RoomEvent) {
		s.buf = append(s.buf, s.row(ev))
	})
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) Update(_ time.Duration) {
	s.tick++
	if len(s.buf) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.repo.InsertBatch(ctx, s.buf); err != nil {
		s.log.Warn("event journal flush failed", zap.Int("events", len(s.buf)), zap.Error(err))
	}
	s.buf = s.buf[:0]
}

func (s *JournalSystem) row(ev event.RoomEvent) persist.RoomEventRow {
	roomID := ev.Room.String()
	if state, ok := ev.Payload.(world.RoomState); ok && state.ID != "" {
		roomID = state.ID
	}
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	return persist.RoomEventRow{
		RoomID:  roomID,
		Kind:    ev.Kind,
		Payload: payload,
		Tick:    s.tick,
	}
}
