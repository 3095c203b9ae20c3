package persist

import (
	"context"
	"fmt"
)

// RoomEventRow is one journal entry: a room event as observed at dispatch,
// payload already serialised. The journal is append-only and never read back
// to rebuild world state.
type RoomEventRow struct {
	RoomID  string
	Kind    string
	Payload []byte // JSON
	Tick    int64
}

type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

// InsertBatch writes a batch of journal rows in one transaction. Callers
// treat failure as best-effort: log and drop, never retry.
func (r *EventRepo) InsertBatch(ctx context.Context, rows []RoomEventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO room_events (room_id, kind, payload, tick)
			 VALUES ($1, $2, $3, $4)`,
			row.RoomID, row.Kind, row.Payload, row.Tick,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
