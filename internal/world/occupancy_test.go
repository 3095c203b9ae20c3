package world

import (
	"testing"
	"time"

	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
)

func TestMoveAgent_ExclusiveOccupancy(t *testing.T) {
	s, _ := newTestState()
	r1 := s.CreateRoom(component.Room{ID: "r1"})
	r2 := s.CreateRoom(component.Room{ID: "r2"})
	a := s.CreateAgent("ada", false)

	s.MoveAgentToRoom(a, r1)
	s.MoveAgentToRoom(a, r2)

	if got := s.AgentRoom(a); got != r2 {
		t.Fatalf("AgentRoom: got %v want %v", got, r2)
	}
	if contains(s.RoomOccupants(r1), a) {
		t.Fatalf("agent still occupies the vacated room")
	}
	if !contains(s.RoomOccupants(r2), a) {
		t.Fatalf("agent missing from the new room")
	}
}

func TestMoveAgent_FirstCreatedRoomReportsAsOccupied(t *testing.T) {
	s, _ := newTestState()
	// First entity in a fresh world; must not look like the unassigned
	// sentinel once occupied.
	room := s.CreateRoom(component.Room{ID: "hall"})
	a := s.CreateAgent("ada", false)

	s.MoveAgentToRoom(a, room)

	got := s.AgentRoom(a)
	if got.IsZero() {
		t.Fatalf("occupied agent reports as unassigned")
	}
	if got != room {
		t.Fatalf("AgentRoom: got %v want %v", got, room)
	}
}

func TestMoveAgent_InvalidRoomIsNoOp(t *testing.T) {
	s, sched := newTestState()
	r1 := s.CreateRoom(component.Room{ID: "r1"})
	a := s.CreateAgent("ada", true)
	s.MoveAgentToRoom(a, r1)
	pump(s) // clear the events from the setup move
	got := collectRoomEvents(s)
	queued := sched.Pending(coresys.PhaseBeforeSystems)

	dead := s.CreateRoom(component.Room{ID: "gone"})
	s.DeleteRoom(dead)
	s.MoveAgentToRoom(a, dead)
	pump(s)

	if s.AgentRoom(a) != r1 {
		t.Fatalf("occupancy changed by a failed move")
	}
	if len(*got) != 0 {
		t.Fatalf("failed move emitted %d events", len(*got))
	}
	if sched.Pending(coresys.PhaseBeforeSystems) != queued {
		t.Fatalf("failed move queued a one-shot")
	}
}

func TestMoveAgent_NonRoomEntityIsNoOp(t *testing.T) {
	s, _ := newTestState()
	a := s.CreateAgent("ada", false)
	notARoom := s.CreateAgent("ben", false)

	s.MoveAgentToRoom(a, notARoom)

	if !s.AgentRoom(a).IsZero() {
		t.Fatalf("agent assigned to a non-room entity")
	}
}

func TestMoveAgent_VacateEventsBeforeEnter(t *testing.T) {
	s, _ := newTestState()
	r1 := s.CreateRoom(component.Room{ID: "r1"})
	r2 := s.CreateRoom(component.Room{ID: "r2"})
	a := s.CreateAgent("ada", false)
	s.MoveAgentToRoom(a, r1)
	pump(s)
	got := collectRoomEvents(s)

	s.MoveAgentToRoom(a, r2)
	pump(s)

	if len(*got) != 2 {
		t.Fatalf("transition emitted %d events, want 2", len(*got))
	}
	if (*got)[0].Room != r1 || (*got)[0].Kind != EventState {
		t.Fatalf("first event is not the vacate for r1: %+v", (*got)[0])
	}
	if (*got)[1].Room != r2 {
		t.Fatalf("second event is not the enter for r2: %+v", (*got)[1])
	}
	// The vacate snapshot must already exclude the agent.
	vacated := (*got)[0].Payload.(RoomState)
	if contains(vacated.Occupants, a) {
		t.Fatalf("vacate snapshot still lists the agent")
	}
}

func TestMoveAgent_SelfHealsDuplicateEdges(t *testing.T) {
	s, _ := newTestState()
	r1 := s.CreateRoom(component.Room{ID: "r1"})
	r2 := s.CreateRoom(component.Room{ID: "r2"})
	r3 := s.CreateRoom(component.Room{ID: "r3"})
	a := s.CreateAgent("ada", false)

	// Corrupt the relation behind the manager's back.
	s.Occupancy.Set(a, r1, time.Time{})
	s.Occupancy.Set(a, r2, time.Time{})
	got := collectRoomEvents(s)

	s.MoveAgentToRoom(a, r3)
	pump(s)

	if targets := s.Occupancy.Targets(a); len(targets) != 1 || targets[0] != r3 {
		t.Fatalf("corruption not healed: %v", targets)
	}
	// Both stale rooms got a vacate event, then the new room its enter.
	if len(*got) != 3 {
		t.Fatalf("got %d events, want 3", len(*got))
	}
	if (*got)[0].Room != r1 || (*got)[1].Room != r2 || (*got)[2].Room != r3 {
		t.Fatalf("event order wrong: %v %v %v", (*got)[0].Room, (*got)[1].Room, (*got)[2].Room)
	}
}

func TestMoveAgent_AppearanceTransition(t *testing.T) {
	s, sched := newTestState()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.SetClock(fixedClock(at))
	room := s.CreateRoom(component.Room{ID: "hall"})
	a := s.CreateAgent("ada", true)

	s.MoveAgentToRoom(a, room)

	app, _ := s.Appearances.Get(a)
	if app.CurrentAction != component.ActionEntered {
		t.Fatalf("action after move: got %q want %q", app.CurrentAction, component.ActionEntered)
	}
	if !app.LastUpdate.Equal(at) {
		t.Fatalf("LastUpdate not stamped: %v", app.LastUpdate)
	}

	// The correction fires on the next beforeSystems occurrence, once.
	later := at.Add(time.Second)
	s.SetClock(fixedClock(later))
	sched.Drain(coresys.PhaseBeforeSystems)

	if app.CurrentAction != component.ActionPresent {
		t.Fatalf("action after phase: got %q want %q", app.CurrentAction, component.ActionPresent)
	}
	if !app.LastUpdate.Equal(later) {
		t.Fatalf("LastUpdate not refreshed by the one-shot")
	}
	if sched.Pending(coresys.PhaseBeforeSystems) != 0 {
		t.Fatalf("one-shot still queued after firing")
	}
}

func TestMoveAgent_NoAppearanceSkipsSideEffect(t *testing.T) {
	s, sched := newTestState()
	room := s.CreateRoom(component.Room{ID: "hall"})
	a := s.CreateAgent("ada", false)

	s.MoveAgentToRoom(a, room)

	if sched.Pending(coresys.PhaseBeforeSystems) != 0 {
		t.Fatalf("one-shot queued for an agent without Appearance")
	}
	if got := s.AgentRoom(a); got != room {
		t.Fatalf("move failed without Appearance: %v", got)
	}
}

func TestMoveAgent_OneShotSurvivesAgentRemoval(t *testing.T) {
	s, sched := newTestState()
	room := s.CreateRoom(component.Room{ID: "hall"})
	a := s.CreateAgent("ada", true)
	s.MoveAgentToRoom(a, room)

	// The agent disappears before the phase fires; the callback must cope.
	s.ECS().DestroyNow(a)
	sched.Drain(coresys.PhaseBeforeSystems)
}

func TestMoveAgent_SignalsWorldStateChangeOnce(t *testing.T) {
	s, _ := newTestState()
	room := s.CreateRoom(component.Room{ID: "hall"})
	a := s.CreateAgent("ada", true)

	s.MoveAgentToRoom(a, room)

	if got := event.Pending[event.WorldStateChanged](s.Bus()); got != 1 {
		t.Fatalf("world-state-changed signalled %d times, want 1", got)
	}
}

func TestMoveAgent_EmitsAgentMoved(t *testing.T) {
	s, _ := newTestState()
	r1 := s.CreateRoom(component.Room{ID: "r1"})
	r2 := s.CreateRoom(component.Room{ID: "r2"})
	a := s.CreateAgent("ada", false)
	var moves []event.AgentMoved
	event.Subscribe(s.Bus(), func(ev event.AgentMoved) {
		moves = append(moves, ev)
	})

	s.MoveAgentToRoom(a, r1)
	s.MoveAgentToRoom(a, r2)
	pump(s)

	if len(moves) != 2 {
		t.Fatalf("got %d AgentMoved events, want 2", len(moves))
	}
	if !moves[0].From.IsZero() || moves[0].To != r1 {
		t.Fatalf("first move wrong: %+v", moves[0])
	}
	if moves[1].From != r1 || moves[1].To != r2 {
		t.Fatalf("second move wrong: %+v", moves[1])
	}
}

func TestEndToEnd_HallEntry(t *testing.T) {
	s, sched := newTestState()
	room := s.CreateRoom(component.Room{Name: "Hall"})
	a := s.CreateAgent("ada", true)

	s.MoveAgentToRoom(a, room)

	if got := s.AgentRoom(a); got != room {
		t.Fatalf("AgentRoom: got %v want %v", got, room)
	}
	occ := s.RoomOccupants(room)
	if len(occ) != 1 || occ[0] != a {
		t.Fatalf("RoomOccupants: got %v want [%v]", occ, a)
	}
	app, _ := s.Appearances.Get(a)
	if app.CurrentAction != component.ActionEntered {
		t.Fatalf("immediately after the call: %q", app.CurrentAction)
	}

	// Only the next beforeSystems occurrence settles the action.
	sched.Drain(coresys.PhaseUpdate)
	if app.CurrentAction != component.ActionEntered {
		t.Fatalf("unrelated phase changed the action")
	}
	sched.Drain(coresys.PhaseBeforeSystems)
	if app.CurrentAction != component.ActionPresent {
		t.Fatalf("after beforeSystems: %q", app.CurrentAction)
	}
}

func TestAgentRoom_Unassigned(t *testing.T) {
	s, _ := newTestState()
	a := s.CreateAgent("ada", false)
	if got := s.AgentRoom(a); !got.IsZero() {
		t.Fatalf("unassigned agent reports room %v", got)
	}
}
