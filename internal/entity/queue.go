package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/cavetactics/internal/grid"
)

// MaxActions is the default number of pending actions a queue can hold.
const MaxActions = 100

// ErrCapacityExceeded is returned when a fixed-capacity collection is full.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ActionKind tags an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionAttack
)

// String returns a human-readable action name.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Action is one step of an actor's plan: move to an adjacent tile or
// attack another actor. Target is a non-owning reference.
type Action struct {
	Kind   ActionKind
	To     grid.Tile
	Target *Actor
}

// MoveTo builds a move action.
func MoveTo(t grid.Tile) Action {
	return Action{Kind: ActionMove, To: t}
}

// Attack builds an attack action.
func Attack(target *Actor) Action {
	return Action{Kind: ActionAttack, Target: target}
}

// Queue is a bounded FIFO of pending actions plus the action in progress.
// It is a ring buffer: head == tail means empty, and one slot stays unused
// so a full ring is distinguishable from an empty one.
type Queue struct {
	slots []Action
	head  int
	tail  int

	current  Action
	progress float64
}

// NewQueue creates a queue that holds up to capacity pending actions.
func NewQueue(capacity int) *Queue {
	return &Queue{slots: make([]Action, capacity+1)}
}

// Cap returns the number of pending actions the queue can hold.
func (q *Queue) Cap() int { return len(q.slots) - 1 }

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	n := q.tail - q.head
	if n < 0 {
		n += len(q.slots)
	}
	return n
}

// IsEmpty returns true if no actions are pending.
func (q *Queue) IsEmpty() bool { return q.head == q.tail }

// Current returns the action in progress, Kind ActionNone when idle.
func (q *Queue) Current() Action { return q.current }

// Progress returns the fraction of the current move completed.
func (q *Queue) Progress() float64 { return q.progress }

// Idle returns true if there is no action in progress.
func (q *Queue) Idle() bool { return q.current.Kind == ActionNone }

func (q *Queue) push(a Action) {
	q.slots[q.tail] = a
	q.tail++
	if q.tail >= len(q.slots) {
		q.tail = 0
	}
}

func (q *Queue) ensureRoom(n int) error {
	if free := q.Cap() - q.Len(); n > free {
		return fmt.Errorf("queue needs %d slots, %d free: %w", n, free, ErrCapacityExceeded)
	}
	return nil
}

// EnqueueMove appends a move to t.
func (q *Queue) EnqueueMove(t grid.Tile) error {
	if err := q.ensureRoom(1); err != nil {
		return err
	}
	q.push(MoveTo(t))
	return nil
}

// EnqueueMoves appends one move per tile of path. Nothing is enqueued if
// the whole path does not fit.
func (q *Queue) EnqueueMoves(path []grid.Tile) error {
	if err := q.ensureRoom(len(path)); err != nil {
		return err
	}
	for _, t := range path {
		q.push(MoveTo(t))
	}
	return nil
}

// EnqueueAttack appends an attack on target.
func (q *Queue) EnqueueAttack(target *Actor) error {
	if err := q.ensureRoom(1); err != nil {
		return err
	}
	q.push(Attack(target))
	return nil
}

// Dequeue removes and returns the front action. ok is false when empty.
func (q *Queue) Dequeue() (a Action, ok bool) {
	if q.IsEmpty() {
		return Action{}, false
	}
	a = q.slots[q.head]
	q.slots[q.head] = Action{}
	q.head++
	if q.head >= len(q.slots) {
		q.head = 0
	}
	return a, true
}

// Clear drops every pending action and abandons the current one. A move
// that already committed to the grid is not undone.
func (q *Queue) Clear() {
	for q.head != q.tail {
		q.Dequeue()
	}
	q.current = Action{}
	q.progress = 0
}
