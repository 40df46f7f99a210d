package entity

import "github.com/samdwyer/cavetactics/internal/grid"

// Stage is what an actor's actions act upon. The simulation implements it
// so the queue never touches the occupancy grid or other actors directly.
type Stage interface {
	// CommitMove moves a onto an adjacent tile, updating occupancy. It
	// returns false if the tile is no longer free.
	CommitMove(a *Actor, to grid.Tile) bool
	// ResolveAttack carries out one complete attack by a on target.
	ResolveAttack(a, target *Actor)
}

// Advance runs a's queue forward by dt seconds at speed tiles per second.
//
// An idle queue only picks up its next action. A move accumulates progress
// and commits each time progress reaches a whole tile; leftover progress
// carries into a following move and is dropped before an attack. An attack
// resolves completely in the call that finds it current.
func (a *Actor) Advance(dt, speed float64, stage Stage) {
	q := a.Queue

	switch q.current.Kind {
	case ActionNone:
		if next, ok := q.Dequeue(); ok {
			q.current = next
			q.progress = 0
		}

	case ActionMove:
		q.progress += speed * dt
		for q.current.Kind == ActionMove && q.progress >= 1 {
			if !stage.CommitMove(a, q.current.To) {
				q.Clear()
				break
			}
			next, ok := q.Dequeue()
			switch {
			case !ok:
				q.current = Action{}
				q.progress = 0
			case next.Kind == ActionMove:
				q.current = next
				q.progress--
			default:
				q.current = next
				q.progress = 0
			}
		}

	case ActionAttack:
		if target := q.current.Target; target != nil {
			stage.ResolveAttack(a, target)
		}
		q.current = Action{}
		q.progress = 0
	}

	a.updateOffset()
}

func (a *Actor) updateOffset() {
	q := a.Queue
	if q.current.Kind != ActionMove {
		a.Offset = Offset{}
		return
	}
	a.Offset = Offset{
		X: float64(q.current.To.X-a.Pos.X) * q.progress,
		Y: float64(q.current.To.Y-a.Pos.Y) * q.progress,
	}
}

// ResetOffset snaps the drawing offset back onto the logical tile.
func (a *Actor) ResetOffset() {
	a.Offset = Offset{}
}
