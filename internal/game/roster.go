package game

import (
	"fmt"
	"slices"

	"github.com/samdwyer/cavetactics/internal/entity"
)

// MaxEnemies is the number of enemies that can be engaged at once.
const MaxEnemies = 10

// ErrCapacityExceeded is returned when the roster is full.
var ErrCapacityExceeded = entity.ErrCapacityExceeded

// Roster is the ordered set of enemies engaged with the player. Order is
// turn order within the enemy phase. It holds non-owning references.
type Roster struct {
	members []*entity.Actor
	limit   int
}

// NewRoster creates an empty roster holding at most limit enemies.
func NewRoster(limit int) *Roster {
	return &Roster{members: make([]*entity.Actor, 0, limit), limit: limit}
}

// Add engages a at the end of the turn order. Adding an enemy already
// engaged is a no-op.
func (r *Roster) Add(a *entity.Actor) error {
	if r.Contains(a) {
		return nil
	}
	if len(r.members) >= r.limit {
		return fmt.Errorf("roster full at %d enemies, cannot engage %s: %w", r.limit, a.Name, ErrCapacityExceeded)
	}
	r.members = append(r.members, a)
	return nil
}

// Remove disengages a, keeping the order of the rest. It returns false if
// a was not engaged.
func (r *Roster) Remove(a *entity.Actor) bool {
	i := slices.Index(r.members, a)
	if i < 0 {
		return false
	}
	r.members = slices.Delete(r.members, i, i+1)
	return true
}

// Contains returns true if a is engaged.
func (r *Roster) Contains(a *entity.Actor) bool {
	return slices.Contains(r.members, a)
}

// Len returns the number of engaged enemies.
func (r *Roster) Len() int { return len(r.members) }

// IsEmpty returns true if no enemy is engaged.
func (r *Roster) IsEmpty() bool { return len(r.members) == 0 }

// At returns the enemy acting at turn index i, or nil.
func (r *Roster) At(i int) *entity.Actor {
	if i < 0 || i >= len(r.members) {
		return nil
	}
	return r.members[i]
}

// Members returns a copy of the engaged enemies in turn order.
func (r *Roster) Members() []*entity.Actor {
	return slices.Clone(r.members)
}
