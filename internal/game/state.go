// Package game runs the simulation: exploration, aggro, and the turn-based
// combat state machine over the actors of a loaded level.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is free movement; nearby enemies trigger combat.
	StateExplore State = iota
	// StateCombatPlayerInput waits for the player to confirm a destination.
	StateCombatPlayerInput
	// StateCombatPlayerResolve plays out the player's queued actions.
	StateCombatPlayerResolve
	// StateCombatEnemyAI plans the turn of the active enemy.
	StateCombatEnemyAI
	// StateCombatEnemyResolve plays out the active enemy's queued actions.
	StateCombatEnemyResolve
	// StateDefeat is terminal: the player has fallen.
	StateDefeat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombatPlayerInput:
		return "combat_player_input"
	case StateCombatPlayerResolve:
		return "combat_player_resolve"
	case StateCombatEnemyAI:
		return "combat_enemy_ai"
	case StateCombatEnemyResolve:
		return "combat_enemy_resolve"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// InCombat returns true for the four combat states.
func (s State) InCombat() bool {
	return s >= StateCombatPlayerInput && s <= StateCombatEnemyResolve
}
