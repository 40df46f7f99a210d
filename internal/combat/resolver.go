// Package combat resolves melee attacks between combatants.
package combat

import "math/rand"

// Dice sizes for melee attacks.
const (
	AttackDie = 20
	DamageDie = 6
)

// Combatant is anything that can be attacked.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetDefense() int
	TakeDamage(amount int) int // Returns damage applied
}

// Dice produces uniform rolls in 1..sides.
type Dice interface {
	Roll(sides int) int
}

// RandDice rolls with a math/rand source, so a seeded source replays the same fight.
type RandDice struct {
	rng *rand.Rand
}

// NewRandDice wraps rng as Dice.
func NewRandDice(rng *rand.Rand) *RandDice {
	return &RandDice{rng: rng}
}

// Roll returns a value in 1..sides.
func (d *RandDice) Roll(sides int) int {
	return d.rng.Intn(sides) + 1
}

// AttackResult describes one resolved attack.
type AttackResult struct {
	AttackRoll int
	Hit        bool
	DamageRoll int  // Zero on a miss
	TargetHP   int  // Target hit points after the attack
	Killed     bool // Target dropped to zero or below on this attack
}

// Resolver rolls attacks.
type Resolver struct {
	dice Dice
}

// NewResolver creates a resolver drawing from dice.
func NewResolver(dice Dice) *Resolver {
	return &Resolver{dice: dice}
}

// Resolve rolls a d20 against the target's defense; on a hit it rolls a d6
// and applies that much damage. A miss changes nothing.
func (r *Resolver) Resolve(target Combatant) AttackResult {
	result := AttackResult{AttackRoll: r.dice.Roll(AttackDie)}

	if result.AttackRoll >= target.GetDefense() {
		result.Hit = true
		result.DamageRoll = r.dice.Roll(DamageDie)
		wasAlive := target.IsAlive()
		target.TakeDamage(result.DamageRoll)
		result.Killed = wasAlive && !target.IsAlive()
	}

	result.TargetHP = target.GetHP()
	return result
}

// HitChance returns the probability that a d20 roll meets defense.
func HitChance(defense int) float64 {
	switch {
	case defense <= 1:
		return 1
	case defense > AttackDie:
		return 0
	default:
		return float64(AttackDie-defense+1) / AttackDie
	}
}
