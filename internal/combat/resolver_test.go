package combat

import (
	"math/rand"
	"testing"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name    string
	hp      int
	defense int
}

func newMockCombatant(name string, hp, defense int) *mockCombatant {
	return &mockCombatant{name: name, hp: hp, defense: defense}
}

func (m *mockCombatant) GetName() string { return m.name }
func (m *mockCombatant) IsAlive() bool   { return m.hp > 0 }
func (m *mockCombatant) GetHP() int      { return m.hp }
func (m *mockCombatant) GetDefense() int { return m.defense }

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	m.hp -= amount
	return amount
}

// scriptedDice returns preset rolls in order.
type scriptedDice struct {
	rolls []int
	sides []int
}

func (d *scriptedDice) Roll(sides int) int {
	d.sides = append(d.sides, sides)
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return r
}

func TestResolveHit(t *testing.T) {
	// Attack roll 15 vs defense 12 hits; damage roll 4
	dice := &scriptedDice{rolls: []int{15, 4}}
	target := newMockCombatant("Orc", 8, 12)

	result := NewResolver(dice).Resolve(target)

	if !result.Hit {
		t.Fatal("Expected roll 15 vs defense 12 to hit")
	}
	if result.DamageRoll != 4 {
		t.Errorf("DamageRoll = %d, want 4", result.DamageRoll)
	}
	if target.GetHP() != 4 {
		t.Errorf("Target HP = %d, want 4", target.GetHP())
	}
	if result.TargetHP != 4 {
		t.Errorf("TargetHP = %d, want 4", result.TargetHP)
	}
	if result.Killed {
		t.Error("Target with 4 HP left should not be killed")
	}
	if len(dice.sides) != 2 || dice.sides[0] != AttackDie || dice.sides[1] != DamageDie {
		t.Errorf("Dice sides rolled = %v, want [20 6]", dice.sides)
	}
}

func TestResolveMiss(t *testing.T) {
	dice := &scriptedDice{rolls: []int{11}}
	target := newMockCombatant("Orc", 8, 12)

	result := NewResolver(dice).Resolve(target)

	if result.Hit {
		t.Error("Expected roll 11 vs defense 12 to miss")
	}
	if result.DamageRoll != 0 {
		t.Errorf("DamageRoll = %d, want 0 on a miss", result.DamageRoll)
	}
	if target.GetHP() != 8 {
		t.Errorf("Target HP = %d, want unchanged 8", target.GetHP())
	}
	if len(dice.sides) != 1 {
		t.Errorf("A miss should roll once, rolled %d times", len(dice.sides))
	}
}

func TestResolveExactDefenseHits(t *testing.T) {
	dice := &scriptedDice{rolls: []int{13, 1}}
	target := newMockCombatant("Orc", 8, 13)

	if result := NewResolver(dice).Resolve(target); !result.Hit {
		t.Error("A roll equal to defense should hit")
	}
}

func TestResolveKill(t *testing.T) {
	dice := &scriptedDice{rolls: []int{20, 6}}
	target := newMockCombatant("Orc", 3, 12)

	result := NewResolver(dice).Resolve(target)

	if !result.Killed {
		t.Error("Expected the attack to kill the target")
	}
	if result.TargetHP != -3 {
		t.Errorf("TargetHP = %d, want -3", result.TargetHP)
	}
}

func TestResolveAlreadyDeadIsNotKilledAgain(t *testing.T) {
	dice := &scriptedDice{rolls: []int{20, 6}}
	target := newMockCombatant("Orc", 0, 12)

	if result := NewResolver(dice).Resolve(target); result.Killed {
		t.Error("A target already at 0 HP should not be reported as killed again")
	}
}

func TestRandDiceRange(t *testing.T) {
	dice := NewRandDice(rand.New(rand.NewSource(42)))
	seen := map[int]bool{}

	for i := 0; i < 2000; i++ {
		r := dice.Roll(AttackDie)
		if r < 1 || r > AttackDie {
			t.Fatalf("Roll(20) = %d, out of range", r)
		}
		seen[r] = true
	}
	if len(seen) != AttackDie {
		t.Errorf("Roll(20) produced %d distinct values, want 20", len(seen))
	}
}

func TestRandDiceDeterministic(t *testing.T) {
	a := NewRandDice(rand.New(rand.NewSource(7)))
	b := NewRandDice(rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		if x, y := a.Roll(DamageDie), b.Roll(DamageDie); x != y {
			t.Fatalf("Roll %d mismatch: %d != %d", i, x, y)
		}
	}
}

func TestHitChance(t *testing.T) {
	tests := []struct {
		defense int
		want    float64
	}{
		{0, 1},
		{1, 1},
		{12, 0.45},
		{13, 0.4},
		{20, 0.05},
		{21, 0},
	}

	for _, tt := range tests {
		if got := HitChance(tt.defense); got != tt.want {
			t.Errorf("HitChance(%d) = %v, want %v", tt.defense, got, tt.want)
		}
	}
}
