package actor

import "math"

// Roller is the random source used for combat rolls.
// Float64 must return a value in [0, 1); *rand.Rand from math/rand/v2 satisfies it.
type Roller interface {
	Float64() float64
}

// Attack rolls vary the base damage by ±25%.
const (
	attackSpreadLow   = 0.75
	attackSpreadWidth = 0.5
)

// Condition is a coarse description of a monster's remaining health.
type Condition string

const (
	ConditionHealthy  Condition = "Healthy"
	ConditionWounded  Condition = "Wounded"
	ConditionCritical Condition = "Critical"
	ConditionDefeated Condition = "Defeated"
)

// Monster represents a creature or enemy in the game world.
// Monsters are created by the world builder and never leave their room;
// a defeated monster stays in place with 0 HP.
type Monster struct {
	Health

	attackDamage     int
	experienceReward int
}

// NewMonster creates a monster at full health.
// attackDamage is floored at 1 and experienceReward at 0.
func NewMonster(name string, maxHP, attackDamage, experienceReward int) *Monster {
	return &Monster{
		Health:           NewHealth(name, maxHP),
		attackDamage:     max(1, attackDamage),
		experienceReward: max(0, experienceReward),
	}
}

// AttackDamage returns the base damage before the roll is applied.
func (m *Monster) AttackDamage() int {
	return m.attackDamage
}

// ExperienceReward returns the experience granted when the monster is defeated.
func (m *Monster) ExperienceReward() int {
	return m.experienceReward
}

// Attack returns a damage roll of round(AttackDamage * U) with U uniform in [0.75, 1.25).
// Every call draws a fresh value from r.
func (m *Monster) Attack(r Roller) int {
	u := attackSpreadLow + r.Float64()*attackSpreadWidth
	return int(math.Round(float64(m.attackDamage) * u))
}

// IsDefeated returns true once the monster's HP reaches 0.
func (m *Monster) IsDefeated() bool {
	return !m.IsAlive()
}

// Condition reports Healthy above 50% HP, Wounded above 25%, Critical otherwise.
func (m *Monster) Condition() Condition {
	switch pct := m.Percent(); {
	case !m.IsAlive():
		return ConditionDefeated
	case pct > 50:
		return ConditionHealthy
	case pct > 25:
		return ConditionWounded
	default:
		return ConditionCritical
	}
}
