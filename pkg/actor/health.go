package actor

import (
	"errors"
	"fmt"
)

// ErrNegativeAmount is returned when damage or healing is negative.
// It indicates a caller bug rather than a gameplay outcome.
var ErrNegativeAmount = errors.New("amount cannot be negative")

// Health is the hit point pool shared by the player and monsters.
// HP always stays within [0, MaxHP].
type Health struct {
	name  string
	hp    int
	maxHP int
}

// NewHealth returns a full health pool. maxHP is raised to 1 if lower.
func NewHealth(name string, maxHP int) Health {
	if maxHP < 1 {
		maxHP = 1
	}
	return Health{
		name:  name,
		hp:    maxHP,
		maxHP: maxHP,
	}
}

// Name returns the display name of the entity.
func (h *Health) Name() string {
	return h.name
}

// HP returns the current hit points.
func (h *Health) HP() int {
	return h.hp
}

// MaxHP returns the maximum hit points.
func (h *Health) MaxHP() int {
	return h.maxHP
}

// TakeDamage reduces HP by n. HP cannot go below 0.
func (h *Health) TakeDamage(n int) error {
	if n < 0 {
		return fmt.Errorf("damage %d: %w", n, ErrNegativeAmount)
	}
	h.hp = max(0, h.hp-n)
	return nil
}

// Heal increases HP by n. HP cannot exceed MaxHP.
func (h *Health) Heal(n int) error {
	if n < 0 {
		return fmt.Errorf("healing %d: %w", n, ErrNegativeAmount)
	}
	h.hp = min(h.maxHP, h.hp+n)
	return nil
}

// IsAlive returns true while HP is above 0.
func (h *Health) IsAlive() bool {
	return h.hp > 0
}

// RaiseMax increases MaxHP without touching current HP.
func (h *Health) RaiseMax(n int) {
	if n <= 0 {
		return
	}
	h.maxHP += n
}

// HPString formats health as "current/max".
func (h *Health) HPString() string {
	return fmt.Sprintf("%d/%d", h.hp, h.maxHP)
}

// Percent returns current HP as a whole percentage of MaxHP.
func (h *Health) Percent() int {
	return h.hp * 100 / h.maxHP
}
