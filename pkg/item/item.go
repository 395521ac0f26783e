// Package item defines the objects a player can carry: weapons and potions.
//
// Item is a closed set. The unexported sealed method keeps other packages from
// adding variants, so switches over Kind stay exhaustive.
package item

import (
	"fmt"

	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

// Kind discriminates the item variants.
type Kind string

const (
	KindWeapon Kind = "weapon"
	KindPotion Kind = "potion"
)

// Effect describes what using an item does to its holder.
type Effect int

const (
	// EffectEquip binds the item as the holder's active weapon. The item stays in inventory.
	EffectEquip Effect = iota + 1
	// EffectConsume applies the item once and removes it from inventory.
	EffectConsume
)

// Holder is the part of the player an item acts on.
type Holder interface {
	EquipWeapon(w *Weapon)
	Heal(n int) error
	RemoveItem(it Item) bool
}

// Item is anything that can lie in a room or be carried.
type Item interface {
	Name() string
	Description() string
	Kind() Kind
	Effect() Effect
	Use(h Holder) error
	String() string

	sealed()
}

type base struct {
	name        string
	description string
}

func (b base) Name() string        { return b.name }
func (b base) Description() string { return b.description }
func (b base) sealed()             {}

// Weapon raises the holder's attack damage while equipped.
type Weapon struct {
	base
	damage int
}

// NewWeapon creates a weapon. damage is floored at 1.
func NewWeapon(name, description string, damage int) *Weapon {
	return &Weapon{
		base:   base{name: name, description: description},
		damage: max(1, damage),
	}
}

// Damage returns the weapon's base damage.
func (w *Weapon) Damage() int { return w.damage }

func (w *Weapon) Kind() Kind     { return KindWeapon }
func (w *Weapon) Effect() Effect { return EffectEquip }

// Use equips the weapon. It is not removed from inventory.
func (w *Weapon) Use(h Holder) error {
	h.EquipWeapon(w)
	return nil
}

func (w *Weapon) String() string {
	return fmt.Sprintf("%s - %s [Damage: %d]", w.name, w.description, w.damage)
}

// Potion restores health once and is consumed.
type Potion struct {
	base
	healAmount int
}

// NewPotion creates a potion. healAmount is floored at 1.
func NewPotion(name, description string, healAmount int) *Potion {
	return &Potion{
		base:       base{name: name, description: description},
		healAmount: max(1, healAmount),
	}
}

// HealAmount returns the hit points the potion restores.
func (p *Potion) HealAmount() int { return p.healAmount }

func (p *Potion) Kind() Kind     { return KindPotion }
func (p *Potion) Effect() Effect { return EffectConsume }

// Use heals the holder and removes the potion from its inventory.
func (p *Potion) Use(h Holder) error {
	if err := h.Heal(p.healAmount); err != nil {
		return fmt.Errorf("use %s: %w", p.name, err)
	}
	h.RemoveItem(p)
	return nil
}

func (p *Potion) String() string {
	return fmt.Sprintf("%s - %s [Restore: %d HP]", p.name, p.description, p.healAmount)
}

// Find returns the first item whose name matches name, ignoring case.
func Find(items []Item, name string) (Item, bool) {
	want := textfilter.Fold(name)
	for _, it := range items {
		if textfilter.Fold(it.Name()) == want {
			return it, true
		}
	}
	return nil, false
}

// Remove deletes it from items by identity and reports whether it was present.
func Remove(items []Item, it Item) ([]Item, bool) {
	for i, candidate := range items {
		if candidate == it {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
