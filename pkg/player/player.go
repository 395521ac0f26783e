// Package player holds the player character: health, inventory, equipped
// weapon, position in the world and level progression.
package player

import (
	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/item"
	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

const (
	StartingMaxHP  = 100
	UnarmedDamage  = 5
	DamagePerLevel = 2
	XPPerLevel     = 100

	levelUpHeal  = 20
	levelUpMaxHP = 10
)

// Player is the character controlled by the user.
// The equipped weapon and current room are handles into collections owned elsewhere.
type Player struct {
	actor.Health

	inventory  []item.Item
	equipped   *item.Weapon
	room       *world.Room
	level      int
	experience int
}

var _ item.Holder = (*Player)(nil)

// New creates a level 1 player with full health standing in start.
func New(name string, start *world.Room) *Player {
	return &Player{
		Health: actor.NewHealth(name, StartingMaxHP),
		room:   start,
		level:  1,
	}
}

// AddItem appends an item to the inventory. Duplicates are allowed.
func (p *Player) AddItem(it item.Item) {
	if it == nil {
		return
	}
	p.inventory = append(p.inventory, it)
}

// RemoveItem removes an item by identity and reports whether it was carried.
// Removing the equipped weapon also unequips it.
func (p *Player) RemoveItem(it item.Item) bool {
	var ok bool
	p.inventory, ok = item.Remove(p.inventory, it)
	if ok && p.equipped != nil && item.Item(p.equipped) == it {
		p.equipped = nil
	}
	return ok
}

// FindItem returns the first carried item named name, ignoring case.
func (p *Player) FindItem(name string) (item.Item, bool) {
	return item.Find(p.inventory, name)
}

// Inventory returns a copy of the carried items in pickup order.
func (p *Player) Inventory() []item.Item {
	return append([]item.Item(nil), p.inventory...)
}

// EquipWeapon makes w the active weapon. The previous weapon stays in the inventory.
func (p *Player) EquipWeapon(w *item.Weapon) {
	p.equipped = w
}

// EquippedWeapon returns the active weapon or nil.
func (p *Player) EquippedWeapon() *item.Weapon {
	return p.equipped
}

// CalculateDamage returns weapon damage (or 5 unarmed) plus 2 per level.
func (p *Player) CalculateDamage() int {
	base := UnarmedDamage
	if p.equipped != nil {
		base = p.equipped.Damage()
	}
	return base + p.level*DamagePerLevel
}

// GainExperience adds experience and levels up at most once, even if the grant
// crosses several thresholds. It reports whether a level was gained.
func (p *Player) GainExperience(amount int) bool {
	if amount < 0 {
		return false
	}
	p.experience += amount
	if p.experience >= p.NextLevelAt() {
		p.levelUp()
		return true
	}
	return false
}

// levelUp heals against the old cap before raising max HP.
func (p *Player) levelUp() {
	p.level++
	_ = p.Heal(levelUpHeal)
	p.RaiseMax(levelUpMaxHP)
}

// Level returns the current level, starting at 1.
func (p *Player) Level() int { return p.level }

// Experience returns the total experience earned.
func (p *Player) Experience() int { return p.experience }

// NextLevelAt returns the experience total needed for the next level.
func (p *Player) NextLevelAt() int { return p.level * XPPerLevel }

// CurrentRoom returns the room the player stands in.
func (p *Player) CurrentRoom() *world.Room { return p.room }

// MoveTo places the player in r.
func (p *Player) MoveTo(r *world.Room) {
	if r == nil {
		return
	}
	p.room = r
}
