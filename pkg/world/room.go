package world

import (
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/item"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

// Room is a location in the world with items, an optional monster and exits.
// Name and description never change; items and monster state change during play.
type Room struct {
	name        string
	description string
	items       []item.Item
	monster     *actor.Monster
	exits       map[string]*Room // folded direction → destination
	exitOrder   []string         // directions in registration order
}

// NewRoom creates an empty room with no exits.
func NewRoom(name, description string) *Room {
	return &Room{
		name:        name,
		description: description,
		exits:       make(map[string]*Room),
	}
}

func (r *Room) Name() string        { return r.name }
func (r *Room) Description() string { return r.description }

// SetExit registers or overwrites a one-way exit. Empty directions and nil rooms are ignored.
func (r *Room) SetExit(direction string, to *Room) {
	key := textfilter.Fold(direction)
	if key == "" || to == nil {
		return
	}
	if _, exists := r.exits[key]; !exists {
		r.exitOrder = append(r.exitOrder, key)
	}
	r.exits[key] = to
}

// Exit returns the room in the given direction, ignoring case.
func (r *Room) Exit(direction string) (*Room, bool) {
	to, ok := r.exits[textfilter.Fold(direction)]
	return to, ok
}

// ExitDirections returns the exit directions in registration order.
func (r *Room) ExitDirections() []string {
	return append([]string(nil), r.exitOrder...)
}

// Monster returns the room's monster, dead or alive, or nil.
func (r *Room) Monster() *actor.Monster {
	return r.monster
}

// SetMonster places a monster in the room, replacing any previous one.
func (r *Room) SetMonster(m *actor.Monster) {
	r.monster = m
}

// LivingMonster returns the room's monster only while it is alive.
func (r *Room) LivingMonster() (*actor.Monster, bool) {
	if r.monster == nil || !r.monster.IsAlive() {
		return nil, false
	}
	return r.monster, true
}

// AddItem appends an item. Nil items are ignored.
func (r *Room) AddItem(it item.Item) {
	if it == nil {
		return
	}
	r.items = append(r.items, it)
}

// RemoveItem removes an item by identity and reports whether it was here.
func (r *Room) RemoveItem(it item.Item) bool {
	var ok bool
	r.items, ok = item.Remove(r.items, it)
	return ok
}

// FindItem returns the first item named name, ignoring case.
func (r *Room) FindItem(name string) (item.Item, bool) {
	return item.Find(r.items, name)
}

// Items returns a copy of the items in the room.
func (r *Room) Items() []item.Item {
	return append([]item.Item(nil), r.items...)
}

// Describe renders the room for "look" and for arrival narration.
func (r *Room) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== " + r.name + " ===\n")
	sb.WriteString(r.description + "\n")

	if m, ok := r.LivingMonster(); ok {
		sb.WriteString("\n[Monster] " + m.Name() + " is here! (HP: " + m.HPString() + ")\n")
	}

	if len(r.items) > 0 {
		sb.WriteString("\nItems here:\n")
		for _, it := range r.items {
			sb.WriteString("  - " + it.String() + "\n")
		}
	}

	if len(r.exitOrder) > 0 {
		sb.WriteString("\nExits: " + strings.Join(r.exitOrder, ", ") + "\n")
	}

	return sb.String()
}
