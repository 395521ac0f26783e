// Package world holds the room graph the game is played on and the JSON
// definitions it is built from.
package world

// World is an owned room graph with a designated starting room.
// Exits may form cycles, be one-way, or leave rooms unreachable.
type World struct {
	name       string
	playerName string
	rooms      map[string]*Room
	ids        []string // room ids in definition order
	start      *Room
	goal       *Room
}

// Name returns the title of the world.
func (w *World) Name() string { return w.name }

// PlayerName returns the default name for the player character.
func (w *World) PlayerName() string { return w.playerName }

// Start returns the room the player begins in.
func (w *World) Start() *Room { return w.start }

// Goal returns the room that wins the game once cleared, or nil if the world has none.
func (w *World) Goal() *Room { return w.goal }

// Room looks up a room by id.
func (w *World) Room(id string) (*Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// RoomIDs returns all room ids in definition order.
func (w *World) RoomIDs() []string {
	return append([]string(nil), w.ids...)
}

// Unreachable returns the ids of rooms that cannot be reached from the start room.
func (w *World) Unreachable() []string {
	seen := map[*Room]bool{w.start: true}
	queue := []*Room{w.start}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, dir := range r.exitOrder {
			next := r.exits[dir]
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []string
	for _, id := range w.ids {
		if !seen[w.rooms[id]] {
			out = append(out, id)
		}
	}
	return out
}
