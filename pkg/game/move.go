package game

import (
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

var directionAliases = map[string]string{
	"north": "north",
	"n":     "north",
	"south": "south",
	"s":     "south",
	"east":  "east",
	"e":     "east",
	"west":  "west",
	"w":     "west",
	"up":    "up",
	"u":     "up",
	"down":  "down",
	"d":     "down",
}

// ParseMove recognises movement input: "go <dir>", "move <dir>", a bare
// compass direction or its one-letter abbreviation. Directions after go/move
// are passed through unchanged apart from case folding.
func ParseMove(input string) (string, bool) {
	fields := strings.Fields(textfilter.Fold(input))
	switch len(fields) {
	case 1:
		dir, ok := directionAliases[fields[0]]
		return dir, ok
	case 2:
		if fields[0] != "go" && fields[0] != "move" {
			return "", false
		}
		if dir, ok := directionAliases[fields[1]]; ok {
			return dir, true
		}
		return fields[1], true
	default:
		return "", false
	}
}

// MovePlayer moves the player through the exit named direction. A living
// monster in the room being left blocks every exit.
func (c *Controller) MovePlayer(direction string) string {
	if !c.player.IsAlive() {
		return MsgGameOver
	}
	room := c.player.CurrentRoom()
	if m, ok := room.LivingMonster(); ok {
		return "A fierce " + m.Name() + " blocks your path!\nDefeat it first!"
	}

	next, ok := room.Exit(direction)
	if !ok {
		return "You cannot go " + direction + " from here."
	}

	c.player.MoveTo(next)
	c.disengage()
	c.logger.Debug("Player moved", "direction", direction, "room", next.Name())

	moved := "You moved " + direction + "."
	if m, ok := next.LivingMonster(); ok {
		c.engage(m)
		return moved + "\n\n[!] A " + m.Name() + " appears before you! (HP: " + m.HPString() + ")"
	}
	return moved
}
