package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jwebster45206/dungeon-engine/pkg/item"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

type CommandType string

const (
	CmdGet       CommandType = "get"
	CmdDrop      CommandType = "drop"
	CmdInventory CommandType = "inventory"
	CmdUse       CommandType = "use"
	CmdAttack    CommandType = "attack"
	CmdLook      CommandType = "look"
	CmdStats     CommandType = "stats"
	CmdHelp      CommandType = "help"
	CmdNone      CommandType = "" // unrecognised or blank input
)

const (
	MsgUnknownCommand = "Unknown command. Type 'help' for available commands."
	MsgTakeWhat       = "What do you want to take?"
	MsgItemNotHere    = "That item is not here."
	MsgDropWhat       = "What do you want to drop?"
	MsgNotCarried     = "You don't have that item."
	MsgUseWhat        = "What do you want to use?"
	MsgNothingToFight = "There's nothing to attack here!"
	MsgGameOver       = "You have been defeated. Your adventure is over."
	MsgInternalError  = "Something went wrong."
)

const helpText = "=== AVAILABLE COMMANDS ===\n" +
	"Movement:\n" +
	"  go <direction> (north, south, east, west, up, down)\n\n" +
	"Items:\n" +
	"  get <item> - Pick up item\n" +
	"  drop <item> - Drop item\n" +
	"  inventory/i - Show inventory\n" +
	"  use <item> - Use/equip item\n\n" +
	"Combat:\n" +
	"  attack - Attack monster\n\n" +
	"Other:\n" +
	"  look - Describe room\n" +
	"  stats - Show player stats\n" +
	"  help - Show this message"

var knownCommands = map[string]CommandType{
	"get":       CmdGet,
	"take":      CmdGet,
	"drop":      CmdDrop,
	"inventory": CmdInventory,
	"i":         CmdInventory,
	"use":       CmdUse,
	"attack":    CmdAttack,
	"look":      CmdLook,
	"stats":     CmdStats,
	"help":      CmdHelp,
}

// parseCommand splits input into a case-insensitive verb and the rest of the
// line as a single argument. Unknown verbs return CmdNone.
func parseCommand(input string) (CommandType, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CmdNone, ""
	}
	verb, arg := trimmed, ""
	if i := strings.IndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		verb, arg = trimmed[:i], strings.TrimSpace(trimmed[i:])
	}
	cmd, ok := knownCommands[textfilter.Fold(verb)]
	if !ok {
		return CmdNone, ""
	}
	return cmd, arg
}

// ExecuteCommand interprets one line of player input and returns the narration.
// Movement is not a command here; see MovePlayer and ParseMove.
func (c *Controller) ExecuteCommand(input string) string {
	cmd, arg := parseCommand(input)
	c.logger.Debug("Executing command", "command", string(cmd), "argument", arg)

	switch cmd {
	case CmdGet, CmdDrop, CmdUse, CmdAttack:
		if !c.player.IsAlive() {
			return MsgGameOver
		}
	}

	switch cmd {
	case CmdGet:
		return c.handleGet(arg)
	case CmdDrop:
		return c.handleDrop(arg)
	case CmdInventory:
		return c.DescribeInventory()
	case CmdUse:
		return c.handleUse(arg)
	case CmdAttack:
		return c.attack()
	case CmdLook:
		return c.player.CurrentRoom().Describe()
	case CmdStats:
		return c.DescribeStats()
	case CmdHelp:
		return helpText
	default:
		return MsgUnknownCommand
	}
}

func (c *Controller) handleGet(name string) string {
	if name == "" {
		return MsgTakeWhat
	}
	room := c.player.CurrentRoom()
	it, ok := room.FindItem(name)
	if !ok {
		return MsgItemNotHere
	}
	room.RemoveItem(it)
	c.player.AddItem(it)
	return "You picked up: " + it.Name()
}

func (c *Controller) handleDrop(name string) string {
	if name == "" {
		return MsgDropWhat
	}
	it, ok := c.player.FindItem(name)
	if !ok {
		return MsgNotCarried
	}
	c.player.RemoveItem(it)
	c.player.CurrentRoom().AddItem(it)
	return "You dropped: " + it.Name()
}

func (c *Controller) handleUse(name string) string {
	if name == "" {
		return MsgUseWhat
	}
	it, ok := c.player.FindItem(name)
	if !ok {
		return MsgNotCarried
	}
	if err := it.Use(c.player); err != nil {
		c.logger.Error("Failed to use item", "item", it.Name(), "error", err)
		return MsgInternalError
	}

	switch it.Effect() {
	case item.EffectEquip:
		return "You equipped: " + it.Name()
	case item.EffectConsume:
		return "You used: " + it.Name() + ". You feel refreshed!"
	default:
		return "You used: " + it.Name()
	}
}

// DescribeInventory lists carried items. The equipped weapon is flagged once
// and left out of the general list.
func (c *Controller) DescribeInventory() string {
	inv := c.player.Inventory()
	var sb strings.Builder
	sb.WriteString("=== INVENTORY ===\n")
	fmt.Fprintf(&sb, "Items: %d\n\n", len(inv))

	if len(inv) == 0 {
		sb.WriteString("Your inventory is empty.\n")
		return sb.String()
	}

	equipped := c.player.EquippedWeapon()
	if equipped != nil {
		fmt.Fprintf(&sb, "[EQUIPPED] %s\n\n", equipped)
	}
	for _, it := range inv {
		if equipped != nil && it == item.Item(equipped) {
			continue
		}
		fmt.Fprintf(&sb, "• %s\n", it)
	}
	return sb.String()
}

// DescribeStats renders the player's name, level, experience, health and damage.
func (c *Controller) DescribeStats() string {
	p := c.player
	var sb strings.Builder
	sb.WriteString("=== PLAYER STATS ===\n")
	fmt.Fprintf(&sb, "Name: %s\n", p.Name())
	fmt.Fprintf(&sb, "Level: %d\n", p.Level())
	fmt.Fprintf(&sb, "Experience: %d/%d\n", p.Experience(), p.NextLevelAt())
	fmt.Fprintf(&sb, "HP: %s\n", p.HPString())
	fmt.Fprintf(&sb, "Attack Damage: %d\n", p.CalculateDamage())
	if w := p.EquippedWeapon(); w != nil {
		fmt.Fprintf(&sb, "Equipped: %s\n", w.Name())
	}
	return sb.String()
}
