package game

import (
	"fmt"
	"strings"
)

// attack resolves one exchange: the player strikes, and a surviving monster
// strikes back. A monster killed by the blow does not counter.
func (c *Controller) attack() string {
	room := c.player.CurrentRoom()
	monster, ok := room.LivingMonster()
	if !ok {
		return MsgNothingToFight
	}

	dealt := c.player.CalculateDamage()
	if err := monster.TakeDamage(dealt); err != nil {
		c.logger.Error("Failed to damage monster", "monster", monster.Name(), "error", err)
		return MsgInternalError
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You attacked the %s!\n", monster.Name())
	fmt.Fprintf(&sb, "Damage dealt: %d\n", dealt)

	if monster.IsDefeated() {
		reward := monster.ExperienceReward()
		leveled := c.player.GainExperience(reward)
		if c.currentMonster == monster {
			c.disengage()
		}
		c.logger.Info("Monster defeated",
			"monster", monster.Name(),
			"experience", reward,
			"level", c.player.Level())

		fmt.Fprintf(&sb, "[Victory!] You defeated the %s!\n", monster.Name())
		fmt.Fprintf(&sb, "You gained %d experience points!", reward)
		if leveled {
			fmt.Fprintf(&sb, "\nYou reached level %d!", c.player.Level())
		}
		return sb.String()
	}

	taken := monster.Attack(c.rng)
	if err := c.player.TakeDamage(taken); err != nil {
		c.logger.Error("Failed to damage player", "monster", monster.Name(), "error", err)
		return MsgInternalError
	}

	fmt.Fprintf(&sb, "\nThe %s attacks back!\n", monster.Name())
	fmt.Fprintf(&sb, "You took %d damage!\n", taken)
	fmt.Fprintf(&sb, "Your health: %s", c.player.HPString())

	if !c.player.IsAlive() {
		c.logger.Info("Player defeated", "monster", monster.Name(), "room", room.Name())
		sb.WriteString("\n\n" + MsgGameOver)
	}
	return sb.String()
}
