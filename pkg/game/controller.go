// Package game runs a play session: it interprets commands, resolves combat
// and moves the player through the world. All gameplay failures are reported
// as narration; the controller never returns an error.
package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/player"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

// DefaultPlayerName is used when neither the caller nor the world names the player.
const DefaultPlayerName = "Hero"

// Status is the outcome of a session so far.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Controller drives a single session. It is not safe for concurrent use.
type Controller struct {
	world  *world.World
	player *player.Player
	rng    actor.Roller
	logger *slog.Logger

	// advisory only; combat always re-reads the monster from the current room
	inCombat       bool
	currentMonster *actor.Monster
}

// NewController wires a world and a player together. A nil rng falls back to a
// randomly seeded PCG source and a nil logger to slog.Default().
func NewController(w *world.World, p *player.Player, rng actor.Roller, logger *slog.Logger) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		world:  w,
		player: p,
		rng:    rng,
		logger: logger,
	}
	if m, ok := p.CurrentRoom().LivingMonster(); ok {
		c.engage(m)
	}
	return c
}

// NewSession creates a fresh player in the world's start room. An empty name
// falls back to the world's player name, then to DefaultPlayerName.
func NewSession(w *world.World, name string, rng actor.Roller, logger *slog.Logger) *Controller {
	if textfilter.Fold(name) == "" {
		name = w.PlayerName()
	}
	if textfilter.Fold(name) == "" {
		name = DefaultPlayerName
	}
	p := player.New(textfilter.Title(name), w.Start())
	return NewController(w, p, rng, logger)
}

// Player returns the session's player.
func (c *Controller) Player() *player.Player { return c.player }

// World returns the session's world.
func (c *Controller) World() *world.World { return c.world }

// InCombat reports whether the player was last ambushed by a monster that is still alive.
func (c *Controller) InCombat() bool { return c.inCombat }

// CurrentMonster returns the monster the player is engaged with, or nil.
func (c *Controller) CurrentMonster() *actor.Monster { return c.currentMonster }

// Status reports whether the session is still running.
func (c *Controller) Status() Status {
	if !c.player.IsAlive() {
		return StatusLost
	}
	goal := c.world.Goal()
	if goal != nil && c.player.CurrentRoom() == goal {
		if _, ok := goal.LivingMonster(); !ok {
			return StatusWon
		}
	}
	return StatusPlaying
}

func (c *Controller) engage(m *actor.Monster) {
	c.inCombat = true
	c.currentMonster = m
}

func (c *Controller) disengage() {
	c.inCombat = false
	c.currentMonster = nil
}
