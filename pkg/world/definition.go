package world

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/item"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

// ErrInvalidWorld wraps every validation failure of a world definition.
var ErrInvalidWorld = errors.New("invalid world")

//go:embed data/castle.json
var castleJSON []byte

// Definition is the serializable form of a world.
type Definition struct {
	Name   string    `json:"name" validate:"required"`
	Start  string    `json:"start" validate:"required,room_id"`
	Goal   string    `json:"goal,omitempty" validate:"omitempty,room_id"`
	Player PlayerDef `json:"player"`
	Rooms  []RoomDef `json:"rooms" validate:"required,min=1,dive"`
}

// PlayerDef configures the player character.
type PlayerDef struct {
	Name string `json:"name,omitempty"`
}

// RoomDef describes a single room.
type RoomDef struct {
	ID          string      `json:"id" validate:"required,room_id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Exits       []ExitDef   `json:"exits,omitempty" validate:"dive"`
	Monster     *MonsterDef `json:"monster,omitempty"`
	Items       []ItemDef   `json:"items,omitempty" validate:"dive"`
}

// ExitDef is a one-way exit. Order in the file is the order exits are listed in game.
type ExitDef struct {
	Direction string `json:"direction" validate:"required"`
	To        string `json:"to" validate:"required,room_id"`
}

// MonsterDef describes the monster guarding a room.
type MonsterDef struct {
	Name   string `json:"name" validate:"required"`
	MaxHP  int    `json:"max_hp" validate:"min=1"`
	Attack int    `json:"attack" validate:"min=1"`
	XP     int    `json:"xp" validate:"min=0"`
}

// ItemDef describes an item lying in a room. Amount is weapon damage or potion healing.
type ItemDef struct {
	Type        item.Kind `json:"type" validate:"required,oneof=weapon potion"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Amount      int       `json:"amount" validate:"min=1"`
}

var roomIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("room_id", func(fl validator.FieldLevel) bool {
		return roomIDRegex.MatchString(fl.Field().String())
	})
	return v
}

// Decode strictly unmarshals a world definition. Unknown fields are rejected.
func Decode(data []byte) (*Definition, error) {
	var def Definition
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode world: %w", err)
	}
	return &def, nil
}

// Validate checks field constraints and the references between rooms.
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorld, err)
	}

	var errs []error
	ids := make(map[string]bool, len(d.Rooms))
	for _, r := range d.Rooms {
		if ids[r.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate room id %q", ErrInvalidWorld, r.ID))
		}
		ids[r.ID] = true
	}

	if !ids[d.Start] {
		errs = append(errs, fmt.Errorf("%w: start room %q does not exist", ErrInvalidWorld, d.Start))
	}
	if d.Goal != "" && !ids[d.Goal] {
		errs = append(errs, fmt.Errorf("%w: goal room %q does not exist", ErrInvalidWorld, d.Goal))
	}

	for _, r := range d.Rooms {
		dirs := make(map[string]bool, len(r.Exits))
		for _, e := range r.Exits {
			dir := textfilter.Fold(e.Direction)
			if dirs[dir] {
				errs = append(errs, fmt.Errorf("%w: room %q has two %q exits", ErrInvalidWorld, r.ID, dir))
			}
			dirs[dir] = true
			if !ids[e.To] {
				errs = append(errs, fmt.Errorf("%w: room %q exit %q leads to unknown room %q", ErrInvalidWorld, r.ID, e.Direction, e.To))
			}
		}
	}

	return errors.Join(errs...)
}

// Build constructs the room graph. The definition must already be valid.
func (d *Definition) Build() (*World, error) {
	w := &World{
		name:       d.Name,
		playerName: d.Player.Name,
		rooms:      make(map[string]*Room, len(d.Rooms)),
		ids:        make([]string, 0, len(d.Rooms)),
	}

	for _, rd := range d.Rooms {
		room := NewRoom(rd.Name, rd.Description)
		if rd.Monster != nil {
			m := rd.Monster
			room.SetMonster(actor.NewMonster(m.Name, m.MaxHP, m.Attack, m.XP))
		}
		for _, idef := range rd.Items {
			it, err := newItem(idef)
			if err != nil {
				return nil, fmt.Errorf("room %q: %w", rd.ID, err)
			}
			room.AddItem(it)
		}
		w.rooms[rd.ID] = room
		w.ids = append(w.ids, rd.ID)
	}

	for _, rd := range d.Rooms {
		from := w.rooms[rd.ID]
		for _, e := range rd.Exits {
			to, ok := w.rooms[e.To]
			if !ok {
				return nil, fmt.Errorf("%w: room %q exit %q leads to unknown room %q", ErrInvalidWorld, rd.ID, e.Direction, e.To)
			}
			from.SetExit(e.Direction, to)
		}
	}

	start, ok := w.rooms[d.Start]
	if !ok {
		return nil, fmt.Errorf("%w: start room %q does not exist", ErrInvalidWorld, d.Start)
	}
	w.start = start
	if d.Goal != "" {
		w.goal = w.rooms[d.Goal]
	}

	return w, nil
}

func newItem(d ItemDef) (item.Item, error) {
	switch d.Type {
	case item.KindWeapon:
		return item.NewWeapon(d.Name, d.Description, d.Amount), nil
	case item.KindPotion:
		return item.NewPotion(d.Name, d.Description, d.Amount), nil
	default:
		return nil, fmt.Errorf("%w: unknown item type %q", ErrInvalidWorld, d.Type)
	}
}

// Parse decodes, validates and builds a world from JSON.
func Parse(data []byte) (*World, error) {
	def, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def.Build()
}

// Load reads a world definition file and builds it.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Default builds the bundled castle world.
func Default() (*World, error) {
	return Parse(castleJSON)
}
