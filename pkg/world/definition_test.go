package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRoomWorld = `{
  "name": "Test Woods",
  "start": "clearing",
  "goal": "den",
  "player": {"name": "Tester"},
  "rooms": [
    {
      "id": "clearing",
      "name": "Clearing",
      "description": "A quiet clearing.",
      "exits": [{"direction": "north", "to": "den"}],
      "items": [
        {"type": "weapon", "name": "Stick", "description": "A sturdy stick", "amount": 6},
        {"type": "potion", "name": "Berry", "description": "A red berry", "amount": 5}
      ]
    },
    {
      "id": "den",
      "name": "Wolf Den",
      "description": "Bones everywhere.",
      "monster": {"name": "Wolf", "max_hp": 20, "attack": 5, "xp": 40}
    }
  ]
}`

func TestParse(t *testing.T) {
	w, err := Parse([]byte(twoRoomWorld))
	require.NoError(t, err)

	assert.Equal(t, "Test Woods", w.Name())
	assert.Equal(t, "Tester", w.PlayerName())
	assert.Equal(t, []string{"clearing", "den"}, w.RoomIDs())

	start := w.Start()
	require.NotNil(t, start)
	assert.Equal(t, "Clearing", start.Name())

	den, ok := start.Exit("north")
	require.True(t, ok)
	assert.Same(t, w.Goal(), den)

	m, ok := den.LivingMonster()
	require.True(t, ok)
	assert.Equal(t, "Wolf", m.Name())
	assert.Equal(t, 20, m.MaxHP())
	assert.Equal(t, 5, m.AttackDamage())
	assert.Equal(t, 40, m.ExperienceReward())

	items := start.Items()
	require.Len(t, items, 2)
	assert.Equal(t, item.KindWeapon, items[0].Kind())
	assert.Equal(t, 6, items[0].(*item.Weapon).Damage())
	assert.Equal(t, item.KindPotion, items[1].Kind())
	assert.Equal(t, 5, items[1].(*item.Potion).HealAmount())

	assert.Empty(t, w.Unreachable())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "missing start room",
			json: `{"name":"x","start":"nowhere","rooms":[{"id":"a","name":"A"}]}`,
		},
		{
			name: "unknown exit target",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A","exits":[{"direction":"north","to":"b"}]}]}`,
		},
		{
			name: "duplicate room id",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A"},{"id":"a","name":"B"}]}`,
		},
		{
			name: "duplicate direction ignoring case",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A","exits":[{"direction":"North","to":"a"},{"direction":"north","to":"a"}]}]}`,
		},
		{
			name: "unknown item type",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A","items":[{"type":"scroll","name":"S","amount":1}]}]}`,
		},
		{
			name: "potion without amount",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A","items":[{"type":"potion","name":"P"}]}]}`,
		},
		{
			name: "monster without attack",
			json: `{"name":"x","start":"a","rooms":[{"id":"a","name":"A","monster":{"name":"M","max_hp":5}}]}`,
		},
		{
			name: "room id not snake case",
			json: `{"name":"x","start":"Room-A","rooms":[{"id":"Room-A","name":"A"}]}`,
		},
		{
			name: "missing goal room",
			json: `{"name":"x","start":"a","goal":"b","rooms":[{"id":"a","name":"A"}]}`,
		},
		{
			name: "no rooms",
			json: `{"name":"x","start":"a","rooms":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWorld), "expected ErrInvalidWorld, got %v", err)
		})
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte(`{"name":"x","start":"a","rooms":[],"secret":true}`))
	assert.Error(t, err)
}

func TestWorld_Unreachable(t *testing.T) {
	w, err := Parse([]byte(`{
		"name": "Islands",
		"start": "a",
		"rooms": [
			{"id": "a", "name": "A", "exits": [{"direction": "east", "to": "b"}]},
			{"id": "b", "name": "B"},
			{"id": "c", "name": "C", "exits": [{"direction": "west", "to": "a"}]}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, w.Unreachable())
	assert.Nil(t, w.Goal())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "woods.json")
	require.NoError(t, os.WriteFile(path, []byte(twoRoomWorld), 0o644))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Woods", w.Name())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	w, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Castle Entrance", w.Start().Name())
	assert.Len(t, w.RoomIDs(), 15)
	assert.Empty(t, w.Unreachable())
	require.NotNil(t, w.Goal())
	assert.Equal(t, "Dragon's Lair", w.Goal().Name())

	courtyard, ok := w.Room("courtyard")
	require.True(t, ok)
	_, ok = courtyard.FindItem("minor health potion")
	assert.True(t, ok)

	dragon, ok := w.Goal().LivingMonster()
	require.True(t, ok)
	assert.Equal(t, "Ancient Dragon", dragon.Name())
}
