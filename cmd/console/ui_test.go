package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jwebster45206/dungeon-engine/internal/journal"
	"github.com/jwebster45206/dungeon-engine/pkg/game"
	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

type fakeRecorder struct {
	entries []journal.Entry
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, e journal.Entry) error {
	f.entries = append(f.entries, e)
	return f.err
}

const testWorld = `{
  "name": "Test Woods",
  "start": "clearing",
  "goal": "den",
  "rooms": [
    {"id": "clearing", "name": "Clearing", "description": "A quiet clearing.",
     "exits": [{"direction": "north", "to": "den"}],
     "items": [{"type": "weapon", "name": "Stick", "description": "A sturdy stick", "amount": 6}]},
    {"id": "den", "name": "Wolf Den", "description": "Bones everywhere.",
     "exits": [{"direction": "south", "to": "clearing"}],
     "monster": {"name": "Wolf", "max_hp": 20, "attack": 5, "xp": 40}}
  ]
}`

func newTestUI(t *testing.T, rec turnRecorder) ConsoleUI {
	t.Helper()
	w, err := world.Parse([]byte(testWorld))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := game.NewSession(w, "", fixedRoller(0.5), logger)
	return NewConsoleUI(ctrl, rec, uuid.New(), logger)
}

func enter(t *testing.T, m ConsoleUI, input string) (ConsoleUI, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ui, ok := model.(ConsoleUI)
	if !ok {
		t.Fatalf("expected ConsoleUI model, got %T", model)
	}
	return ui, cmd
}

func TestNewConsoleUI_OpensWithRoom(t *testing.T) {
	m := newTestUI(t, nil)
	if len(m.history) != 1 || !strings.Contains(m.history[0].text, "=== Clearing ===") {
		t.Errorf("expected opening room description, got %+v", m.history)
	}
}

func TestPlay_RoutesMovementAndCommands(t *testing.T) {
	m := newTestUI(t, nil)

	got := m.play("n")
	if !strings.Contains(got, "A Wolf appears before you!") {
		t.Errorf("expected ambush narration, got %q", got)
	}
	if m.ctrl.Player().CurrentRoom().Name() != "Wolf Den" {
		t.Errorf("expected to be in the den, got %s", m.ctrl.Player().CurrentRoom().Name())
	}

	got = m.play("attack")
	if !strings.Contains(got, "attacks back") {
		t.Errorf("expected counter attack, got %q", got)
	}
	if m.lastNarration != got {
		t.Error("expected last narration to be remembered for /copy")
	}
}

func TestPlay_AnnouncesVictoryOnce(t *testing.T) {
	m := newTestUI(t, nil)
	m.play("go north")
	for range 3 {
		m.play("attack")
	}
	m.play("look")

	var banners int
	for _, l := range m.history {
		if l.role == roleSystem && strings.Contains(l.text, "VICTORY") {
			banners++
		}
	}
	if banners != 1 {
		t.Errorf("expected one victory banner, got %d", banners)
	}
}

func TestUpdate_EnterRecordsTurn(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestUI(t, rec)

	m, cmd := enter(t, m, "take stick")
	if cmd == nil {
		t.Fatal("expected a journal command")
	}
	msg, ok := cmd().(journalRecordedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("unexpected journal result: %+v", msg)
	}

	if len(rec.entries) != 1 {
		t.Fatalf("expected 1 recorded entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Input != "take stick" || e.Response != "You picked up: Stick" || e.Room != "Clearing" || e.Status != "playing" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if m.textarea.Value() != "" {
		t.Error("expected input to be cleared")
	}
}

func TestUpdate_JournalFailureIsShown(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("connection refused")}
	m := newTestUI(t, rec)

	m, cmd := enter(t, m, "look")
	model, _ := m.Update(cmd())
	m = model.(ConsoleUI)

	if m.journalErr == nil {
		t.Fatal("expected journal error to be kept")
	}
	if !strings.Contains(writeMetadata(m.ctrl, m.sessionID, m.journalErr), "Journal offline") {
		t.Error("expected metadata to flag the journal")
	}
}

func TestUpdate_NoJournal(t *testing.T) {
	m := newTestUI(t, nil)
	_, cmd := enter(t, m, "look")
	if cmd != nil {
		t.Error("expected no command without a journal")
	}
}

func TestHandleCommand(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		m := newTestUI(t, nil)
		m, _ = enter(t, m, "/help")
		last := m.history[len(m.history)-1]
		if last.role != roleSystem || !strings.Contains(last.text, "/copy") {
			t.Errorf("expected console help, got %+v", last)
		}
	})

	t.Run("quit opens the modal", func(t *testing.T) {
		m := newTestUI(t, nil)
		m, _ = enter(t, m, "/quit")
		if !m.showQuitModal {
			t.Error("expected quit modal")
		}

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
		if model.(ConsoleUI).showQuitModal {
			t.Error("expected N to close the modal")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		m := newTestUI(t, nil)
		m, _ = enter(t, m, "/dance")
		last := m.history[len(m.history)-1]
		if last.role != roleError {
			t.Errorf("expected error line, got %+v", last)
		}
	})
}

func TestWriteMetadata(t *testing.T) {
	m := newTestUI(t, nil)
	m.play("north")

	meta := writeMetadata(m.ctrl, m.sessionID, nil)
	for _, want := range []string{"Level 1", "100/100", "Fists (7 dmg)", "Wolf Den", "Exits: south", "Wolf", "20/20", "Healthy", "Status: playing"} {
		if !strings.Contains(meta, want) {
			t.Errorf("expected metadata to contain %q:\n%s", want, meta)
		}
	}
}

func TestHPBar(t *testing.T) {
	tests := []struct {
		percent    int
		wantFilled int
	}{
		{100, hpBarWidth},
		{50, hpBarWidth / 2},
		{0, 0},
		{-5, 0},
		{150, hpBarWidth},
	}

	for _, tt := range tests {
		bar := hpBar(tt.percent)
		if got := strings.Count(bar, "█"); got != tt.wantFilled {
			t.Errorf("hpBar(%d) filled = %d, want %d", tt.percent, got, tt.wantFilled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != hpBarWidth {
			t.Errorf("hpBar(%d) width = %d, want %d", tt.percent, got, hpBarWidth)
		}
	}
}

func TestFormatNarration_Wraps(t *testing.T) {
	out := formatNarration("=== Hall ===\nA very long corridor stretches into the dark distance ahead", 20)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 && !strings.Contains(line, "\x1b") {
			t.Errorf("line exceeds wrap width: %q", line)
		}
	}
	if !strings.Contains(out, "Hall") {
		t.Error("expected header to be kept")
	}
}
