package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := 0
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
	fmt.Println("All world files are valid!")
}

// Summary counts what a world contains.
type Summary struct {
	Rooms       int
	Monsters    int
	Items       int
	TotalXP     int
	Unreachable []string
}

func validateFile(filename string, out io.Writer) error {
	fmt.Fprintf(out, "Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("world file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.json, not my-world.json or MyWorld.json)", baseName)
	}

	w, err := world.Load(filename)
	if err != nil {
		return err
	}

	s := summarize(w)
	fmt.Fprintf(out, "  %s: %d rooms, %d monsters (%d XP), %d items\n", w.Name(), s.Rooms, s.Monsters, s.TotalXP, s.Items)
	if w.Goal() == nil {
		fmt.Fprintln(out, "  warning: no goal room; the game can only be lost")
	}
	for _, id := range s.Unreachable {
		fmt.Fprintf(out, "  warning: room '%s' cannot be reached from the start\n", id)
	}
	return nil
}

func summarize(w *world.World) Summary {
	s := Summary{Unreachable: w.Unreachable()}
	for _, id := range w.RoomIDs() {
		room, _ := w.Room(id)
		s.Rooms++
		s.Items += len(room.Items())
		if m, ok := room.LivingMonster(); ok {
			s.Monsters++
			s.TotalXP += m.ExperienceReward()
		}
	}
	return s
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
