// Package registry provides a global registry of playable levels.
// The crunch game registers one factory per level at init, and custom level
// directories add more at startup, so the platform can list and start levels
// without knowing where they came from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cookie-crunch/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the level identifier (e.g., "level_0", "endless").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Warm Oven").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered level.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Panics if a level with the same ID is already registered.
func Register(id, title string, f Factory) {
	if err := TryRegister(id, title, f); err != nil {
		panic(err.Error())
	}
}

// TryRegister adds a level factory, returning an error on a duplicate ID.
func TryRegister(id, title string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return fmt.Errorf("registry: level %q already registered", id)
	}
	factories[id] = f
	titles[id] = title
	return nil
}

// List returns information about all registered levels, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}

	return f(), nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
