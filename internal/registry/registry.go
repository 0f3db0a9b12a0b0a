// Package registry provides a global registry for game factories.
// Each playable mode registers itself in an init() function, allowing the
// platform to discover and instantiate modes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is the interface the platform drives. Implementations contain pure
// logic; the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "marathon", "ultra120").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Attach connects collaborators. It must be called before Reset to
	// take effect for the next run.
	Attach(h core.Hooks)

	// Reset starts a fresh run.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances time-driven play.
	Step(in core.InputFrame) core.StepResult

	// TimerTick advances the mode clock. The platform calls it on a fixed
	// period independent of the frame rate.
	TimerTick()

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState

	// Summary describes the current run for the score history.
	Summary() core.Summary
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type describer interface {
	Description() string
}

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	order     []string
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	order = append(order, id)

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, infos[id])
	}
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
