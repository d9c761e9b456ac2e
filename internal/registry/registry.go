// Package registry provides a global registry for app factories.
// Apps register themselves in init() functions, allowing the shell
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-ipod/internal/config"
	"github.com/vovakirdan/tui-ipod/internal/core"
)

// ErrUnknownApp is returned by Create for an unregistered ID.
var ErrUnknownApp = errors.New("registry: unknown app")

// Game is the interface every hosted app implements.
// Apps contain pure logic with no terminal dependencies (especially no Bubble Tea).
// Input arrives through the InputPort passed to the factory; the shell
// handles timing and turns the canvas into terminal cells.
type Game interface {
	// ID returns a unique identifier (e.g., "breakout").
	// Used for CLI commands and the session journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Configure binds the app to a surface in virtual pixels.
	// Called on launch and again whenever the display area changes size.
	Configure(width, height float64) error

	// AdvanceFrame runs one frame and draws it into dst.
	AdvanceFrame(dst core.Canvas)

	// Teardown releases input subscriptions. No calls follow it.
	Teardown()

	// Status reports the app's lifecycle for the shell.
	Status() core.GameState
}

// GameInfo contains metadata about a registered app.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new app instance subscribed to port.
type Factory func(cfg *config.Config, port *core.InputPort) Game

// entry is one registered app.
type entry struct {
	title   string
	factory Factory
}

var (
	mu   sync.RWMutex
	apps = make(map[string]entry)
)

// Register adds an app factory. Apps call it from init.
// Registering an ID twice panics.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := apps[id]; exists {
		panic(fmt.Sprintf("registry: app %q already registered", id))
	}
	apps[id] = entry{title: title, factory: f}
}

// List returns all registered apps sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(apps))
	for id, e := range apps {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := apps[id]
	return e, ok
}

// Create builds a new instance of app id bound to port.
func Create(id string, cfg *config.Config, port *core.InputPort) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownApp, id)
	}
	return e.factory(cfg, port), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

// Title returns the display name of app id, or id itself when unknown.
func Title(id string) string {
	if e, ok := lookup(id); ok {
		return e.title
	}
	return id
}
