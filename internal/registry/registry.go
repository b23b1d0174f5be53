// Package registry provides a global registry of player actions.
// Actions register themselves in init() functions, allowing drivers to
// look them up by name without a hardcoded dispatch table.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rubberband/internal/engine"
)

// Action is a named player action that a driver can invoke with textual
// arguments.
type Action struct {
	// Name identifies the action on the command line (e.g. "buy-producer").
	Name string

	// Usage lists the arguments, e.g. "<family> <tier> [amount]".
	Usage string

	// Summary is a one-line description.
	Summary string

	// MinArgs and MaxArgs bound the argument count.
	MinArgs, MaxArgs int

	// Run applies the action. It reports whether the game accepted it;
	// an error means the arguments could not be parsed.
	Run func(g *engine.Game, args []string) (bool, error)
}

var (
	actions = make(map[string]Action)
	mu      sync.RWMutex
)

// Register adds an action to the registry.
// Panics if an action with the same name is already registered.
func Register(a Action) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := actions[a.Name]; exists {
		panic(fmt.Sprintf("registry: action %q already registered", a.Name))
	}
	if a.Run == nil {
		panic(fmt.Sprintf("registry: action %q has no Run", a.Name))
	}

	actions[a.Name] = a
}

// List returns all registered actions, sorted by name.
func List() []Action {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Action, 0, len(actions))
	for _, a := range actions {
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns the action registered under name.
func Get(name string) (Action, error) {
	mu.RLock()
	defer mu.RUnlock()

	a, ok := actions[name]
	if !ok {
		return Action{}, fmt.Errorf("registry: unknown action %q", name)
	}
	return a, nil
}

// Invoke checks the argument count and runs the named action on g.
func Invoke(g *engine.Game, name string, args []string) (bool, error) {
	a, err := Get(name)
	if err != nil {
		return false, err
	}
	if len(args) < a.MinArgs || (a.MaxArgs >= 0 && len(args) > a.MaxArgs) {
		return false, fmt.Errorf("registry: usage: %s %s", a.Name, a.Usage)
	}
	return a.Run(g, args)
}

// Exists checks if an action with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := actions[name]
	return ok
}
