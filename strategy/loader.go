package strategy

import (
	"errors"
	"fmt"
	"plugin"
	"sort"
	"strings"
	"sync"

	"github.com/wfunc/connect4/board"
)

// Factory builds a Decider for a seat at a difficulty level.
type Factory func(player board.Player, level int) Decider

// PluginSymbol is the symbol a strategy plugin must export, with the Factory signature.
const PluginSymbol = "NewDecider"

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrBadSymbol       = errors.New("plugin symbol has the wrong type")
	ErrInvalidLevel    = errors.New("level must be at least 1")
	ErrNoInput         = errors.New("human player needs an input")
)

// LoadError is returned when a seat's strategy cannot be built. It is meant to
// stop the program before a board exists.
type LoadError struct {
	Player board.Player
	Module string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("%s: cannot load human strategy: %v", e.Player, e.Err)
	}
	return fmt.Sprintf("%s: cannot load strategy %q: %v", e.Player, e.Module, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a decider available by name. Names are case-insensitive and a
// later registration replaces an earlier one.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = f
}

// Registered lists the known names in sorted order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// Load resolves the strategy for one seat. An empty module means a human fed by
// input. Otherwise module names a registered decider, or a path to a Go plugin
// (*.so) exporting NewDecider.
func Load(player board.Player, module string, level int, input Input) (Strategy, error) {
	if module == "" {
		if input == nil {
			return nil, &LoadError{Player: player, Err: ErrNoInput}
		}
		return NewHuman(player, input), nil
	}
	if level < 1 {
		return nil, &LoadError{Player: player, Module: module, Err: fmt.Errorf("%w, got %d", ErrInvalidLevel, level)}
	}

	factory, err := resolve(module)
	if err != nil {
		return nil, &LoadError{Player: player, Module: module, Err: err}
	}
	decider := factory(player, level)
	if decider == nil {
		return nil, &LoadError{Player: player, Module: module, Err: errors.New("factory returned no decider")}
	}
	return NewComputer(strategyName(module), level, player, decider), nil
}

func resolve(module string) (Factory, error) {
	if strings.HasSuffix(module, ".so") {
		return openPlugin(module)
	}
	if f, ok := lookup(module); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w (known: %s)", ErrUnknownStrategy, strings.Join(Registered(), ", "))
}

func openPlugin(path string) (Factory, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(PluginSymbol)
	if err != nil {
		return nil, err
	}
	switch f := sym.(type) {
	case func(board.Player, int) Decider:
		return f, nil
	case *Factory:
		return *f, nil
	case Factory:
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s is %T", ErrBadSymbol, PluginSymbol, sym)
}

func strategyName(module string) string {
	name := module
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(strings.ToLower(name), ".so")
}
