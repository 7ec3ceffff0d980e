package skin

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered skin.
type Info struct {
	ID    string
	Title string
}

// Factory builds a sheet for lanes of w x h cells with n frames.
type Factory func(w, h, n int) *Sheet

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a skin factory to the registry.
// Panics if a skin with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("skin: %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(3, 3, 2).Title
}

// List returns information about all registered skins, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a registered skin by its ID.
func Create(id string, w, h, n int) (*Sheet, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("skin: unknown skin %q", id)
	}

	return f(w, h, n), nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
