package render

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new renderer.
type Factory func() Renderer

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a renderer factory under name.
// Typically called from an init() function.
// Panics if a renderer with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("render: renderer %q already registered", name))
	}
	factories[name] = f
}

// Get instantiates the renderer registered under name.
func Get(name string) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown renderer %q", name)
	}
	return f(), nil
}

// Names returns the registered renderer names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if a renderer with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
