package hwmon

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a minimal in-process publication point for monitoring chips.
// Drivers register a chip at attach and unregister it at detach.
type Registry struct {
	mu    sync.Mutex
	chips map[string]Chip
}

func NewRegistry() *Registry {
	return &Registry{chips: make(map[string]Chip)}
}

func (r *Registry) Register(name string, chip Chip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chips[name]; ok {
		return fmt.Errorf("chip %q already registered", name)
	}
	r.chips[name] = chip
	return nil
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chips, name)
}

func (r *Registry) Lookup(name string) (Chip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chip, ok := r.chips[name]
	return chip, ok
}

func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.chips))
	for name := range r.chips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
