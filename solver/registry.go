package solver

import "sync"

var registry = struct {
	sync.RWMutex
	solutions map[string]*Solution
}{solutions: make(map[string]*Solution)}

func register(s *Solution) {
	registry.Lock()
	defer registry.Unlock()
	registry.solutions[s.name] = s
}

// Lookup returns the latest successful solution of the named declaration.
func Lookup(name string) (*Solution, bool) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.solutions[name]
	return s, ok
}
