package permission

import (
	"errors"
	"sync"
)

// bitRegistry maps permission names to bit positions within a Mask64. The
// package-level instance is populated from the vocabulary and frozen during
// init; afterwards it is read-only.
type bitRegistry struct {
	mu        sync.RWMutex
	nameToBit map[Permission]int
	bitToName map[int]Permission
	frozen    bool
}

var registry = newBitRegistry()

func newBitRegistry() *bitRegistry {
	return &bitRegistry{
		nameToBit: make(map[Permission]int),
		bitToName: make(map[int]Permission),
	}
}

func (r *bitRegistry) register(name Permission) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return -1, errors.New("registry frozen")
	}
	if name == "" {
		return -1, errors.New("permission name cannot be empty")
	}
	if _, exists := r.nameToBit[name]; exists {
		return -1, errors.New("permission already registered")
	}

	nextBit := len(r.nameToBit)
	if nextBit >= rootBit {
		return -1, errors.New("permission limit exceeded (root bit reserved)")
	}

	r.nameToBit[name] = nextBit
	r.bitToName[nextBit] = name
	return nextBit, nil
}

// registerRoot binds the named permission to the reserved root bit.
func (r *bitRegistry) registerRoot(name Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("registry frozen")
	}
	if _, exists := r.nameToBit[name]; exists {
		return errors.New("permission already registered")
	}
	if _, taken := r.bitToName[rootBit]; taken {
		return errors.New("root bit already assigned")
	}

	r.nameToBit[name] = rootBit
	r.bitToName[rootBit] = name
	return nil
}

func (r *bitRegistry) bit(name Permission) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bit, ok := r.nameToBit[name]
	return bit, ok
}

func (r *bitRegistry) freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Bit returns the registered bit index for the permission, or false for a
// string outside the vocabulary.
func Bit(p Permission) (int, bool) {
	return registry.bit(p)
}

// Count returns the number of registered permissions.
func Count() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.nameToBit)
}

func init() {
	for _, p := range vocabulary {
		if p == SystemAdmin {
			if err := registry.registerRoot(p); err != nil {
				panic("permission: " + err.Error())
			}
			continue
		}
		if _, err := registry.register(p); err != nil {
			panic("permission: " + err.Error())
		}
	}
	registry.freeze()

	buildRoleMasks()
}
