package link

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateFunc is returned when a function name is registered twice.
	ErrDuplicateFunc = errors.New("link: function already registered")
	// ErrUnknownFunc is returned when a saved link names a function that
	// cannot be resolved.
	ErrUnknownFunc = errors.New("link: unknown function")
)

// Func computes one output array from one or more input arrays of equal length.
type Func func(args ...[]float64) ([]float64, error)

// FuncResolver looks up functions by their qualified name.
type FuncResolver interface {
	ResolveFunc(name string) (Func, bool)
}

// FuncRegistry is a concurrency-safe FuncResolver.
type FuncRegistry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewFuncRegistry returns an empty registry.
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{funcs: make(map[string]Func)}
}

// Register adds fn under name.
func (r *FuncRegistry) Register(name string, fn Func) error {
	if name == "" {
		return errors.New("link: function name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("link: function %s is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFunc, name)
	}
	r.funcs[name] = fn
	return nil
}

// ResolveFunc implements FuncResolver.
func (r *FuncRegistry) ResolveFunc(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *FuncRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
