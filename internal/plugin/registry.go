// Package plugin collects link helpers contributed by plugins and resolves
// the functions their links use.
package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/monitoring"
)

var (
	// ErrUnknownHelper is returned when no helper is registered under a name.
	ErrUnknownHelper = errors.New("unknown link helper")
	// ErrValueCount is returned when a helper is applied to the wrong number of arrays.
	ErrValueCount = errors.New("wrong number of value arrays")
)

// Direction selects the forward or backward functions of a helper.
type Direction string

const (
	Forwards  Direction = "forwards"
	Backwards Direction = "backwards"
)

// ParseDirection accepts "forwards" and "backwards"; empty means forwards.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Forwards:
		return Forwards, nil
	case Backwards:
		return Backwards, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// FuncName returns the qualified name of the i-th (0-based) function of a
// helper, e.g. "Galactic_to_FK5.forwards_1".
func FuncName(helper string, dir Direction, i int) string {
	return fmt.Sprintf("%s.%s_%d", helper, dir, i+1)
}

// LinkHelper builds bidirectional links between two equally sized sets of components.
type LinkHelper interface {
	Name() string
	Display() string
	Category() string
	Labels() (inputs, outputs []string)
	Arity() int
	Links(inputs, outputs []*link.ComponentID) ([]*link.ComponentLink, error)
	Funcs() map[string]link.Func
}

// Plugin contributes link helpers to a registry.
type Plugin interface {
	Name() string
	Version() string
	Register(registry *Registry) error
}

// Metadata describes an installed plugin.
type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Helpers []string `json:"helpers"`
}

// Registry accumulates plugin contributions. It is safe for concurrent reads
// once installation has finished.
type Registry struct {
	mu      sync.RWMutex
	helpers map[string]LinkHelper
	owner   map[string]string
	plugins map[string]Metadata
	funcs   *link.FuncRegistry

	installing string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		helpers: make(map[string]LinkHelper),
		owner:   make(map[string]string),
		plugins: make(map[string]Metadata),
		funcs:   link.NewFuncRegistry(),
	}
}

// RegisterHelper adds a helper and every function its links reference.
func (r *Registry) RegisterHelper(h LinkHelper) error {
	if h == nil {
		return errors.New("link helper cannot be nil")
	}
	name := h.Name()
	if name == "" {
		return errors.New("link helper name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.helpers[name]; exists {
		return fmt.Errorf("link helper %s already registered", name)
	}
	funcs := h.Funcs()
	names := make([]string, 0, len(funcs))
	for fn := range funcs {
		if _, taken := r.funcs.ResolveFunc(fn); taken {
			return fmt.Errorf("link helper %s: %w: %s", name, link.ErrDuplicateFunc, fn)
		}
		names = append(names, fn)
	}
	sort.Strings(names)
	for _, fn := range names {
		if err := r.funcs.Register(fn, funcs[fn]); err != nil {
			return err
		}
	}
	r.helpers[name] = h
	r.owner[name] = r.installing
	monitoring.Debugf("registered link helper %s (%d functions)", name, len(names))
	return nil
}

// Helper returns the helper registered under name.
func (r *Registry) Helper(name string) (LinkHelper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.helpers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHelper, name)
	}
	return h, nil
}

// Helpers returns all helpers sorted by name.
func (r *Registry) Helpers() []LinkHelper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LinkHelper, 0, len(r.helpers))
	for _, h := range r.helpers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Categories returns the distinct helper categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]struct{})
	for _, h := range r.Helpers() {
		seen[h.Category()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ResolveFunc implements link.FuncResolver so saved links can be restored.
func (r *Registry) ResolveFunc(name string) (link.Func, bool) {
	return r.funcs.ResolveFunc(name)
}

// Install runs a plugin's registration and records its metadata.
func (r *Registry) Install(p Plugin) (Metadata, error) {
	if p == nil {
		return Metadata{}, errors.New("plugin cannot be nil")
	}
	name := p.Name()

	r.mu.Lock()
	if _, exists := r.plugins[name]; exists {
		r.mu.Unlock()
		return Metadata{}, fmt.Errorf("plugin %s already installed", name)
	}
	r.installing = name
	r.mu.Unlock()

	err := p.Register(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.installing = ""
	if err != nil {
		return Metadata{}, fmt.Errorf("install plugin %s: %w", name, err)
	}

	meta := Metadata{Name: name, Version: p.Version()}
	for helper, owner := range r.owner {
		if owner == name {
			meta.Helpers = append(meta.Helpers, helper)
		}
	}
	sort.Strings(meta.Helpers)
	r.plugins[name] = meta
	monitoring.Logf("installed plugin %s %s with %d link helpers", name, meta.Version, len(meta.Helpers))
	return meta, nil
}

// Plugins returns metadata for installed plugins sorted by name.
func (r *Registry) Plugins() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.plugins))
	for _, m := range r.plugins {
		m.Helpers = append([]string(nil), m.Helpers...)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Apply evaluates every function of a helper in one direction. values holds
// one array per helper input (forwards) or output (backwards).
func (r *Registry) Apply(name string, dir Direction, values [][]float64) ([][]float64, error) {
	h, err := r.Helper(name)
	if err != nil {
		return nil, err
	}
	n := h.Arity()
	if len(values) != n {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrValueCount, name, n, len(values))
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		fnName := FuncName(name, dir, i)
		fn, ok := r.ResolveFunc(fnName)
		if !ok {
			return nil, fmt.Errorf("%w: %s", link.ErrUnknownFunc, fnName)
		}
		if out[i], err = fn(values...); err != nil {
			return nil, fmt.Errorf("%s: %w", fnName, err)
		}
	}
	return out, nil
}
