package loads

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCombination   = errors.New("unknown load combination")
	ErrDuplicateCombination = errors.New("duplicate load combination")
)

// Ref is a load combination name resolved to its storage slot
// Slot indexes the per-combination arrays held by nodes and elements
type Ref struct {
	Name string
	Slot int
}

// Registry keeps combinations in insertion order and hands out stable slots
type Registry struct {
	combos []*Combination
	slots  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]int),
	}
}

// Add registers a combination and returns its reference
func (r *Registry) Add(c *Combination) (Ref, error) {
	if c == nil || c.Name == "" {
		return Ref{}, fmt.Errorf("load combination must have a name")
	}
	if _, found := r.slots[c.Name]; found {
		return Ref{}, fmt.Errorf("%w: %q", ErrDuplicateCombination, c.Name)
	}
	slot := len(r.combos)
	r.combos = append(r.combos, c)
	r.slots[c.Name] = slot
	return Ref{Name: c.Name, Slot: slot}, nil
}

// Resolve maps a combination name to its reference
func (r *Registry) Resolve(name string) (Ref, error) {
	slot, found := r.slots[name]
	if !found {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownCombination, name)
	}
	return Ref{Name: name, Slot: slot}, nil
}

// Get returns the combination registered under name, or nil
func (r *Registry) Get(name string) *Combination {
	slot, found := r.slots[name]
	if !found {
		return nil
	}
	return r.combos[slot]
}

// At returns the combination stored in a slot
func (r *Registry) At(ref Ref) *Combination {
	if ref.Slot < 0 || ref.Slot >= len(r.combos) {
		return nil
	}
	return r.combos[ref.Slot]
}

// Refs returns references for every combination in slot order
func (r *Registry) Refs() []Ref {
	refs := make([]Ref, len(r.combos))
	for i, c := range r.combos {
		refs[i] = Ref{Name: c.Name, Slot: i}
	}
	return refs
}

func (r *Registry) Len() int { return len(r.combos) }
