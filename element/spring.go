package element

import (
	"fmt"

	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
)

// Spring is a two-node element resisting only relative axial translation.
//
// The element references its end nodes but does not own them. The active
// state is stored per combination slot; only the activation controller
// writes it, and different slots may be written concurrently.
type Spring struct {
	ID int // Index assigned by the model

	name        string
	i, j        *node.Node
	ks          float64 // Axial stiffness (force / displacement)
	TensionOnly bool
	CompOnly    bool

	active []node.ActiveState // Per combination slot
}

// NewSpring creates a spring between two nodes. Panics on nil nodes.
func NewSpring(name string, i, j *node.Node, ks float64, tensionOnly, compOnly bool) *Spring {
	if i == nil || j == nil {
		panic(fmt.Sprintf("spring %q: end nodes cannot be nil", name))
	}
	return &Spring{
		ID:          -1,
		name:        name,
		i:           i,
		j:           j,
		ks:          ks,
		TensionOnly: tensionOnly,
		CompOnly:    compOnly,
	}
}

func (s *Spring) Name() string             { return s.name }
func (s *Spring) Nodes() (i, j *node.Node) { return s.i, s.j }
func (s *Spring) Stiffness() float64       { return s.ks }

// Length returns the distance between the end nodes
func (s *Spring) Length() float64 {
	return s.i.Distance(s.j)
}

// Restriction classifies the tension/compression flags. Tension-only wins
// when both flags are set.
func (s *Spring) Restriction() Restriction {
	switch {
	case s.TensionOnly:
		return TensionOnly
	case s.CompOnly:
		return CompressionOnly
	}
	return Unrestricted
}

// AllocateCombinations discards all active states and sizes storage for n combinations
func (s *Spring) AllocateCombinations(n int) {
	s.active = make([]node.ActiveState, n)
}

// State returns the active state for a combination
func (s *Spring) State(ref loads.Ref) node.ActiveState {
	if ref.Slot < 0 || ref.Slot >= len(s.active) {
		return node.Unsolved
	}
	return s.active[ref.Slot]
}

// IsActive reports whether the element couples its ends axially in the
// combination. Unsolved counts as inactive.
func (s *Spring) IsActive(ref loads.Ref) bool {
	return s.State(ref) == node.Active
}

// Participates implements Element
func (s *Spring) Participates(ref loads.Ref) bool {
	return s.IsActive(ref)
}

// SetActive records the participation of the spring in a combination.
// Only the activation controller calls this.
func (s *Spring) SetActive(ref loads.Ref, active bool) {
	if ref.Slot < 0 || ref.Slot >= len(s.active) {
		panic(fmt.Sprintf("spring %q: combination %q has no storage slot %d", s.name, ref.Name, ref.Slot))
	}
	s.active[ref.Slot] = node.StateOf(active)
}

func (s *Spring) String() string {
	return fmt.Sprintf("Spring %s [%d] %s-%s ks=%g %s", s.name, s.ID, s.i.Name, s.j.Name, s.ks, s.Restriction())
}
