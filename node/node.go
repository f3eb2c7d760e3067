// Package node defines the structural node: its fixed position, support
// configuration, applied loads and per-load-combination results.
package node

import (
	"fmt"
	"math"

	"github.com/notargets/springfem/loads"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodalLoad is a concentrated force or moment applied in one load case
type NodalLoad struct {
	DOF       DOF
	Magnitude float64
	Case      string
}

// comboResult is the state of one load combination slot
type comboResult struct {
	solved       bool
	reacted      bool
	displacement Vector
	reaction     Vector
	springState  [NumDOF]ActiveState
}

// Node is a point in the model. Coordinates are fixed at construction.
//
// Per-combination results live in slot-indexed storage sized by
// AllocateCombinations. Writers for different slots never share memory, so
// separate combinations may be solved concurrently.
type Node struct {
	Name string
	ID   int // Index assigned by the model

	x, y, z float64

	// Support configuration
	Support  [NumDOF]bool
	Enforced [NumDOF]Optional[float64]
	Springs  [NumDOF]Optional[SupportSpring]

	Loads []NodalLoad

	results []comboResult
}

// New places a node at (x, y, z)
func New(name string, x, y, z float64) *Node {
	return &Node{
		Name: name,
		ID:   -1,
		x:    x,
		y:    y,
		z:    z,
	}
}

func (n *Node) X() float64 { return n.x }
func (n *Node) Y() float64 { return n.y }
func (n *Node) Z() float64 { return n.z }

// Coordinates returns the position as a vector
func (n *Node) Coordinates() r3.Vec {
	return r3.Vec{X: n.x, Y: n.y, Z: n.z}
}

// Distance returns the euclidean distance to another node
func (n *Node) Distance(o *Node) float64 {
	dx, dy, dz := n.x-o.x, n.y-o.y, n.z-o.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SetSupport fixes or releases a single DOF
func (n *Node) SetSupport(d DOF, fixed bool) {
	n.Support[d] = fixed
}

// Pin restrains the three translations
func (n *Node) Pin() {
	n.Support[DX], n.Support[DY], n.Support[DZ] = true, true, true
}

// Fix restrains all six DOFs
func (n *Node) Fix() {
	for _, d := range DOFs {
		n.Support[d] = true
	}
}

// SetEnforced prescribes a displacement on a DOF
func (n *Node) SetEnforced(d DOF, value float64) {
	n.Enforced[d] = Some(value)
}

// ClearEnforced removes a prescribed displacement
func (n *Node) ClearEnforced(d DOF) {
	n.Enforced[d] = None[float64]()
}

// SetSpring attaches a support spring to a DOF
func (n *Node) SetSpring(d DOF, stiffness float64, direction SpringDirection) error {
	if stiffness <= 0 {
		return fmt.Errorf("node %q: support spring stiffness on %s must be positive, got %g",
			n.Name, d, stiffness)
	}
	n.Springs[d] = Some(SupportSpring{Stiffness: stiffness, Direction: direction})
	return nil
}

// IsRestrained reports whether the DOF displacement is prescribed
// (supported, or carrying an enforced displacement)
func (n *Node) IsRestrained(d DOF) bool {
	return n.Support[d] || n.Enforced[d].IsSet()
}

// PrescribedDisplacement returns the known displacement of a restrained DOF
func (n *Node) PrescribedDisplacement(d DOF) float64 {
	return n.Enforced[d].OrElse(0)
}

// AddLoad applies a concentrated load in a load case
func (n *Node) AddLoad(d DOF, magnitude float64, caseName string) {
	n.Loads = append(n.Loads, NodalLoad{DOF: d, Magnitude: magnitude, Case: caseName})
}

// AllocateCombinations discards all results and sizes storage for n combinations
func (n *Node) AllocateCombinations(count int) {
	n.results = make([]comboResult, count)
}

func (n *Node) slot(ref loads.Ref) (*comboResult, bool) {
	if ref.Slot < 0 || ref.Slot >= len(n.results) {
		return nil, false
	}
	return &n.results[ref.Slot], true
}

// Solved reports whether displacements are stored for the combination
func (n *Node) Solved(ref loads.Ref) bool {
	r, ok := n.slot(ref)
	return ok && r.solved
}

// Displacements returns the six displacement/rotation results
func (n *Node) Displacements(ref loads.Ref) (Vector, error) {
	r, ok := n.slot(ref)
	if !ok || !r.solved {
		return Vector{}, &MissingCombinationError{Node: n.Name, Combination: ref.Name}
	}
	return r.displacement, nil
}

// Displacement returns a single displacement/rotation result
func (n *Node) Displacement(ref loads.Ref, d DOF) (float64, error) {
	v, err := n.Displacements(ref)
	if err != nil {
		return 0, err
	}
	return v[d], nil
}

// SetDisplacements stores the solution for a combination
func (n *Node) SetDisplacements(ref loads.Ref, v Vector) error {
	r, ok := n.slot(ref)
	if !ok {
		return fmt.Errorf("node %q: combination %q has no storage slot %d", n.Name, ref.Name, ref.Slot)
	}
	r.displacement = v
	r.solved = true
	return nil
}

// Reactions returns the support reactions for a combination
func (n *Node) Reactions(ref loads.Ref) (Vector, error) {
	r, ok := n.slot(ref)
	if !ok || !r.reacted {
		return Vector{}, &MissingCombinationError{Node: n.Name, Combination: ref.Name}
	}
	return r.reaction, nil
}

// SetReactions stores support reactions for a combination
func (n *Node) SetReactions(ref loads.Ref, v Vector) error {
	r, ok := n.slot(ref)
	if !ok {
		return fmt.Errorf("node %q: combination %q has no storage slot %d", n.Name, ref.Name, ref.Slot)
	}
	r.reaction = v
	r.reacted = true
	return nil
}

// SpringState returns the participation of the support spring on d.
// Bidirectional springs are always Active.
func (n *Node) SpringState(ref loads.Ref, d DOF) ActiveState {
	s, ok := n.Springs[d].Get()
	if !ok {
		return Inactive
	}
	if !s.IsOneWay() {
		return Active
	}
	r, ok := n.slot(ref)
	if !ok {
		return Unsolved
	}
	return r.springState[d]
}

// SetSpringActive records the participation of a one-way support spring.
// Only the activation controller calls this.
func (n *Node) SetSpringActive(ref loads.Ref, d DOF, active bool) {
	if r, ok := n.slot(ref); ok {
		r.springState[d] = StateOf(active)
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("Node %s [%d] (%g, %g, %g)", n.Name, n.ID, n.x, n.y, n.z)
}
