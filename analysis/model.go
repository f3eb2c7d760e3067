// Package analysis owns the structural model and drives the per-combination
// solve: global assembly of active element contributions, the linear solve
// of the partitioned system, and the tension/compression-only activation
// iteration.
package analysis

import (
	"fmt"

	"github.com/notargets/springfem/element"
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/material"
	"github.com/notargets/springfem/node"
	"github.com/notargets/springfem/utils"
)

// Default combination created when a model is analysed without any
const (
	DefaultCombination = "Combo 1"
	DefaultLoadCase    = "Case 1"
)

// Model is the registry of nodes, springs, materials and load combinations
type Model struct {
	cfg Config

	nodes     []*node.Node
	nodeIndex map[string]*node.Node

	springs     []*element.Spring
	springIndex map[string]*element.Spring

	materials map[string]material.Material
	combos    *loads.Registry

	connector *utils.NodeConnector

	// dirty is set by structural edits; the next analysis renumbers the
	// model and resets every per-combination state
	dirty bool
}

// NewModel creates an empty model; zero Config fields take defaults
func NewModel(cfg Config) *Model {
	return &Model{
		cfg:         cfg.withDefaults(),
		nodeIndex:   make(map[string]*node.Node),
		springIndex: make(map[string]*element.Spring),
		materials:   make(map[string]material.Material),
		combos:      loads.NewRegistry(),
		dirty:       true,
	}
}

// AddNode places a new node
func (m *Model) AddNode(name string, x, y, z float64) (*node.Node, error) {
	if _, found := m.nodeIndex[name]; found {
		return nil, fmt.Errorf("node %q: %w", name, ErrDuplicateName)
	}
	n := node.New(name, x, y, z)
	m.nodes = append(m.nodes, n)
	m.nodeIndex[name] = n
	m.dirty = true
	return n, nil
}

// Node looks a node up by name
func (m *Model) Node(name string) (*node.Node, error) {
	n, found := m.nodeIndex[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return n, nil
}

// AddSpring connects two existing nodes with an axial spring
func (m *Model) AddSpring(name, iNode, jNode string, ks float64, tensionOnly, compOnly bool) (*element.Spring, error) {
	if _, found := m.springIndex[name]; found {
		return nil, fmt.Errorf("spring %q: %w", name, ErrDuplicateName)
	}
	if ks <= 0 {
		return nil, fmt.Errorf("spring %q: stiffness must be positive, got %g", name, ks)
	}
	i, err := m.Node(iNode)
	if err != nil {
		return nil, fmt.Errorf("spring %q: %w", name, err)
	}
	j, err := m.Node(jNode)
	if err != nil {
		return nil, fmt.Errorf("spring %q: %w", name, err)
	}
	if i == j {
		return nil, fmt.Errorf("spring %q: both ends on node %q", name, iNode)
	}

	s := element.NewSpring(name, i, j, ks, tensionOnly, compOnly)
	m.springs = append(m.springs, s)
	m.springIndex[name] = s
	m.dirty = true
	return s, nil
}

// AddTrussMember adds a spring whose stiffness is E·A/L of a registered material
func (m *Model) AddTrussMember(name, iNode, jNode, materialName string, area float64, tensionOnly, compOnly bool) (*element.Spring, error) {
	mtl, found := m.materials[materialName]
	if !found {
		return nil, fmt.Errorf("member %q: unknown material %q", name, materialName)
	}
	i, err := m.Node(iNode)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	j, err := m.Node(jNode)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	ks, err := mtl.SpringStiffness(area, i.Distance(j))
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	return m.AddSpring(name, iNode, jNode, ks, tensionOnly, compOnly)
}

// Spring looks a spring up by name
func (m *Model) Spring(name string) (*element.Spring, error) {
	s, found := m.springIndex[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpring, name)
	}
	return s, nil
}

// AddMaterial registers a validated material
func (m *Model) AddMaterial(mtl material.Material) error {
	if err := mtl.Validate(); err != nil {
		return err
	}
	if _, found := m.materials[mtl.Name]; found {
		return fmt.Errorf("material %q: %w", mtl.Name, ErrDuplicateName)
	}
	m.materials[mtl.Name] = mtl
	return nil
}

// Material returns a registered material
func (m *Model) Material(name string) (material.Material, bool) {
	mtl, found := m.materials[name]
	return mtl, found
}

// AddCombination registers a load combination. Registering an identical
// combination again is a no-op.
func (m *Model) AddCombination(name string, tags []string, factors map[string]float64) error {
	combo := loads.NewCombination(name, tags, factors)
	if existing := m.combos.Get(name); existing != nil {
		if existing.Hash() == combo.Hash() && existing.Equal(combo) {
			return nil
		}
		return fmt.Errorf("combination %q: %w", name, loads.ErrDuplicateCombination)
	}
	if _, err := m.combos.Add(combo); err != nil {
		return err
	}
	m.dirty = true
	return nil
}

// Combination returns a registered load combination, or nil
func (m *Model) Combination(name string) *loads.Combination {
	return m.combos.Get(name)
}

// AddNodeLoad applies a concentrated load to a node in a load case
func (m *Model) AddNodeLoad(nodeName string, d node.DOF, magnitude float64, caseName string) error {
	n, err := m.Node(nodeName)
	if err != nil {
		return err
	}
	n.AddLoad(d, magnitude, caseName)
	m.dirty = true
	return nil
}

func (m *Model) Nodes() []*node.Node        { return m.nodes }
func (m *Model) Springs() []*element.Spring { return m.springs }

// Combinations returns the registered combinations in slot order
func (m *Model) Combinations() []*loads.Combination {
	combos := make([]*loads.Combination, 0, m.combos.Len())
	for _, ref := range m.combos.Refs() {
		combos = append(combos, m.combos.At(ref))
	}
	return combos
}

// Reset discards all results and active states before the next analysis
func (m *Model) Reset() {
	m.dirty = true
}

// prepare numbers nodes and springs, sizes per-combination storage and
// rebuilds connectivity. It runs only after structural or load edits, which
// also discard the results of earlier runs.
func (m *Model) prepare() error {
	if len(m.nodes) == 0 {
		return ErrEmptyModel
	}
	if m.combos.Len() == 0 {
		_, err := m.combos.Add(loads.NewCombination(DefaultCombination, nil,
			map[string]float64{DefaultLoadCase: 1}))
		if err != nil {
			return err
		}
		m.dirty = true
	}
	if !m.dirty {
		return nil
	}

	nc := m.combos.Len()
	for id, n := range m.nodes {
		n.ID = id
		n.AllocateCombinations(nc)
	}
	EToN := make([][2]int, len(m.springs))
	for id, s := range m.springs {
		s.ID = id
		s.AllocateCombinations(nc)
		i, j := s.Nodes()
		EToN[id] = [2]int{i.ID, j.ID}
	}

	connector, err := utils.NewNodeConnector(len(m.nodes), EToN)
	if err != nil {
		return err
	}
	if err = connector.Verify(); err != nil {
		return err
	}
	m.connector = connector
	for _, n := range connector.Orphans() {
		m.cfg.Logger.Warn("node not connected to any spring", "node", m.nodes[n].Name)
	}

	m.dirty = false
	return nil
}

// equation returns the global equation number of a nodal DOF
func equation(n *node.Node, d node.DOF) int {
	return n.ID*node.NumDOF + int(d)
}

// NodeDisplacements returns the displacements of a node for a combination
func (m *Model) NodeDisplacements(nodeName, combo string) (node.Vector, error) {
	n, ref, err := m.resolveNode(nodeName, combo)
	if err != nil {
		return node.Vector{}, err
	}
	return n.Displacements(ref)
}

// NodeReactions returns the support reactions of a node for a combination
func (m *Model) NodeReactions(nodeName, combo string) (node.Vector, error) {
	n, ref, err := m.resolveNode(nodeName, combo)
	if err != nil {
		return node.Vector{}, err
	}
	return n.Reactions(ref)
}

// SpringAxialForce returns the axial force of a spring for a combination,
// positive in tension
func (m *Model) SpringAxialForce(springName, combo string) (float64, error) {
	s, ref, err := m.resolveSpring(springName, combo)
	if err != nil {
		return 0, err
	}
	return s.AxialForce(ref)
}

// SpringGlobalEndForces returns the 12 global end forces of a spring
func (m *Model) SpringGlobalEndForces(springName, combo string) ([]float64, error) {
	s, ref, err := m.resolveSpring(springName, combo)
	if err != nil {
		return nil, err
	}
	F, err := s.GlobalEndForces(ref)
	if err != nil {
		return nil, err
	}
	return F.RawVector().Data, nil
}

// SpringState returns the active state of a spring for a combination
func (m *Model) SpringState(springName, combo string) (node.ActiveState, error) {
	s, ref, err := m.resolveSpring(springName, combo)
	if err != nil {
		return node.Unsolved, err
	}
	return s.State(ref), nil
}

func (m *Model) resolveNode(nodeName, combo string) (*node.Node, loads.Ref, error) {
	n, err := m.Node(nodeName)
	if err != nil {
		return nil, loads.Ref{}, err
	}
	ref, err := m.combos.Resolve(combo)
	if err != nil {
		return nil, loads.Ref{}, err
	}
	return n, ref, nil
}

func (m *Model) resolveSpring(springName, combo string) (*element.Spring, loads.Ref, error) {
	s, err := m.Spring(springName)
	if err != nil {
		return nil, loads.Ref{}, err
	}
	ref, err := m.combos.Resolve(combo)
	if err != nil {
		return nil, loads.Ref{}, err
	}
	return s, ref, nil
}
