package analysis

import (
	"fmt"

	"github.com/notargets/springfem/element"
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
)

// nextState applies the tension/compression-only rule to an axial force,
// positive in tension. Deactivation is permanent for the combination.
func nextState(r element.Restriction, axial float64, current node.ActiveState) node.ActiveState {
	if current != node.Active {
		return current
	}
	switch {
	case r == element.TensionOnly && axial < 0:
		return node.Inactive
	case r == element.CompressionOnly && axial > 0:
		return node.Inactive
	}
	return current
}

// nextSupportState applies the same rule to a one-way support spring
// using the displacement along its DOF
func nextSupportState(dir node.SpringDirection, displacement float64, current node.ActiveState) node.ActiveState {
	if current != node.Active {
		return current
	}
	switch {
	case dir == node.PositiveOnly && displacement < 0:
		return node.Inactive
	case dir == node.NegativeOnly && displacement > 0:
		return node.Inactive
	}
	return current
}

// initializeStates activates every spring and one-way support for the
// combination. Each analysis run starts over: loads, factors and supports
// may have changed since states were last recorded.
func (m *Model) initializeStates(ref loads.Ref) {
	for _, s := range m.springs {
		s.SetActive(ref, true)
	}
	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			if spring, ok := nd.Springs[d].Get(); ok && spring.IsOneWay() {
				nd.SetSpringActive(ref, d, true)
			}
		}
	}
}

// updateStates re-evaluates every state from the stored results and returns
// the names of the springs and supports that changed
func (m *Model) updateStates(ref loads.Ref) ([]string, error) {
	var changed []string
	for _, s := range m.springs {
		r := s.Restriction()
		if r == element.Unrestricted {
			continue
		}
		axial, err := s.AxialForce(ref)
		if err != nil {
			return nil, err
		}
		current := s.State(ref)
		if next := nextState(r, axial, current); next != current {
			s.SetActive(ref, next == node.Active)
			changed = append(changed, s.Name())
		}
	}

	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			spring, ok := nd.Springs[d].Get()
			if !ok || !spring.IsOneWay() {
				continue
			}
			disp, err := nd.Displacement(ref, d)
			if err != nil {
				return nil, err
			}
			current := nd.SpringState(ref, d)
			if next := nextSupportState(spring.Direction, disp, current); next != current {
				nd.SetSpringActive(ref, d, next == node.Active)
				changed = append(changed, fmt.Sprintf("%s:%s", nd.Name, d))
			}
		}
	}
	return changed, nil
}
