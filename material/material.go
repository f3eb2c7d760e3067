// Package material holds the immutable material value shared by element types.
package material

import (
	"fmt"
)

// Material describes an isotropic linear elastic material
type Material struct {
	Name string
	E    float64 // Young's modulus (force / area)
	G    float64 // Shear modulus (force / area)
	Nu   float64 // Poisson's ratio
	Rho  float64 // Density (mass / volume)
	Fy   float64 // Yield strength (force / area)
}

// New returns a validated Material
func New(name string, E, G, nu, rho, fy float64) (Material, error) {
	m := Material{Name: name, E: E, G: G, Nu: nu, Rho: rho, Fy: fy}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Validate checks the physical admissibility of the material constants
func (m Material) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("material name cannot be empty")
	}
	if m.E <= 0 {
		return fmt.Errorf("material %q: E must be positive, got %g", m.Name, m.E)
	}
	if m.G <= 0 {
		return fmt.Errorf("material %q: G must be positive, got %g", m.Name, m.G)
	}
	if m.Nu <= -1 || m.Nu > 0.5 {
		return fmt.Errorf("material %q: Poisson ratio %g outside (-1, 0.5]", m.Name, m.Nu)
	}
	if m.Rho < 0 {
		return fmt.Errorf("material %q: density cannot be negative, got %g", m.Name, m.Rho)
	}
	return nil
}

// SpringStiffness returns the axial stiffness E·A/L of a prismatic member
func (m Material) SpringStiffness(area, length float64) (float64, error) {
	if area <= 0 {
		return 0, fmt.Errorf("material %q: section area must be positive, got %g", m.Name, area)
	}
	if length <= 0 {
		return 0, fmt.Errorf("material %q: member length must be positive, got %g", m.Name, length)
	}
	return m.E * area / length, nil
}
