// Package element implements the two-node axial spring element: local axis
// construction, the 12×12 transformation and stiffness matrices, and the
// per-combination displacement and end force extraction.
package element

import (
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
	"gonum.org/v1/gonum/mat"
)

// Degrees of freedom per element: six at the i-node followed by six at the j-node
const (
	NumNodes = 2
	NumDOF   = NumNodes * node.NumDOF
)

// Element is what the assembly layer needs from a structural element
type Element interface {
	Name() string
	Nodes() (i, j *node.Node)

	// Coordinate dependent matrices, recomputed on every call
	LocalStiffness() *mat.Dense
	TransformationMatrix() (*mat.Dense, error)
	GlobalStiffness() (*mat.Dense, error)

	// Participates reports whether the element contributes stiffness to the
	// given combination's assembly
	Participates(ref loads.Ref) bool
}

// Restriction describes which sign of axial force an element may carry
type Restriction uint8

const (
	Unrestricted Restriction = iota
	TensionOnly
	CompressionOnly
)

func (r Restriction) String() string {
	switch r {
	case TensionOnly:
		return "tension-only"
	case CompressionOnly:
		return "compression-only"
	}
	return "unrestricted"
}
