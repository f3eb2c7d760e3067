package element

import (
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// GlobalDisplacementVector gathers the 12 end displacements for a combination.
//
// When the spring is not active in the combination the translation of each
// end is stripped of its component along the local x-axis, so an inactive
// tension/compression-only spring transfers no axial force while staying in
// the model. For members along global X this leaves entries 0 and 6 at zero.
// Lateral translations and rotations are always taken from the nodes.
func (s *Spring) GlobalDisplacementVector(ref loads.Ref) (*mat.VecDense, error) {
	di, err := s.i.Displacements(ref)
	if err != nil {
		return nil, err
	}
	dj, err := s.j.Displacements(ref)
	if err != nil {
		return nil, err
	}

	data := make([]float64, NumDOF)
	copy(data[:node.NumDOF], di[:])
	copy(data[node.NumDOF:], dj[:])

	if !s.IsActive(ref) {
		x, _, _, err := s.LocalAxes()
		if err != nil {
			return nil, err
		}
		for _, off := range [NumNodes]int{0, node.NumDOF} {
			t := r3.Vec{X: data[off], Y: data[off+1], Z: data[off+2]}
			t = r3.Sub(t, r3.Scale(r3.Dot(t, x), x))
			data[off], data[off+1], data[off+2] = t.X, t.Y, t.Z
		}
	}
	return mat.NewVecDense(NumDOF, data), nil
}

// LocalDisplacementVector returns T·D
func (s *Spring) LocalDisplacementVector(ref loads.Ref) (*mat.VecDense, error) {
	T, err := s.TransformationMatrix()
	if err != nil {
		return nil, err
	}
	D, err := s.GlobalDisplacementVector(ref)
	if err != nil {
		return nil, err
	}
	d := mat.NewVecDense(NumDOF, nil)
	d.MulVec(T, D)
	return d, nil
}

// LocalEndForces returns K·d in local coordinates
func (s *Spring) LocalEndForces(ref loads.Ref) (*mat.VecDense, error) {
	d, err := s.LocalDisplacementVector(ref)
	if err != nil {
		return nil, err
	}
	f := mat.NewVecDense(NumDOF, nil)
	f.MulVec(s.LocalStiffness(), d)
	return f, nil
}

// GlobalEndForces returns Tᵀ·f
func (s *Spring) GlobalEndForces(ref loads.Ref) (*mat.VecDense, error) {
	T, err := s.TransformationMatrix()
	if err != nil {
		return nil, err
	}
	f, err := s.LocalEndForces(ref)
	if err != nil {
		return nil, err
	}
	F := mat.NewVecDense(NumDOF, nil)
	F.MulVec(T.T(), f)
	return F, nil
}

// AxialForce returns the axial force for a combination, positive in tension.
// This is the local x force at the j-end, equal to minus the i-end entry.
func (s *Spring) AxialForce(ref loads.Ref) (float64, error) {
	f, err := s.LocalEndForces(ref)
	if err != nil {
		return 0, err
	}
	return f.AtVec(6), nil
}
