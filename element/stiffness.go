package element

import "gonum.org/v1/gonum/mat"

// LocalStiffness returns the 12×12 local stiffness matrix. Only the axial
// translations (local DOF 0 at the i-node and 6 at the j-node) are coupled.
func (s *Spring) LocalStiffness() *mat.Dense {
	k := mat.NewDense(NumDOF, NumDOF, nil)
	k.Set(0, 0, s.ks)
	k.Set(0, 6, -s.ks)
	k.Set(6, 0, -s.ks)
	k.Set(6, 6, s.ks)
	return k
}

// GlobalStiffness returns Tᵀ·K·T
func (s *Spring) GlobalStiffness() (*mat.Dense, error) {
	T, err := s.TransformationMatrix()
	if err != nil {
		return nil, err
	}
	var tk, k mat.Dense
	tk.Mul(T.T(), s.LocalStiffness())
	k.Mul(&tk, T)
	return &k, nil
}
