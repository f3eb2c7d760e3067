package analysis

import (
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
	"gonum.org/v1/gonum/mat"
)

// solution of one linear pass, in global equation order
type solution struct {
	D, R *mat.VecDense
}

// solvePass assembles the active structure for a combination and solves the
// partitioned system
//
//	D1 = K11⁻¹·(F1 − K12·D2)
//	R2 = K21·D1 + K22·D2 − F2
func (m *Model) solvePass(ref loads.Ref) (*solution, error) {
	K, err := m.assembleStiffness(ref)
	if err != nil {
		return nil, err
	}
	F := m.loadVector(ref)

	layout := m.baseLayout()
	pinned, err := m.zeroStiffnessDOFs(K, F, layout)
	if err != nil {
		return nil, err
	}
	if len(pinned) > 0 {
		m.cfg.Logger.Debug("pinning zero-stiffness DOFs",
			"combination", ref.Name, "count", len(pinned))
		layout = layout.Restrain(pinned...)
	}
	if err = layout.ValidateLayout(); err != nil {
		return nil, err
	}

	K11, K12, K21, K22 := layout.Partition(K)
	F1, F2 := layout.SplitVector(F)
	_, D2 := layout.SplitVector(m.prescribedVector())

	var D1 *mat.VecDense
	if K11 != nil {
		rhs := mat.VecDenseCopyOf(F1)
		if K12 != nil {
			var t mat.VecDense
			t.MulVec(K12, D2)
			rhs.SubVec(rhs, &t)
		}
		if D1, err = m.cfg.Solver.Solve(K11, rhs); err != nil {
			return nil, err
		}
	}

	var R2 *mat.VecDense
	if D2 != nil {
		R2 = mat.NewVecDense(D2.Len(), nil)
		R2.MulVec(K22, D2)
		if K21 != nil {
			var t mat.VecDense
			t.MulVec(K21, D1)
			R2.AddVec(R2, &t)
		}
		R2.SubVec(R2, F2)
	}

	sol := &solution{D: layout.Merge(D1, D2), R: layout.Merge(nil, R2)}
	m.addSupportSpringReactions(ref, sol)
	return sol, nil
}

// addSupportSpringReactions adds the force −k·d of every participating
// support spring to the reactions
func (m *Model) addSupportSpringReactions(ref loads.Ref, sol *solution) {
	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			spring, ok := nd.Springs[d].Get()
			if !ok || nd.SpringState(ref, d) != node.Active {
				continue
			}
			eq := equation(nd, d)
			sol.R.SetVec(eq, sol.R.AtVec(eq)-spring.Stiffness*sol.D.AtVec(eq))
		}
	}
}

// store writes displacements and reactions into the nodes' combination slot
func (m *Model) store(ref loads.Ref, sol *solution) error {
	for _, nd := range m.nodes {
		var D, R node.Vector
		for _, d := range node.DOFs {
			eq := equation(nd, d)
			D[d] = sol.D.AtVec(eq)
			R[d] = sol.R.AtVec(eq)
		}
		if err := nd.SetDisplacements(ref, D); err != nil {
			return err
		}
		if err := nd.SetReactions(ref, R); err != nil {
			return err
		}
	}
	return nil
}
