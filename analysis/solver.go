package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearSolver solves K·x = b for the free-DOF system
type LinearSolver interface {
	Solve(K mat.Matrix, b mat.Vector) (*mat.VecDense, error)
}

// LUSolver factorises K with partial pivoting. Systems whose reciprocal
// condition number falls below Tol are reported as singular.
type LUSolver struct {
	Tol float64
}

func (s LUSolver) Solve(K mat.Matrix, b mat.Vector) (*mat.VecDense, error) {
	n, c := K.Dims()
	if n != c || n != b.Len() {
		return nil, fmt.Errorf("dimension mismatch: K is %d×%d, b has %d entries", n, c, b.Len())
	}

	var lu mat.LU
	lu.Factorize(K)
	cond := lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) || 1/cond < s.Tol {
		return nil, &SingularSystemError{Detail: fmt.Sprintf("condition number %.3e", cond)}
	}

	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, b); err != nil {
		return nil, &SingularSystemError{Detail: err.Error()}
	}
	return x, nil
}
