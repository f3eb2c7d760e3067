// Package partitions splits the global equation system into free and
// restrained degrees of freedom:
//
//	| K11 K12 | | D1 |   | F1 |
//	| K21 K22 | | D2 | = | F2 |
//
// D1 holds the unknown displacements, D2 the prescribed ones.
package partitions

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Set identifies which side of the partition an equation belongs to
type Set uint8

const (
	Free       Set = iota // Unknown displacement (D1)
	Restrained            // Prescribed displacement (D2)
)

func (s Set) String() string {
	if s == Restrained {
		return "restrained"
	}
	return "free"
}

// DOFLayout maps global equations onto the free/restrained partition
type DOFLayout struct {
	NumEquations int

	// Equation to partition mapping
	EqToP []Set // Length NumEquations: equation i belongs to set EqToP[i]
	Local []int // Length NumEquations: position of equation i within its set

	// Global equation indices of each set, ascending
	Free       []int
	Restrained []int
}

// NewDOFLayout builds a layout; restrained[i] marks equation i as prescribed
func NewDOFLayout(restrained []bool) *DOFLayout {
	n := len(restrained)
	l := &DOFLayout{
		NumEquations: n,
		EqToP:        make([]Set, n),
		Local:        make([]int, n),
	}
	for eq, r := range restrained {
		if r {
			l.EqToP[eq] = Restrained
			l.Local[eq] = len(l.Restrained)
			l.Restrained = append(l.Restrained, eq)
		} else {
			l.EqToP[eq] = Free
			l.Local[eq] = len(l.Free)
			l.Free = append(l.Free, eq)
		}
	}
	return l
}

// Restrain returns a new layout with the given equations moved to the
// restrained set
func (l *DOFLayout) Restrain(eqs ...int) *DOFLayout {
	restrained := make([]bool, l.NumEquations)
	for eq, p := range l.EqToP {
		restrained[eq] = p == Restrained
	}
	for _, eq := range eqs {
		restrained[eq] = true
	}
	return NewDOFLayout(restrained)
}

// GetPartition returns the set of equation eq
func (l *DOFLayout) GetPartition(eq int) Set {
	return l.EqToP[eq]
}

func (l *DOFLayout) NumFree() int       { return len(l.Free) }
func (l *DOFLayout) NumRestrained() int { return len(l.Restrained) }

// ValidateLayout checks partition consistency
func (l *DOFLayout) ValidateLayout() error {
	if len(l.EqToP) != l.NumEquations || len(l.Local) != l.NumEquations {
		return fmt.Errorf("layout arrays sized %d/%d, want %d",
			len(l.EqToP), len(l.Local), l.NumEquations)
	}
	if len(l.Free)+len(l.Restrained) != l.NumEquations {
		return fmt.Errorf("free %d + restrained %d != equations %d",
			len(l.Free), len(l.Restrained), l.NumEquations)
	}
	for set, eqs := range map[Set][]int{Free: l.Free, Restrained: l.Restrained} {
		for k, eq := range eqs {
			if l.EqToP[eq] != set {
				return fmt.Errorf("equation %d listed as %s but mapped to %s", eq, set, l.EqToP[eq])
			}
			if l.Local[eq] != k {
				return fmt.Errorf("equation %d: local index %d != position %d", eq, l.Local[eq], k)
			}
		}
	}
	return nil
}

// Partition extracts K11, K12, K21 and K22. A block with a zero dimension
// is returned as nil.
func (l *DOFLayout) Partition(K mat.Matrix) (K11, K12, K21, K22 *mat.Dense) {
	K11 = l.block(K, l.Free, l.Free)
	K12 = l.block(K, l.Free, l.Restrained)
	K21 = l.block(K, l.Restrained, l.Free)
	K22 = l.block(K, l.Restrained, l.Restrained)
	return
}

func (l *DOFLayout) block(K mat.Matrix, rows, cols []int) *mat.Dense {
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}
	b := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			b.Set(i, j, K.At(r, c))
		}
	}
	return b
}

// SplitVector extracts the free and restrained parts of a global vector.
// An empty part is returned as nil.
func (l *DOFLayout) SplitVector(v mat.Vector) (v1, v2 *mat.VecDense) {
	return l.gather(v, l.Free), l.gather(v, l.Restrained)
}

func (l *DOFLayout) gather(v mat.Vector, eqs []int) *mat.VecDense {
	if len(eqs) == 0 {
		return nil
	}
	out := mat.NewVecDense(len(eqs), nil)
	for k, eq := range eqs {
		out.SetVec(k, v.AtVec(eq))
	}
	return out
}

// Merge scatters the free and restrained parts back into a global vector.
// Either part may be nil when its set is empty.
func (l *DOFLayout) Merge(v1, v2 *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(l.NumEquations, nil)
	if v1 != nil {
		for k, eq := range l.Free {
			out.SetVec(eq, v1.AtVec(k))
		}
	}
	if v2 != nil {
		for k, eq := range l.Restrained {
			out.SetVec(eq, v2.AtVec(k))
		}
	}
	return out
}
