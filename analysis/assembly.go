package analysis

import (
	"fmt"
	"maps"
	"slices"

	"github.com/james-bowman/sparse"
	"github.com/notargets/springfem/element"
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
	"github.com/notargets/springfem/partitions"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func (m *Model) numEquations() int {
	return len(m.nodes) * node.NumDOF
}

// elementEquations maps the 12 element DOFs onto global equations
func elementEquations(e element.Element) [element.NumDOF]int {
	var eqs [element.NumDOF]int
	i, j := e.Nodes()
	for _, d := range node.DOFs {
		eqs[int(d)] = equation(i, d)
		eqs[node.NumDOF+int(d)] = equation(j, d)
	}
	return eqs
}

// assembleStiffness sums the global stiffness of every element and support
// spring participating in the combination. Each node couples only to its
// neighbours, so K is accumulated in a sparse dictionary of keys.
func (m *Model) assembleStiffness(ref loads.Ref) (*sparse.DOK, error) {
	n := m.numEquations()
	K := sparse.NewDOK(n, n)

	for _, s := range m.springs {
		if !s.Participates(ref) {
			continue
		}
		kg, err := s.GlobalStiffness()
		if err != nil {
			return nil, err
		}
		eqs := elementEquations(s)
		for a, ra := range eqs {
			for b, cb := range eqs {
				if v := kg.At(a, b); v != 0 {
					K.Set(ra, cb, K.At(ra, cb)+v)
				}
			}
		}
	}

	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			spring, ok := nd.Springs[d].Get()
			if !ok || nd.SpringState(ref, d) != node.Active {
				continue
			}
			eq := equation(nd, d)
			K.Set(eq, eq, K.At(eq, eq)+spring.Stiffness)
		}
	}
	return K, nil
}

// loadVector returns the factored nodal load vector of a combination
func (m *Model) loadVector(ref loads.Ref) *mat.VecDense {
	combo := m.combos.At(ref)
	n := m.numEquations()

	// Unfactored vector per load case, then F = Σ factor·F_case
	cases := make(map[string][]float64)
	for _, nd := range m.nodes {
		for _, l := range nd.Loads {
			if _, ok := combo.Factor(l.Case); !ok {
				continue
			}
			v, found := cases[l.Case]
			if !found {
				v = make([]float64, n)
				cases[l.Case] = v
			}
			v[equation(nd, l.DOF)] += l.Magnitude
		}
	}

	F := make([]float64, n)
	for _, caseName := range slices.Sorted(maps.Keys(cases)) {
		factor, _ := combo.Factor(caseName)
		floats.AddScaled(F, factor, cases[caseName])
	}
	return mat.NewVecDense(n, F)
}

// baseLayout partitions the equations by supports and enforced displacements
func (m *Model) baseLayout() *partitions.DOFLayout {
	restrained := make([]bool, m.numEquations())
	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			restrained[equation(nd, d)] = nd.IsRestrained(d)
		}
	}
	return partitions.NewDOFLayout(restrained)
}

// prescribedVector holds the known displacement of every restrained equation
func (m *Model) prescribedVector() *mat.VecDense {
	D := mat.NewVecDense(m.numEquations(), nil)
	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			if nd.IsRestrained(d) {
				D.SetVec(equation(nd, d), nd.PrescribedDisplacement(d))
			}
		}
	}
	return D
}

// zeroStiffnessDOFs returns free equations without any stiffness. Unloaded
// ones are pinned (an axial element never stiffens rotations); a loaded one
// makes the structure unstable.
func (m *Model) zeroStiffnessDOFs(K mat.Matrix, F *mat.VecDense, layout *partitions.DOFLayout) ([]int, error) {
	n, _ := K.Dims()
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = K.At(i, i)
	}
	cutoff := 0.0
	if len(diag) > 0 {
		cutoff = 1e-12 * floats.Max(diag)
	}

	var pinned []int
	for _, eq := range layout.Free {
		if diag[eq] > cutoff {
			continue
		}
		if F.AtVec(eq) != 0 {
			return nil, &SingularSystemError{Detail: m.describeEquation(eq, "is loaded but has no stiffness")}
		}
		pinned = append(pinned, eq)
	}
	return pinned, nil
}

// describeEquation names the node, DOF and incident springs of an equation
func (m *Model) describeEquation(eq int, what string) string {
	nd := m.nodes[eq/node.NumDOF]
	d := node.DOF(eq % node.NumDOF)
	var names []string
	if m.connector != nil {
		for _, e := range m.connector.Elements(nd.ID) {
			names = append(names, m.springs[e].Name())
		}
	}
	return fmt.Sprintf("node %q %s %s (springs %v)", nd.Name, d, what, names)
}
