package element

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// GeometryEpsilon is the coordinate tolerance for coincident ends and
	// the vertical/horizontal classification
	GeometryEpsilon = 1e-10
	// OrthonormalTol bounds max |M·Mᵀ - I| for a valid transformation
	OrthonormalTol = 1e-9
)

// LocalAxes returns the local x, y, z unit vectors in global coordinates.
//
// Local x runs from the i-node to the j-node. An axial element has no
// bending reference, so y and z are fixed by convention:
//   - vertical (X and Z equal): y = ∓X depending on the Y run, z = +Z
//   - horizontal (Y equal):     y = +Y, z = x × y
//   - skew:                     z from the X-Z projection of the member, y = z × x
func (s *Spring) LocalAxes() (x, y, z r3.Vec, err error) {
	p1, p2 := s.i.Coordinates(), s.j.Coordinates()
	d := r3.Sub(p2, p1)

	L := r3.Norm(d)
	if L < GeometryEpsilon {
		err = &GeometryError{Element: s.name, INode: s.i.Name, JNode: s.j.Name, Length: L}
		return
	}
	x = r3.Scale(1/L, d)

	switch {
	case math.Abs(p1.X-p2.X) < GeometryEpsilon && math.Abs(p1.Z-p2.Z) < GeometryEpsilon:
		if p2.Y > p1.Y {
			y = r3.Vec{X: -1}
		} else {
			y = r3.Vec{X: 1}
		}
		z = r3.Vec{Z: 1}
	case math.Abs(p1.Y-p2.Y) < GeometryEpsilon:
		y = r3.Vec{Y: 1}
		z = r3.Unit(r3.Cross(x, y))
	default:
		proj := r3.Vec{X: d.X, Z: d.Z}
		if p2.Y > p1.Y {
			z = r3.Cross(proj, x)
		} else {
			z = r3.Cross(x, proj)
		}
		z = r3.Unit(z)
		y = r3.Unit(r3.Cross(z, x))
	}
	return
}

// DirectionCosines returns the 3×3 matrix whose rows are the local axes
func (s *Spring) DirectionCosines() (*mat.Dense, error) {
	x, y, z, err := s.LocalAxes()
	if err != nil {
		return nil, err
	}
	dc := mat.NewDense(3, 3, []float64{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	})
	if dev := OrthonormalDeviation(dc); dev > OrthonormalTol {
		return nil, &NumericalError{
			Element:   s.name,
			Deviation: dev,
			Matrix:    FormatMatrix("direction cosines", dc),
		}
	}
	return dc, nil
}

// TransformationMatrix returns the 12×12 global-to-local transformation:
// the direction cosines repeated on four diagonal blocks. It is orthonormal,
// so its inverse is its transpose.
func (s *Spring) TransformationMatrix() (*mat.Dense, error) {
	dc, err := s.DirectionCosines()
	if err != nil {
		return nil, err
	}

	T := mat.NewDense(NumDOF, NumDOF, nil)
	for b := 0; b < NumDOF; b += 3 {
		T.Slice(b, b+3, b, b+3).(*mat.Dense).Copy(dc)
	}

	if verifyTransforms {
		if dev := OrthonormalDeviation(T); dev > OrthonormalTol {
			return nil, &NumericalError{
				Element:   s.name,
				Deviation: dev,
				Matrix:    FormatMatrix("T", T),
			}
		}
	}
	return T, nil
}

// OrthonormalDeviation returns max |M·Mᵀ - I| for a square matrix
func OrthonormalDeviation(m mat.Matrix) float64 {
	n, _ := m.Dims()
	var p mat.Dense
	p.Mul(m, m.T())

	maxDev := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if dev := math.Abs(p.At(i, j) - want); dev > maxDev {
				maxDev = dev
			}
		}
	}
	return maxDev
}
