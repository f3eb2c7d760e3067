package element

import "fmt"

// GeometryError is returned when an element's endpoints coincide
type GeometryError struct {
	Element string
	INode   string
	JNode   string
	Length  float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("element %q: zero-length element, nodes %q and %q are %.3e apart",
		e.Element, e.INode, e.JNode, e.Length)
}

// NumericalError is returned when a transformation fails its orthonormality
// check. Valid geometry never produces one.
type NumericalError struct {
	Element   string
	Deviation float64 // max |M·Mᵀ - I|
	Matrix    string  // formatted offending matrix
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("element %q: transformation not orthonormal, max deviation %.3e\n%s",
		e.Element, e.Deviation, e.Matrix)
}
