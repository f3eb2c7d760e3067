package node

// DOF identifies one of the six nodal degrees of freedom
type DOF uint8

const (
	DX DOF = iota // Translation along global X
	DY            // Translation along global Y
	DZ            // Translation along global Z
	RX            // Rotation about global X
	RY            // Rotation about global Y
	RZ            // Rotation about global Z
)

// NumDOF is the number of degrees of freedom per node
const NumDOF = 6

// DOFs lists every degree of freedom in storage order
var DOFs = [NumDOF]DOF{DX, DY, DZ, RX, RY, RZ}

func (d DOF) String() string {
	switch d {
	case DX:
		return "DX"
	case DY:
		return "DY"
	case DZ:
		return "DZ"
	case RX:
		return "RX"
	case RY:
		return "RY"
	case RZ:
		return "RZ"
	}
	return "DOF(?)"
}

// IsTranslation reports whether d is a translational DOF
func (d DOF) IsTranslation() bool { return d <= DZ }

// Vector is a value per degree of freedom
type Vector [NumDOF]float64
