package node

// ActiveState records whether a one-way member or support participates in a
// load combination. Unsolved means the combination has not been iterated yet
// and is distinct from Inactive.
type ActiveState uint8

const (
	Unsolved ActiveState = iota
	Active
	Inactive
)

func (s ActiveState) String() string {
	switch s {
	case Unsolved:
		return "unsolved"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	}
	return "unknown"
}

// StateOf converts a participation flag to its state
func StateOf(active bool) ActiveState {
	if active {
		return Active
	}
	return Inactive
}

// SpringDirection restricts the displacement sign a support spring resists
type SpringDirection uint8

const (
	Bidirectional SpringDirection = iota
	PositiveOnly                  // Resists positive displacement only
	NegativeOnly                  // Resists negative displacement only
)

func (d SpringDirection) String() string {
	switch d {
	case PositiveOnly:
		return "+"
	case NegativeOnly:
		return "-"
	}
	return "+/-"
}

// SupportSpring is an elastic support acting on a single nodal DOF
type SupportSpring struct {
	Stiffness float64
	Direction SpringDirection
}

// IsOneWay reports whether the spring takes part in the activation iteration
func (s SupportSpring) IsOneWay() bool { return s.Direction != Bidirectional }
