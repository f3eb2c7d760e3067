package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownSpring = errors.New("unknown spring")
	ErrEmptyModel    = errors.New("model has no nodes")
)

// NonConvergenceError is returned when the activation iteration for a load
// combination reaches its cap with states still changing. Node results and
// active states are left as computed in the last pass.
type NonConvergenceError struct {
	Combination string
	Iterations  int
	Changed     []string // Members and supports whose state changed in the last pass
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("load combination %q: activation did not converge in %d iterations, last pass changed [%s]",
		e.Combination, e.Iterations, strings.Join(e.Changed, ", "))
}

// SingularSystemError reports an unstable structure for a load combination
type SingularSystemError struct {
	Combination string
	Detail      string
}

func (e *SingularSystemError) Error() string {
	if e.Combination == "" {
		return "singular stiffness matrix: " + e.Detail
	}
	return fmt.Sprintf("load combination %q: singular stiffness matrix: %s", e.Combination, e.Detail)
}
