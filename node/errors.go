package node

import "fmt"

// MissingCombinationError reports a request for results of a combination
// that has not been solved for this node
type MissingCombinationError struct {
	Node        string
	Combination string
}

func (e *MissingCombinationError) Error() string {
	return fmt.Sprintf("node %q: no results for load combination %q (not solved yet)",
		e.Node, e.Combination)
}
