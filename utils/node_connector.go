package utils

import (
	"fmt"
)

// NodeConnector holds the incidence between nodes and two-node elements
type NodeConnector struct {
	// Mesh dimensions
	NumNodes    int
	NumElements int

	// Input connectivity
	EToN [][2]int // Element → (i-node, j-node)

	// Derived incidence
	NToE [][]int // Node → incident elements, ascending
}

// NewNodeConnector builds node incidence from element end-node indices
func NewNodeConnector(numNodes int, EToN [][2]int) (*NodeConnector, error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("invalid node count %d", numNodes)
	}

	nc := &NodeConnector{
		NumNodes:    numNodes,
		NumElements: len(EToN),
		EToN:        EToN,
		NToE:        make([][]int, numNodes),
	}

	for e, ends := range EToN {
		for _, n := range ends {
			if n < 0 || n >= numNodes {
				return nil, fmt.Errorf("element %d references node %d outside [0, %d)", e, n, numNodes)
			}
		}
		if ends[0] == ends[1] {
			return nil, fmt.Errorf("element %d connects node %d to itself", e, ends[0])
		}
		nc.NToE[ends[0]] = append(nc.NToE[ends[0]], e)
		nc.NToE[ends[1]] = append(nc.NToE[ends[1]], e)
	}

	return nc, nil
}

// Degree returns the number of elements meeting at node n
func (nc *NodeConnector) Degree(n int) int {
	if n < 0 || n >= nc.NumNodes {
		return 0
	}
	return len(nc.NToE[n])
}

// Elements returns the elements incident on node n
func (nc *NodeConnector) Elements(n int) []int {
	if n < 0 || n >= nc.NumNodes {
		return nil
	}
	return nc.NToE[n]
}

// Orphans returns the nodes no element connects to
func (nc *NodeConnector) Orphans() []int {
	var orphans []int
	for n := 0; n < nc.NumNodes; n++ {
		if len(nc.NToE[n]) == 0 {
			orphans = append(orphans, n)
		}
	}
	return orphans
}

// Verify checks that incidence and element ends agree
func (nc *NodeConnector) Verify() error {
	total := 0
	for n, elems := range nc.NToE {
		for _, e := range elems {
			if nc.EToN[e][0] != n && nc.EToN[e][1] != n {
				return fmt.Errorf("node %d lists element %d which does not reference it", n, e)
			}
		}
		total += len(elems)
	}
	if total != 2*nc.NumElements {
		return fmt.Errorf("conservation error: total incidences %d != 2 × elements %d",
			total, nc.NumElements)
	}
	return nil
}
