package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/material"
	"github.com/notargets/springfem/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoNodeModel is A fixed at the origin, B free at (2,0,0), joined by S1
func twoNodeModel(t *testing.T, cfg Config, ks float64, tensionOnly, compOnly bool) *Model {
	t.Helper()
	m := NewModel(cfg)
	a, err := m.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	a.Fix()
	_, err = m.AddNode("B", 2, 0, 0)
	require.NoError(t, err)
	_, err = m.AddSpring("S1", "A", "B", ks, tensionOnly, compOnly)
	require.NoError(t, err)
	return m
}

func TestModelNames(t *testing.T) {
	m := NewModel(Config{})
	_, err := m.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = m.AddNode("A", 1, 0, 0)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = m.AddNode("B", 1, 0, 0)
	require.NoError(t, err)
	_, err = m.AddSpring("S1", "A", "B", 10, false, false)
	require.NoError(t, err)
	_, err = m.AddSpring("S1", "A", "B", 10, false, false)
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = m.AddSpring("S2", "A", "Z", 10, false, false)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = m.AddSpring("S3", "A", "A", 10, false, false)
	assert.Error(t, err)
	_, err = m.AddSpring("S4", "A", "B", 0, false, false)
	assert.Error(t, err)

	_, err = m.Spring("nope")
	assert.ErrorIs(t, err, ErrUnknownSpring)
	assert.ErrorIs(t, m.AddNodeLoad("Z", node.DX, 1, "Case 1"), ErrUnknownNode)

	require.NoError(t, m.AddCombination("W", nil, map[string]float64{"Wind": 1}))
	assert.ErrorIs(t, m.AddCombination("W", nil, nil), loads.ErrDuplicateCombination)
	assert.NoError(t, m.AddCombination("W", nil, map[string]float64{"Wind": 1}))
	require.NoError(t, m.AddCombination("Z", nil, map[string]float64{"Wind": 0}))
	assert.NoError(t, m.AddCombination("Z", nil, map[string]float64{"Wind": math.Copysign(0, -1)}))
	assert.Len(t, m.Nodes(), 2)
	assert.Len(t, m.Springs(), 1)
	assert.Len(t, m.Combinations(), 1)
}

func TestEmptyModel(t *testing.T) {
	_, err := NewModel(Config{}).Analyze(context.Background())
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestAddTrussMember(t *testing.T) {
	m := NewModel(Config{})
	steel, err := material.New("Steel", 200e9, 77e9, 0.3, 7850, 250e6)
	require.NoError(t, err)
	require.NoError(t, m.AddMaterial(steel))
	assert.ErrorIs(t, m.AddMaterial(steel), ErrDuplicateName)

	_, err = m.AddNode("A", 0, 0, 0)
	require.NoError(t, err)
	_, err = m.AddNode("B", 0, 3, 4)
	require.NoError(t, err)

	s, err := m.AddTrussMember("M1", "A", "B", "Steel", 1e-3, true, false)
	require.NoError(t, err)
	assert.InDelta(t, 200e9*1e-3/5, s.Stiffness(), 1e-3)
	assert.True(t, s.TensionOnly)

	_, err = m.AddTrussMember("M2", "A", "B", "Aluminium", 1e-3, false, false)
	assert.Error(t, err)
	_, err = m.AddTrussMember("M3", "A", "B", "Steel", -1, false, false)
	assert.Error(t, err)
}

func TestDefaultCombination(t *testing.T) {
	m := twoNodeModel(t, Config{}, 1000, false, false)
	require.NoError(t, m.AddNodeLoad("B", node.DX, 10, DefaultLoadCase))

	run, err := m.Analyze(context.Background())
	require.NoError(t, err)
	require.NotNil(t, m.Combination(DefaultCombination))
	require.Len(t, run.Combinations, 1)
	assert.True(t, run.Result(DefaultCombination).Converged)

	D, err := m.NodeDisplacements("B", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, D[node.DX], 1e-12)
	for _, d := range []node.DOF{node.DY, node.DZ, node.RX, node.RY, node.RZ} {
		assert.Zero(t, D[d], d.String())
	}

	P, err := m.SpringAxialForce("S1", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, 10, P, 1e-9)

	R, err := m.NodeReactions("A", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, -10, R[node.DX], 1e-9)

	F, err := m.SpringGlobalEndForces("S1", DefaultCombination)
	require.NoError(t, err)
	require.Len(t, F, 12)
	assert.InDelta(t, -10, F[0], 1e-9)
	assert.InDelta(t, 10, F[6], 1e-9)
}

func TestResultsBeforeAnalysis(t *testing.T) {
	m := twoNodeModel(t, Config{}, 1000, false, false)
	require.NoError(t, m.AddCombination("C1", nil, map[string]float64{"Case 1": 1}))

	_, err := m.NodeDisplacements("B", "C1")
	var missing *node.MissingCombinationError
	assert.ErrorAs(t, err, &missing)

	_, err = m.NodeDisplacements("B", "C2")
	assert.ErrorIs(t, err, loads.ErrUnknownCombination)
	_, err = m.SpringAxialForce("S9", "C1")
	assert.ErrorIs(t, err, ErrUnknownSpring)
}

func TestEnforcedDisplacement(t *testing.T) {
	m := twoNodeModel(t, Config{}, 50, false, false)
	b, err := m.Node("B")
	require.NoError(t, err)
	b.SetEnforced(node.DX, 0.02)

	_, err = m.Analyze(context.Background())
	require.NoError(t, err)

	D, err := m.NodeDisplacements("B", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, D[node.DX], 1e-15)

	P, err := m.SpringAxialForce("S1", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, P, 1e-12)

	RA, err := m.NodeReactions("A", DefaultCombination)
	require.NoError(t, err)
	RB, err := m.NodeReactions("B", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, RA[node.DX], 1e-12)
	assert.InDelta(t, 1.0, RB[node.DX], 1e-12)
}

func TestSupportSpringReaction(t *testing.T) {
	m := twoNodeModel(t, Config{}, 1000, false, false)
	b, err := m.Node("B")
	require.NoError(t, err)
	require.NoError(t, b.SetSpring(node.DY, 200, node.Bidirectional))
	require.NoError(t, m.AddNodeLoad("B", node.DY, -4, DefaultLoadCase))

	_, err = m.Analyze(context.Background())
	require.NoError(t, err)

	D, err := m.NodeDisplacements("B", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, -0.02, D[node.DY], 1e-12)

	R, err := m.NodeReactions("B", DefaultCombination)
	require.NoError(t, err)
	assert.InDelta(t, 4, R[node.DY], 1e-12)
}

func TestUnstableStructure(t *testing.T) {
	// Loaded DOF without stiffness
	m := twoNodeModel(t, Config{}, 1000, false, false)
	require.NoError(t, m.AddNodeLoad("B", node.DY, 5, DefaultLoadCase))

	run, err := m.Analyze(context.Background())
	var singular *SingularSystemError
	require.ErrorAs(t, err, &singular)
	assert.Equal(t, DefaultCombination, singular.Combination)
	assert.Contains(t, singular.Detail, `"B"`)
	assert.Contains(t, singular.Detail, "S1")
	assert.False(t, run.Result(DefaultCombination).Converged)

	// Racking mechanism of an unbraced frame
	m = NewModel(Config{})
	for _, p := range []struct {
		name string
		x, y float64
	}{{"A", 0, 0}, {"B", 4, 0}, {"C", 0, 3}, {"D", 4, 3}} {
		n, err := m.AddNode(p.name, p.x, p.y, 0)
		require.NoError(t, err)
		if p.y == 0 {
			n.Pin()
		}
	}
	for _, s := range [][3]string{{"AC", "A", "C"}, {"BD", "B", "D"}, {"CD", "C", "D"}} {
		_, err := m.AddSpring(s[0], s[1], s[2], 1e4, false, false)
		require.NoError(t, err)
	}
	require.NoError(t, m.AddNodeLoad("C", node.DX, 1, DefaultLoadCase))

	_, err = m.Analyze(context.Background())
	assert.ErrorAs(t, err, &singular)
}
