package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/notargets/springfem/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bracedFrame is a 4×3 bay pinned at A and B with tension-only diagonals
// AD and BC, loaded laterally at C
func bracedFrame(t *testing.T, cfg Config) *Model {
	t.Helper()
	m := NewModel(cfg)
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
	for _, s := range []struct {
		name, i, j  string
		tensionOnly bool
	}{
		{"AC", "A", "C", false},
		{"BD", "B", "D", false},
		{"CD", "C", "D", false},
		{"AD", "A", "D", true},
		{"BC", "B", "C", true},
	} {
		_, err := m.AddSpring(s.name, s.i, s.j, 2e5, s.tensionOnly, false)
		require.NoError(t, err)
	}
	require.NoError(t, m.AddNodeLoad("C", node.DX, 10, "Wind"))
	require.NoError(t, m.AddCombination("W+", []string{"wind"}, map[string]float64{"Wind": 1}))
	require.NoError(t, m.AddCombination("W-", []string{"wind"}, map[string]float64{"Wind": -1}))
	return m
}

func sumReactions(t *testing.T, m *Model, combo string) node.Vector {
	t.Helper()
	var sum node.Vector
	for _, n := range m.Nodes() {
		R, err := m.NodeReactions(n.Name, combo)
		require.NoError(t, err)
		for d := range sum {
			sum[d] += R[d]
		}
	}
	return sum
}

func TestBracedFrame(t *testing.T) {
	m := bracedFrame(t, Config{})
	run, err := m.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, run.Combinations, 2)

	for _, tc := range []struct {
		combo             string
		tension, released string
		column            string
		load, columnAxial float64
	}{
		{"W+", "AD", "BC", "BD", 10, -7.5},
		{"W-", "BC", "AD", "AC", -10, -7.5},
	} {
		t.Run(tc.combo, func(t *testing.T) {
			res := run.Result(tc.combo)
			require.NotNil(t, res)
			assert.True(t, res.Converged)
			assert.Equal(t, 2, res.Iterations)
			assert.Equal(t, []string{tc.released}, res.Inactive)

			state, err := m.SpringState(tc.tension, tc.combo)
			require.NoError(t, err)
			assert.Equal(t, node.Active, state)
			state, err = m.SpringState(tc.released, tc.combo)
			require.NoError(t, err)
			assert.Equal(t, node.Inactive, state)

			P, err := m.SpringAxialForce(tc.tension, tc.combo)
			require.NoError(t, err)
			assert.InDelta(t, 12.5, P, 1e-6)
			P, err = m.SpringAxialForce(tc.released, tc.combo)
			require.NoError(t, err)
			assert.InDelta(t, 0, P, 1e-9)
			P, err = m.SpringAxialForce(tc.column, tc.combo)
			require.NoError(t, err)
			assert.InDelta(t, tc.columnAxial, P, 1e-6)

			sum := sumReactions(t, m, tc.combo)
			assert.InDelta(t, -tc.load, sum[node.DX], 1e-6)
			assert.InDelta(t, 0, sum[node.DY], 1e-6)
		})
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	build := func(workers int) *Model {
		m := bracedFrame(t, Config{Workers: workers})
		for k := 2; k <= 6; k++ {
			require.NoError(t, m.AddCombination(fmt.Sprintf("%dW", k), nil,
				map[string]float64{"Wind": float64(k) * 0.5}))
		}
		return m
	}
	serial, parallel := build(1), build(4)
	_, err := serial.Analyze(context.Background())
	require.NoError(t, err)
	_, err = parallel.Analyze(context.Background())
	require.NoError(t, err)

	for _, c := range serial.Combinations() {
		for _, n := range serial.Nodes() {
			want, err := serial.NodeDisplacements(n.Name, c.Name)
			require.NoError(t, err)
			got, err := parallel.NodeDisplacements(n.Name, c.Name)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s %s", c.Name, n.Name)
		}
		for _, s := range serial.Springs() {
			want, err := serial.SpringState(s.Name(), c.Name)
			require.NoError(t, err)
			got, err := parallel.SpringState(s.Name(), c.Name)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s %s", c.Name, s.Name())
		}
	}
}

func TestAnalyzeSelected(t *testing.T) {
	m := bracedFrame(t, Config{})
	run, err := m.Analyze(context.Background(), "W-")
	require.NoError(t, err)
	require.Len(t, run.Combinations, 1)
	assert.Nil(t, run.Result("W+"))

	_, err = m.NodeDisplacements("C", "W+")
	var missing *node.MissingCombinationError
	assert.ErrorAs(t, err, &missing)

	_, err = m.Analyze(context.Background(), "W?")
	assert.Error(t, err)
}

func TestAnalyzeCancelled(t *testing.T) {
	m := bracedFrame(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := m.Analyze(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range run.Combinations {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Zero(t, res.Iterations)
	}
}

func TestRepeatedRunsStartFresh(t *testing.T) {
	m := bracedFrame(t, Config{})
	for range 2 {
		run, err := m.Analyze(context.Background(), "W+")
		require.NoError(t, err)
		assert.Equal(t, 2, run.Result("W+").Iterations)
		assert.Equal(t, []string{"BC"}, run.Result("W+").Inactive)
	}

	m.Reset()
	run, err := m.Analyze(context.Background(), "W+")
	require.NoError(t, err)
	assert.Equal(t, 2, run.Result("W+").Iterations)
}
