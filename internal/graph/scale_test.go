package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraph_ResolveScale(t *testing.T) {
	t.Parallel()

	sc := ResolveScale(0, 100, 50, 100)
	require.Equal(t, 1.0, sc.Factor)
	require.Equal(t, 50, sc.BadLine)
	require.Equal(t, 100, sc.WorseLine)

	sc = ResolveScale(100, 100, 50, 100)
	require.Equal(t, 1.0, sc.Factor)

	// Outlier saturates at 1.5x the worse threshold.
	sc = ResolveScale(1000, 100, 100, 100)
	require.InDelta(t, 100.0/150, sc.Factor, 1e-9)
	require.Equal(t, 67, sc.BadLine)
	require.Equal(t, 67, sc.WorseLine)

	// Slightly too tall: track max with 10% headroom.
	sc = ResolveScale(120, 100, 50, 200)
	require.InDelta(t, 100.0/132, sc.Factor, 1e-9)
	require.Equal(t, 38, sc.BadLine)

	// Never scale beyond the drawable height.
	sc = ResolveScale(101, 100, 10, 20)
	require.Equal(t, 1.0, sc.Factor)
}

func TestGraph_ResolveScale_zeroHeight(t *testing.T) {
	t.Parallel()

	sc := ResolveScale(5, 0, 0, 0)
	require.Equal(t, 1.0, sc.Factor)

	sc = ResolveScale(5, 0, 10, 10)
	require.Equal(t, 0.0, sc.Factor)
	require.Equal(t, 0, sc.Value(10))
}

func TestGraph_Scale_YAndValue(t *testing.T) {
	t.Parallel()

	sc := Scale{Factor: 0.5}
	require.Equal(t, 25, sc.Y(50))
	require.Equal(t, 100, sc.Value(50))

	sc = Scale{Factor: 1}
	require.Equal(t, 7, sc.Y(7))
	require.Equal(t, 7, sc.Value(7))
}

func TestGraph_Classify(t *testing.T) {
	t.Parallel()

	require.Equal(t, LevelGood, Classify(49, 50, 100))
	require.Equal(t, LevelBad, Classify(50, 50, 100))
	require.Equal(t, LevelBad, Classify(99, 50, 100))
	require.Equal(t, LevelWorse, Classify(100, 50, 100))
	require.Equal(t, LevelWorse, Classify(100, 100, 100))
}

func TestGraph_ScaleFor(t *testing.T) {
	t.Parallel()

	sc := ScaleFor(0.25, 50, 130)
	require.Equal(t, 0.25, sc.Factor)
	require.Equal(t, 13, sc.BadLine) // 12.5 rounds away from zero
	require.Equal(t, 33, sc.WorseLine)
}
