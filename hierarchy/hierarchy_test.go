package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEdges describes a small two-level hierarchy:
//
//	        root
//	       /    \
//	  animal    plant
//	  /    \        \
//	cat    dog     tree
func testEdges() [][2]string {
	return [][2]string{
		{"root", "animal"},
		{"root", "plant"},
		{"animal", "cat"},
		{"animal", "dog"},
		{"plant", "tree"},
	}
}

func TestFromReader(t *testing.T) {
	t.Run("SkipsCommentsAndBlanks", func(t *testing.T) {
		h, err := FromReader(strings.NewReader(`
# taxonomy edges
root animal

root	plant
animal cat
animal dog
plant tree
`))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"cat", "dog", "tree"}, h.Leaves())
		assert.Equal(t, []string{"root"}, h.Roots())
	})

	t.Run("MalformedLine", func(t *testing.T) {
		_, err := FromReader(strings.NewReader("root animal\nroot plant tree\n"))
		assert.ErrorIs(t, err, ErrMalformedLine)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestHeights(t *testing.T) {
	h, err := New(testEdges())
	require.NoError(t, err)

	for node, want := range map[string]int{
		"cat": 0, "dog": 0, "tree": 0,
		"animal": 1, "plant": 1,
		"root": 2,
	} {
		got, err := h.Height(node)
		require.NoError(t, err, node)
		assert.Equal(t, want, got, node)
	}

	assert.Equal(t, 2, h.MaxHeight())

	_, err = h.Height("fungus")
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestCycleDetection(t *testing.T) {
	_, err := New([][2]string{
		{"a", "b"},
		{"b", "c"},
		{"c", "a"},
	})
	assert.ErrorIs(t, err, ErrCycle)
}

func TestLCSHeight(t *testing.T) {
	h, err := New(testEdges())
	require.NoError(t, err)

	tests := []struct {
		a, b string
		want int
	}{
		{"cat", "cat", 0},
		{"cat", "dog", 1},
		{"cat", "tree", 2},
		{"animal", "dog", 1},
		{"root", "cat", 2},
	}

	for _, tt := range tests {
		got, err := h.LCSHeight(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)

		// Symmetric by construction.
		rev, err := h.LCSHeight(tt.b, tt.a)
		require.NoError(t, err)
		assert.Equal(t, got, rev)
	}
}

func TestLCSHeightDisjointRoots(t *testing.T) {
	h, err := New([][2]string{
		{"a", "b"},
		{"c", "d"},
	})
	require.NoError(t, err)

	_, err = h.LCSHeight("b", "d")
	assert.ErrorIs(t, err, ErrNoCommonAncestor)
}

func TestDiamond(t *testing.T) {
	// b has two parents; the lower common subsumer must win.
	h, err := New([][2]string{
		{"root", "mid"},
		{"root", "b"},
		{"mid", "b"},
		{"mid", "c"},
	})
	require.NoError(t, err)

	lcs, err := h.LCSHeight("b", "c")
	require.NoError(t, err)
	assert.Equal(t, 1, lcs)
}

func TestDistances(t *testing.T) {
	h, err := New(testEdges())
	require.NoError(t, err)

	classes := []string{"cat", "dog", "tree"}

	dm, err := h.Distances(classes)
	require.NoError(t, err)
	require.Equal(t, 3, dm.N())

	// cat-dog share "animal" (height 1), everything else meets at the
	// root (height 2 = max), so those pairs are at distance 1.
	assert.InDelta(t, 0.5, dm.At(0, 1), 1e-15)
	assert.InDelta(t, 1.0, dm.At(0, 2), 1e-15)
	assert.InDelta(t, 1.0, dm.At(1, 2), 1e-15)

	for i := 0; i < 3; i++ {
		assert.Zero(t, dm.At(i, i))

		for j := 0; j < 3; j++ {
			assert.Equal(t, dm.At(i, j), dm.At(j, i))
		}
	}
}

func TestDistancesErrors(t *testing.T) {
	h, err := New(testEdges())
	require.NoError(t, err)

	_, err = h.Distances(nil)
	assert.ErrorIs(t, err, ErrNoClasses)

	_, err = h.Distances([]string{"cat", "fungus"})
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestSortClasses(t *testing.T) {
	t.Run("Numeric", func(t *testing.T) {
		sorted, err := SortClasses([]string{"10", "2", "1"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "10"}, sorted)
	})

	t.Run("NumericRejectsStrings", func(t *testing.T) {
		_, err := SortClasses([]string{"10", "cat"}, true)
		assert.Error(t, err)
	})

	t.Run("Strings", func(t *testing.T) {
		sorted, err := SortClasses([]string{"10", "2", "1"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "10", "2"}, sorted)
	})
}
