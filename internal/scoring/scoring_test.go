package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSetFinished(t *testing.T) {
	tests := []struct {
		name     string
		set      Set
		finished bool
	}{
		{"11-9 closes the set", Set{11, 9}, true},
		{"11-10 is not enough", Set{11, 10}, false},
		{"13-11 after deuce", Set{13, 11}, true},
		{"10-10 deuce", Set{10, 10}, false},
		{"9-11 for side two", Set{9, 11}, true},
		{"11-0", Set{11, 0}, true},
		{"10-8 below eleven", Set{10, 8}, false},
		{"25-24 long deuce", Set{25, 24}, false},
		{"0-0", Set{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.finished, IsSetFinished(tt.set))
		})
	}
}

func TestIsSetFinished_MatchesDefinitionOnGrid(t *testing.T) {
	for a := 0; a <= 20; a++ {
		for b := 0; b <= 20; b++ {
			diff := a - b
			if diff < 0 {
				diff = -diff
			}
			want := max(a, b) >= 11 && diff >= 2
			require.Equal(t, want, IsSetFinished(Set{a, b}), "score %d-%d", a, b)
		}
	}
}

func TestUpdatePoint(t *testing.T) {
	t.Run("empty sequence is left untouched", func(t *testing.T) {
		assert.Empty(t, UpdatePoint(nil, Side1, 1))
	})

	t.Run("increment only touches the last set", func(t *testing.T) {
		sets := []Set{{11, 5}, {3, 4}}
		got := UpdatePoint(sets, Side2, 1)
		assert.Equal(t, []Set{{11, 5}, {3, 5}}, got)
		assert.Equal(t, Set{3, 4}, sets[1], "input must not be mutated")
	})

	t.Run("increment on a finished set is ignored", func(t *testing.T) {
		got := UpdatePoint([]Set{{11, 9}}, Side1, 1)
		assert.Equal(t, []Set{{11, 9}}, got)
	})

	t.Run("decrement on a finished set is applied", func(t *testing.T) {
		got := UpdatePoint([]Set{{11, 9}}, Side1, -1)
		assert.Equal(t, []Set{{10, 9}}, got)
	})

	t.Run("decrement is floored at zero", func(t *testing.T) {
		got := UpdatePoint([]Set{{0, 4}}, Side1, -1)
		assert.Equal(t, []Set{{0, 4}}, got)
	})

	t.Run("deuce keeps accepting points", func(t *testing.T) {
		sets := []Set{{10, 10}}
		sets = UpdatePoint(sets, Side1, 1)
		sets = UpdatePoint(sets, Side2, 1)
		sets = UpdatePoint(sets, Side1, 1)
		assert.Equal(t, []Set{{12, 11}}, sets)
		sets = UpdatePoint(sets, Side1, 1)
		assert.True(t, IsSetFinished(sets[0]))
	})

	t.Run("only single points are applied", func(t *testing.T) {
		sets := []Set{{3, 2}}
		assert.Equal(t, sets, UpdatePoint(sets, Side1, 11))
		assert.Equal(t, sets, UpdatePoint(sets, Side2, -2))
		assert.Equal(t, sets, UpdatePoint(sets, Side1, 0))
	})

	t.Run("unknown side is ignored", func(t *testing.T) {
		got := UpdatePoint([]Set{{1, 1}}, Side("side3"), 1)
		assert.Equal(t, []Set{{1, 1}}, got)
	})
}

func TestSidesShouldFlip(t *testing.T) {
	tests := []struct {
		name  string
		index int
		prev  Set
		curr  Set
		want  bool
	}{
		{"reaching five in the fifth set", 4, Set{4, 3}, Set{5, 3}, true},
		{"correction back under five", 4, Set{5, 3}, Set{4, 3}, true},
		{"trailing side reaching five", 4, Set{2, 4}, Set{2, 5}, true},
		{"already past five", 4, Set{5, 3}, Set{6, 3}, false},
		{"still under five", 4, Set{3, 3}, Set{4, 3}, false},
		{"other side scores while leader is at five", 4, Set{5, 3}, Set{5, 4}, false},
		{"fourth set never flips", 3, Set{4, 3}, Set{5, 3}, false},
		{"first set never flips", 0, Set{4, 3}, Set{5, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SidesShouldFlip(tt.index, tt.prev, tt.curr))
		})
	}
}

func TestSetsWon(t *testing.T) {
	sets := []Set{{11, 9}, {5, 11}, {12, 10}, {11, 4}}

	t.Run("including current counts a just finished last set", func(t *testing.T) {
		assert.Equal(t, SetsWon{Side1: 3, Side2: 1}, SetsWonIncludingCurrent(sets))
	})

	t.Run("excluding current ignores the last set", func(t *testing.T) {
		assert.Equal(t, SetsWon{Side1: 2, Side2: 1}, SetsWonExcludingCurrent(sets))
	})

	t.Run("unfinished sets are never counted", func(t *testing.T) {
		assert.Equal(t, SetsWon{}, SetsWonIncludingCurrent([]Set{{10, 9}}))
	})

	t.Run("empty sequence", func(t *testing.T) {
		assert.Equal(t, SetsWon{}, SetsWonExcludingCurrent(nil))
		assert.Equal(t, SetsWon{}, SetsWonIncludingCurrent(nil))
	})
}

func TestSetsWon_Winner(t *testing.T) {
	side, ok := SetsWon{Side1: 3, Side2: 2}.Winner()
	require.True(t, ok)
	assert.Equal(t, Side1, side)

	side, ok = SetsWon{Side1: 1, Side2: 3}.Winner()
	require.True(t, ok)
	assert.Equal(t, Side2, side)

	_, ok = SetsWon{Side1: 2, Side2: 2}.Winner()
	assert.False(t, ok)
}
