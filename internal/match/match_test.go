package match

import (
	"testing"

	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch() Match {
	return New("enc-1", 1,
		Player{ID: "a0", Name: "Alice", TeamID: "team-a"},
		Player{ID: "b0", Name: "Bob", TeamID: "team-b"},
	)
}

// scoreSet plays points for one side until the current set reaches the
// requested score, alternating when both sides need points.
func scoreSet(t *testing.T, m *Match, side1, side2 int) {
	t.Helper()
	for {
		current, ok := m.CurrentSet()
		require.True(t, ok)
		if current.Side1 == side1 && current.Side2 == side2 {
			return
		}
		if current.Side1 < side1 {
			require.True(t, m.UpdateScore(scoring.Side1, 1))
		}
		current, _ = m.CurrentSet()
		if current.Side2 < side2 {
			require.True(t, m.UpdateScore(scoring.Side2, 1))
		}
	}
}

func TestLaunch(t *testing.T) {
	m := newTestMatch()
	require.Empty(t, m.Sets)

	assert.True(t, m.Launch())
	assert.Equal(t, []scoring.Set{{}}, m.Sets)
	assert.Equal(t, StatusWaiting, m.Status)

	m.Sets[0] = scoring.Set{Side1: 3, Side2: 1}
	assert.False(t, m.Launch(), "launching twice must not clear the score")
	assert.Equal(t, []scoring.Set{{Side1: 3, Side2: 1}}, m.Sets)
}

func TestUpdateScore(t *testing.T) {
	t.Run("ignored before launch", func(t *testing.T) {
		m := newTestMatch()
		assert.False(t, m.UpdateScore(scoring.Side1, 1))
		assert.Empty(t, m.Sets)
	})

	t.Run("recomputes sets won including the current set", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		scoreSet(t, &m, 11, 7)
		assert.Equal(t, scoring.SetsWon{Side1: 1}, m.SetsWon)
		assert.Equal(t, scoring.SetsWon{}, m.DisplaySetsWon())
	})

	t.Run("increment blocked on finished set, correction allowed", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		scoreSet(t, &m, 11, 9)
		assert.False(t, m.UpdateScore(scoring.Side1, 1))
		assert.True(t, m.UpdateScore(scoring.Side1, -1))
		assert.Equal(t, []scoring.Set{{Side1: 10, Side2: 9}}, m.Sets)
		assert.Equal(t, scoring.SetsWon{}, m.SetsWon)
	})

	t.Run("multi point deltas are refused", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		assert.False(t, m.UpdateScore(scoring.Side1, 11))
		assert.Equal(t, []scoring.Set{{}}, m.Sets)
		assert.Equal(t, scoring.SetsWon{}, m.SetsWon)

		scoreSet(t, &m, 4, 3)
		assert.False(t, m.UpdateScore(scoring.Side1, -20))
		assert.Equal(t, []scoring.Set{{Side1: 4, Side2: 3}}, m.Sets)
	})

	t.Run("finished match is frozen", func(t *testing.T) {
		m := newTestMatch()
		m.Sets = []scoring.Set{{Side1: 11, Side2: 1}, {Side1: 11, Side2: 1}, {Side1: 11, Side2: 1}}
		_, ok := m.Terminate()
		require.True(t, ok)
		assert.False(t, m.UpdateScore(scoring.Side1, -1))
	})
}

func TestUpdateScore_DecidingSetFlip(t *testing.T) {
	m := newTestMatch()
	m.Sets = []scoring.Set{
		{Side1: 11, Side2: 9},
		{Side1: 9, Side2: 11},
		{Side1: 11, Side2: 9},
		{Side1: 9, Side2: 11},
		{Side1: 4, Side2: 3},
	}
	original := m.SideFlipped

	require.True(t, m.UpdateScore(scoring.Side1, 1))
	assert.Equal(t, !original, m.SideFlipped, "reaching 5 flips sides")

	require.True(t, m.UpdateScore(scoring.Side1, -1))
	assert.Equal(t, original, m.SideFlipped, "undoing the fifth point flips back")

	require.True(t, m.UpdateScore(scoring.Side2, 1))
	require.True(t, m.UpdateScore(scoring.Side2, 1))
	assert.Equal(t, !original, m.SideFlipped)
	require.True(t, m.UpdateScore(scoring.Side2, 1))
	assert.Equal(t, !original, m.SideFlipped, "no flip once past five")
}

func TestUpdateScore_NoFlipOutsideDecidingSet(t *testing.T) {
	m := newTestMatch()
	m.Sets = []scoring.Set{{Side1: 4, Side2: 3}}
	require.True(t, m.UpdateScore(scoring.Side1, 1))
	assert.False(t, m.SideFlipped)
}

func TestLaunchSet(t *testing.T) {
	t.Run("refused while the set is open", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		scoreSet(t, &m, 10, 9)
		assert.False(t, m.CanLaunchSet())
		assert.False(t, m.LaunchSet())
		assert.Len(t, m.Sets, 1)
	})

	t.Run("refused on the initial placeholder", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		assert.False(t, m.LaunchSet())
	})

	t.Run("appends a set and flips sides", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		scoreSet(t, &m, 11, 6)
		require.True(t, m.LaunchSet())
		assert.Equal(t, []scoring.Set{{Side1: 11, Side2: 6}, {}}, m.Sets)
		assert.Equal(t, scoring.SetsWon{Side1: 1}, m.SetsWon)
		assert.True(t, m.SideFlipped)
		assert.False(t, m.LaunchSet(), "second call before any point is a no-op")
		assert.Len(t, m.Sets, 2)
	})

	t.Run("refused once the match is decided", func(t *testing.T) {
		m := newTestMatch()
		m.Sets = []scoring.Set{{Side1: 11, Side2: 1}, {Side1: 11, Side2: 1}, {Side1: 11, Side2: 1}}
		assert.False(t, m.CanLaunchSet())
	})

	t.Run("never more than five sets", func(t *testing.T) {
		m := newTestMatch()
		m.Sets = []scoring.Set{
			{Side1: 11, Side2: 1}, {Side1: 1, Side2: 11},
			{Side1: 11, Side2: 1}, {Side1: 1, Side2: 11},
			{Side1: 11, Side2: 1},
		}
		assert.False(t, m.CanLaunchSet())
	})
}

func TestTerminate(t *testing.T) {
	m := newTestMatch()
	m.Sets = []scoring.Set{
		{Side1: 11, Side2: 9},
		{Side1: 9, Side2: 11},
		{Side1: 11, Side2: 9},
		{Side1: 9, Side2: 11},
	}
	assert.False(t, m.CanTerminate(), "2-2 is not a result")
	_, ok := m.Terminate()
	assert.False(t, ok)
	assert.Equal(t, StatusWaiting, m.Status)

	m.Sets = append(m.Sets, scoring.Set{})
	scoreSet(t, &m, 11, 8)
	require.True(t, m.CanTerminate())

	term, ok := m.Terminate()
	require.True(t, ok)
	assert.Equal(t, scoring.Side1, term.WinnerSide)
	assert.Equal(t, "team-a", term.WinnerTeamID)
	assert.Equal(t, scoring.SetsWon{Side1: 3, Side2: 2}, m.SetsWon)
	assert.Equal(t, StatusFinished, m.Status)
	assert.True(t, m.IsFinished())

	_, ok = m.Terminate()
	assert.False(t, ok, "terminating twice is a no-op")
}

func TestReset(t *testing.T) {
	t.Run("finished match reports the reversed winner", func(t *testing.T) {
		m := newTestMatch()
		table := 2
		m.TableNumber = &table
		m.Status = StatusInProgress
		m.Sets = []scoring.Set{{Side1: 3, Side2: 11}, {Side1: 3, Side2: 11}, {Side1: 3, Side2: 11}}
		_, ok := m.Terminate()
		require.True(t, ok)

		rev, ok := m.Reset()
		require.True(t, ok)
		assert.Equal(t, Reversal{Reversed: true, TeamID: "team-b"}, rev)
		assert.Equal(t, []scoring.Set{{}}, m.Sets)
		assert.Equal(t, scoring.SetsWon{}, m.SetsWon)
		assert.Equal(t, StatusWaiting, m.Status)
		assert.Nil(t, m.TableNumber)
		assert.False(t, m.SideFlipped)
	})

	t.Run("uses the stored tally rather than the sets", func(t *testing.T) {
		m := newTestMatch()
		m.Status = StatusFinished
		m.SetsWon = scoring.SetsWon{Side1: 3, Side2: 1}
		m.Sets = []scoring.Set{{}}

		rev, ok := m.Reset()
		require.True(t, ok)
		assert.Equal(t, "team-a", rev.TeamID)
	})

	t.Run("unfinished match reverses nothing", func(t *testing.T) {
		m := newTestMatch()
		m.Launch()
		scoreSet(t, &m, 5, 5)
		rev, ok := m.Reset()
		require.True(t, ok)
		assert.False(t, rev.Reversed)
		assert.Equal(t, []scoring.Set{{}}, m.Sets)
	})

	t.Run("cancelled match stays cancelled", func(t *testing.T) {
		m := newTestMatch()
		require.True(t, m.Cancel())
		_, ok := m.Reset()
		assert.False(t, ok)
		assert.Equal(t, StatusCancelled, m.Status)
	})
}

func TestStartAndCancel(t *testing.T) {
	m := newTestMatch()
	assert.False(t, m.Start(0))
	require.True(t, m.Start(3))
	assert.Equal(t, StatusInProgress, m.Status)
	require.NotNil(t, m.TableNumber)
	assert.Equal(t, 3, *m.TableNumber)
	assert.Equal(t, []scoring.Set{{}}, m.Sets)
	assert.False(t, m.Start(1), "already on a table")

	require.True(t, m.Cancel())
	assert.Equal(t, StatusCancelled, m.Status)
	assert.Nil(t, m.TableNumber)
	assert.False(t, m.Cancel())
	assert.False(t, m.Launch())
}
