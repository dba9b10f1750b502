package match

import "github.com/mauv0809/tt-encounter/internal/scoring"

// New returns a waiting fixture with no set launched.
func New(encounterID string, number int, p1, p2 Player) Match {
	return Match{
		EncounterID: encounterID,
		MatchNumber: number,
		Player1:     p1,
		Player2:     p2,
		Sets:        []scoring.Set{},
		Status:      StatusWaiting,
	}
}

// PlayerOn returns the player recorded on the given side.
func (m *Match) PlayerOn(side scoring.Side) Player {
	if side == scoring.Side1 {
		return m.Player1
	}
	return m.Player2
}

// CurrentSet returns the last set of the match, if any.
func (m *Match) CurrentSet() (scoring.Set, bool) {
	if len(m.Sets) == 0 {
		return scoring.Set{}, false
	}
	return m.Sets[len(m.Sets)-1], true
}

// DisplaySetsWon returns the sets won without the set still being played.
func (m *Match) DisplaySetsWon() scoring.SetsWon {
	return scoring.SetsWonExcludingCurrent(m.Sets)
}

// IsFinished reports whether the match has been terminated.
func (m *Match) IsFinished() bool {
	return m.Status == StatusFinished
}

func (m *Match) closed() bool {
	return m.Status == StatusFinished || m.Status == StatusCancelled
}

// Launch opens the first set. It does nothing once a set exists.
func (m *Match) Launch() bool {
	if m.Status == StatusCancelled || len(m.Sets) > 0 {
		return false
	}
	m.Sets = []scoring.Set{{}}
	return true
}

// Start puts a waiting match on a table and opens its first set.
func (m *Match) Start(table int) bool {
	if m.Status != StatusWaiting || table < 1 {
		return false
	}
	m.Status = StatusInProgress
	m.TableNumber = &table
	m.Launch()
	return true
}

// UpdateScore adds delta, +1 or -1, to side in the current set. In the fifth set the
// sides flip whenever the leading score crosses five, in either direction.
func (m *Match) UpdateScore(side scoring.Side, delta int) bool {
	if m.closed() || len(m.Sets) == 0 {
		return false
	}
	index := len(m.Sets) - 1
	before := m.Sets[index]

	m.Sets = scoring.UpdatePoint(m.Sets, side, delta)
	after := m.Sets[index]
	if after == before {
		return false
	}

	if index == scoring.DecidingSetIndex && scoring.SidesShouldFlip(index, before, after) {
		m.SideFlipped = !m.SideFlipped
	}
	m.SetsWon = scoring.SetsWonIncludingCurrent(m.Sets)
	return true
}

// CanLaunchSet reports whether the current set is closed and another set is
// still needed.
func (m *Match) CanLaunchSet() bool {
	if m.closed() {
		return false
	}
	current, ok := m.CurrentSet()
	if !ok || current.IsZero() || !scoring.IsSetFinished(current) {
		return false
	}
	if len(m.Sets) >= scoring.MaxSets {
		return false
	}
	_, decided := scoring.SetsWonIncludingCurrent(m.Sets).Winner()
	return !decided
}

// LaunchSet opens the next set. Players change ends before every set but
// the first.
func (m *Match) LaunchSet() bool {
	if !m.CanLaunchSet() {
		return false
	}
	m.Sets = append(m.Sets, scoring.Set{})
	m.SetsWon = scoring.SetsWonIncludingCurrent(m.Sets)
	m.SideFlipped = !m.SideFlipped
	return true
}

// CanTerminate reports whether exactly one side has won three sets,
// counting a just finished current set.
func (m *Match) CanTerminate() bool {
	if m.closed() {
		return false
	}
	_, ok := scoring.SetsWonIncludingCurrent(m.Sets).Winner()
	return ok
}

// Terminate marks the match finished. The caller is responsible for
// crediting the winning team and running the encounter progression.
func (m *Match) Terminate() (Termination, bool) {
	if !m.CanTerminate() {
		return Termination{}, false
	}
	won := scoring.SetsWonIncludingCurrent(m.Sets)
	side, _ := won.Winner()

	m.SetsWon = won
	m.Status = StatusFinished
	return Termination{
		WinnerSide:   side,
		WinnerTeamID: m.PlayerOn(side).TeamID,
		SetsWon:      won,
	}, true
}

// WinnerTeamID returns the team credited with the win, using the stored
// sets won tally.
func (m *Match) WinnerTeamID() (string, bool) {
	if m.Status != StatusFinished {
		return "", false
	}
	side, ok := m.SetsWon.Winner()
	if !ok {
		return "", false
	}
	return m.PlayerOn(side).TeamID, true
}

// Reset brings the match back to a waiting state with a fresh first set.
// When the match was finished, the returned Reversal names the team whose
// win must be taken back. The stored tally is used because the sets are
// about to be cleared.
func (m *Match) Reset() (Reversal, bool) {
	if m.Status == StatusCancelled {
		return Reversal{}, false
	}
	var rev Reversal
	if teamID, ok := m.WinnerTeamID(); ok {
		rev = Reversal{Reversed: true, TeamID: teamID}
	}

	m.Sets = []scoring.Set{{}}
	m.SetsWon = scoring.SetsWon{}
	m.Status = StatusWaiting
	m.SideFlipped = false
	m.TableNumber = nil
	return rev, true
}

// Cancel makes a waiting or in progress match moot.
func (m *Match) Cancel() bool {
	if m.closed() {
		return false
	}
	m.Status = StatusCancelled
	m.TableNumber = nil
	return true
}
