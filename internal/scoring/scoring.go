package scoring

const (
	// PointsToWinSet is the minimum score of a finished set.
	PointsToWinSet = 11
	// WinningMargin is the lead required to close a set.
	WinningMargin = 2
	// SetsToWinMatch is the number of sets that wins a best-of-five match.
	SetsToWinMatch = 3
	// MaxSets is the length of a best-of-five match.
	MaxSets = 5
	// DecidingSetIndex is the zero-based index of the fifth set.
	DecidingSetIndex = MaxSets - 1
	// DecidingSetSwitchAt is the score at which sides switch in the fifth set.
	DecidingSetSwitchAt = 5
)

// IsSetFinished reports whether one side has reached 11 points with a two
// point lead. Deuce has no ceiling.
func IsSetFinished(set Set) bool {
	return max(set.Side1, set.Side2) >= PointsToWinSet && abs(set.Side1-set.Side2) >= WinningMargin
}

// UpdatePoint applies a delta of +1 or -1 to the given side of the last set
// and returns the resulting sequence. Any other delta is ignored. The input
// slice is never modified.
//
// Increments on a finished set are ignored. Decrements are always applied so
// that an accidental finishing point can be undone, and points never drop
// below zero.
func UpdatePoint(sets []Set, side Side, delta int) []Set {
	if len(sets) == 0 || (delta != 1 && delta != -1) || !side.Valid() {
		return sets
	}
	current := sets[len(sets)-1]
	if delta > 0 && IsSetFinished(current) {
		return sets
	}

	switch side {
	case Side1:
		current.Side1 = max(current.Side1+delta, 0)
	case Side2:
		current.Side2 = max(current.Side2+delta, 0)
	}

	out := make([]Set, len(sets))
	copy(out, sets)
	out[len(out)-1] = current
	return out
}

// SidesShouldFlip reports whether the players must switch ends after the
// score of the set at setIndex moved from prev to curr. It only applies to
// the deciding fifth set, where ends change when the leading score reaches
// five. A correction that goes back under five flips again.
func SidesShouldFlip(setIndex int, prev, curr Set) bool {
	if setIndex != DecidingSetIndex {
		return false
	}
	before := max(prev.Side1, prev.Side2)
	after := max(curr.Side1, curr.Side2)
	return (before < DecidingSetSwitchAt && after >= DecidingSetSwitchAt) ||
		(before >= DecidingSetSwitchAt && after < DecidingSetSwitchAt)
}

// SetsWonIncludingCurrent counts every finished set, the last one included.
// Use it to decide whether a match can be terminated.
func SetsWonIncludingCurrent(sets []Set) SetsWon {
	return countFinished(sets)
}

// SetsWonExcludingCurrent counts finished sets but ignores the last one,
// which is still being contested from a display point of view.
func SetsWonExcludingCurrent(sets []Set) SetsWon {
	if len(sets) == 0 {
		return SetsWon{}
	}
	return countFinished(sets[:len(sets)-1])
}

func countFinished(sets []Set) SetsWon {
	var won SetsWon
	for _, set := range sets {
		if !IsSetFinished(set) {
			continue
		}
		if set.Side1 > set.Side2 {
			won.Side1++
		} else {
			won.Side2++
		}
	}
	return won
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
