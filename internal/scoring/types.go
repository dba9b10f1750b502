package scoring

// Side identifies one of the two columns of a match.
type Side string

const (
	Side1 Side = "side1"
	Side2 Side = "side2"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == Side1 || s == Side2
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Side1 {
		return Side2
	}
	return Side1
}

// Set holds the points of a single set, in play order of the match.
type Set struct {
	Side1 int `json:"side1" msgpack:"s1"`
	Side2 int `json:"side2" msgpack:"s2"`
}

// Points returns the points of the given side.
func (s Set) Points(side Side) int {
	if side == Side1 {
		return s.Side1
	}
	return s.Side2
}

// IsZero reports whether no point has been scored in the set.
func (s Set) IsZero() bool {
	return s.Side1 == 0 && s.Side2 == 0
}

// SetsWon is the number of finished sets won by each side.
type SetsWon struct {
	Side1 int `json:"side1" msgpack:"s1"`
	Side2 int `json:"side2" msgpack:"s2"`
}

// Of returns the sets won by the given side.
func (w SetsWon) Of(side Side) int {
	if side == Side1 {
		return w.Side1
	}
	return w.Side2
}

// Winner returns the side that has won SetsToWinMatch sets. ok is false
// when neither or both sides are at that count.
func (w SetsWon) Winner() (side Side, ok bool) {
	switch {
	case w.Side1 == SetsToWinMatch && w.Side2 != SetsToWinMatch:
		return Side1, true
	case w.Side2 == SetsToWinMatch && w.Side1 != SetsToWinMatch:
		return Side2, true
	}
	return "", false
}
