package scheduling

import "errors"

var (
	// ErrTableBusy is returned when another match is in progress on the
	// requested table.
	ErrTableBusy          = errors.New("table is busy")
	ErrTableOutOfRange    = errors.New("table out of range")
	ErrInvalidComposition = errors.New("invalid doubles composition")
)

// pairSeparator joins the two partners of a doubles side.
const pairSeparator = " / "

// Scheduler places fixtures on tables and fills in doubles pairs.
type Scheduler struct {
	store Store
}
