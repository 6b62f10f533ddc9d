package queens

import (
	"errors"
	"fmt"
)

// MaxBoardSize bounds the board sizes accepted by NewBoard. The pairwise
// encoding grows with the cube of the size.
const MaxBoardSize = 128

var (
	// ErrUndecided is returned when the oracle can neither prove nor
	// refute satisfiability. It is never conflated with exhaustion.
	ErrUndecided = errors.New("oracle could not decide satisfiability")
	// ErrIncomplete is returned when enumeration is cancelled, times out
	// or hits its solution limit before the search space is exhausted.
	ErrIncomplete = errors.New("enumeration stopped before the search space was exhausted")
	// ErrInvalidPlacement indicates a decoded placement that violates
	// the asserted constraints.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// InvalidBoardSize is returned for board sizes outside 1..MaxBoardSize.
type InvalidBoardSize int

func (e InvalidBoardSize) Error() string {
	return fmt.Sprintf("invalid board size %d: must be between 1 and %d", int(e), MaxBoardSize)
}

// ValidateSize returns an InvalidBoardSize error unless n is an
// acceptable board size.
func ValidateSize(n int) error {
	if n < 1 || n > MaxBoardSize {
		return InvalidBoardSize(n)
	}
	return nil
}
