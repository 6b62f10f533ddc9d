package queens

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Placement is a set of occupied squares, kept sorted by row and then
// column so that equal placements compare equal.
type Placement []Square

// NewPlacement returns the placement occupying squares.
func NewPlacement(squares ...Square) Placement {
	p := Placement(slices.Clone(squares))
	slices.SortFunc(p, func(a, b Square) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return p
}

// Key identifies the placement among placements of the same board.
func (p Placement) Key() string {
	return strings.Join(lo.Map(p, func(s Square, _ int) string {
		return s.String()
	}), "")
}

func (p Placement) String() string {
	return "[" + p.Key() + "]"
}

// Validate checks that p is a solution of the n-queens problem: n
// queens, one per row and column, no two on a shared diagonal.
func (p Placement) Validate(n int) error {
	if len(p) != n {
		return fmt.Errorf("%w: %d queens on a board of size %d", ErrInvalidPlacement, len(p), n)
	}
	rows := map[int]Square{}
	cols := map[int]Square{}
	majors := map[int]Square{}
	minors := map[int]Square{}
	for _, s := range p {
		if s.Row < 0 || s.Row >= n || s.Col < 0 || s.Col >= n {
			return fmt.Errorf("%w: %s is off the board", ErrInvalidPlacement, s)
		}
		for _, line := range []struct {
			kind  string
			key   int
			taken map[int]Square
		}{
			{"row", s.Row, rows},
			{"column", s.Col, cols},
			{"diagonal", s.Row - s.Col, majors},
			{"anti-diagonal", s.Row + s.Col, minors},
		} {
			if other, ok := line.taken[line.key]; ok {
				return fmt.Errorf("%w: %s and %s share a %s", ErrInvalidPlacement, other, s, line.kind)
			}
			line.taken[line.key] = s
		}
	}
	return nil
}
