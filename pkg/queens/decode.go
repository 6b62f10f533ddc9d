package queens

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/operator-framework/queens/pkg/oracle"
)

// Decode returns the squares of b whose atoms are true under a.
func Decode(a oracle.Assignment, b *Board) (Placement, error) {
	var p Placement
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			occupied, err := a.Evaluate(b.At(r, c))
			if err != nil {
				return nil, fmt.Errorf("error evaluating square (%d,%d): %w", r, c, err)
			}
			if occupied {
				p = append(p, Square{Row: r, Col: c})
			}
		}
	}
	return p, nil
}

// Blocked returns the placements a blocking formula for p excludes:
// p alone, or with unique set its whole orbit.
func Blocked(p Placement, n int, unique bool) []Placement {
	if !unique {
		return []Placement{p}
	}
	return Orbit(p, n)
}

// Block returns a formula forbidding each of the given placements and
// nothing else.
func Block(o Oracle, b *Board, blocked []Placement) oracle.Formula {
	return o.And(lo.Map(blocked, func(p Placement, _ int) oracle.Formula {
		return o.Not(o.And(b.Cells(p)...))
	})...)
}
