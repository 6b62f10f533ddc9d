package dimacs

import (
	"io"

	"github.com/operator-framework/queens/pkg/oracle"
	"github.com/operator-framework/queens/pkg/queens"
)

// Export writes the n-queens constraints for an n×n board as DIMACS
// CNF. Board atoms are named in comment lines.
func Export(w io.Writer, n int) error {
	if err := queens.ValidateSize(n); err != nil {
		return err
	}
	s, err := oracle.New(oracle.WithClauseLog())
	if err != nil {
		return err
	}
	b, err := queens.NewBoard(s, n)
	if err != nil {
		return err
	}
	if err := s.Assert(queens.BuildConstraints(s, b)); err != nil {
		return err
	}
	return s.WriteDimacs(w)
}
