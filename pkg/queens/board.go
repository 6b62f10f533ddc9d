package queens

import (
	"context"
	"fmt"

	"github.com/operator-framework/queens/pkg/oracle"
)

// Oracle is the incremental SAT interface the enumeration runs
// against. *oracle.Session implements it.
type Oracle interface {
	NewVariable(name string) (oracle.Formula, error)
	True() oracle.Formula
	False() oracle.Formula
	Not(f oracle.Formula) oracle.Formula
	And(fs ...oracle.Formula) oracle.Formula
	Or(fs ...oracle.Formula) oracle.Formula
	Assert(f oracle.Formula) error
	Push()
	Check(ctx context.Context) (oracle.Result, error)
	Model() (oracle.Assignment, error)
	Err() error
}

var _ Oracle = &oracle.Session{}

// Square is a (row, column) coordinate on the board, both 0-based.
type Square struct {
	Row, Col int
}

// String is also the name of the square's atom in the oracle.
func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Board is the n×n grid of atoms stating "a queen is on this square",
// stored row-major.
type Board struct {
	n     int
	cells []oracle.Formula
}

// NewBoard allocates one atom per square of an n×n board in o. Calling
// it twice on the same oracle fails because the atom names collide.
func NewBoard(o Oracle, n int) (*Board, error) {
	if err := ValidateSize(n); err != nil {
		return nil, err
	}
	b := Board{
		n:     n,
		cells: make([]oracle.Formula, 0, n*n),
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell, err := o.NewVariable(Square{Row: r, Col: c}.String())
			if err != nil {
				return nil, fmt.Errorf("error allocating square (%d,%d): %w", r, c, err)
			}
			b.cells = append(b.cells, cell)
		}
	}
	return &b, nil
}

func (b *Board) Size() int {
	return b.n
}

// At returns the atom of the square at row r, column c.
func (b *Board) At(r, c int) oracle.Formula {
	return b.cells[r*b.n+c]
}

func (b *Board) Row(r int) []oracle.Formula {
	return b.cells[r*b.n : (r+1)*b.n]
}

func (b *Board) Column(c int) []oracle.Formula {
	column := make([]oracle.Formula, b.n)
	for r := range column {
		column[r] = b.At(r, c)
	}
	return column
}

// Cells returns the atoms of the given squares.
func (b *Board) Cells(squares []Square) []oracle.Formula {
	cells := make([]oracle.Formula, len(squares))
	for i, s := range squares {
		cells[i] = b.At(s.Row, s.Col)
	}
	return cells
}
