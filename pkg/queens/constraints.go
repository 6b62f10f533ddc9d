package queens

import (
	"github.com/operator-framework/queens/pkg/oracle"
)

// BuildConstraints returns the conjunction of the row, column and
// diagonal formulas of b: exactly one queen per row and per column and
// at most one queen per diagonal.
func BuildConstraints(o Oracle, b *Board) oracle.Formula {
	return o.And(RowFormula(o, b), ColumnFormula(o, b), DiagonalFormula(o, b))
}

// RowFormula states that every row holds exactly one queen.
func RowFormula(o Oracle, b *Board) oracle.Formula {
	var fs []oracle.Formula
	for r := 0; r < b.Size(); r++ {
		fs = append(fs, exactlyOne(o, b.Row(r))...)
	}
	return o.And(fs...)
}

// ColumnFormula states that every column holds exactly one queen.
func ColumnFormula(o Oracle, b *Board) oracle.Formula {
	var fs []oracle.Formula
	for c := 0; c < b.Size(); c++ {
		fs = append(fs, exactlyOne(o, b.Column(c))...)
	}
	return o.And(fs...)
}

// DiagonalFormula states that no major diagonal (constant row-column)
// and no minor diagonal (constant row+column) holds more than one
// queen. Diagonals may be empty.
func DiagonalFormula(o Oracle, b *Board) oracle.Formula {
	n := b.Size()
	var fs []oracle.Formula
	for d := -(n - 1); d <= n-1; d++ {
		fs = append(fs, atMostOne(o, b.Cells(MajorDiagonal(n, d)))...)
	}
	for s := 0; s <= 2*n-2; s++ {
		fs = append(fs, atMostOne(o, b.Cells(MinorDiagonal(n, s)))...)
	}
	return o.And(fs...)
}

// MajorDiagonal returns the squares of an n×n board with row-col == d.
func MajorDiagonal(n, d int) []Square {
	var squares []Square
	for r := max(0, d); r < n && r-d < n; r++ {
		squares = append(squares, Square{Row: r, Col: r - d})
	}
	return squares
}

// MinorDiagonal returns the squares of an n×n board with row+col == s.
func MinorDiagonal(n, s int) []Square {
	var squares []Square
	for r := max(0, s-(n-1)); r < n && r <= s; r++ {
		squares = append(squares, Square{Row: r, Col: s - r})
	}
	return squares
}

// exactlyOne is the definedness clause plus pairwise uniqueness.
func exactlyOne(o Oracle, cells []oracle.Formula) []oracle.Formula {
	return append([]oracle.Formula{o.Or(cells...)}, atMostOne(o, cells)...)
}

func atMostOne(o Oracle, cells []oracle.Formula) []oracle.Formula {
	var fs []oracle.Formula
	for i := range cells {
		for j := i + 1; j < len(cells); j++ {
			fs = append(fs, o.Not(o.And(cells[i], cells[j])))
		}
	}
	return fs
}
