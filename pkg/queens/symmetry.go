package queens

import (
	"github.com/samber/lo"
)

// Transform is one of the 8 symmetries of the square board (the
// dihedral group of order 8).
type Transform int

const (
	Identity Transform = iota
	// HorizontalFlip reverses the row index.
	HorizontalFlip
	// VerticalFlip reverses the column index.
	VerticalFlip
	// MainDiagonal swaps row and column.
	MainDiagonal
	// AntiDiagonal swaps row and column and reverses both.
	AntiDiagonal
	// Rotate90 is a quarter turn clockwise.
	Rotate90
	Rotate180
	Rotate270
)

// Transforms lists the whole group. It is closed under composition.
var Transforms = []Transform{
	Identity,
	HorizontalFlip,
	VerticalFlip,
	MainDiagonal,
	AntiDiagonal,
	Rotate90,
	Rotate180,
	Rotate270,
}

func (t Transform) String() string {
	switch t {
	case Identity:
		return "identity"
	case HorizontalFlip:
		return "horizontal-flip"
	case VerticalFlip:
		return "vertical-flip"
	case MainDiagonal:
		return "main-diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	case Rotate90:
		return "rotate-90"
	case Rotate180:
		return "rotate-180"
	case Rotate270:
		return "rotate-270"
	default:
		return "unknown"
	}
}

// Map returns the image of s on an n×n board.
func (t Transform) Map(s Square, n int) Square {
	last := n - 1
	switch t {
	case HorizontalFlip:
		return Square{Row: last - s.Row, Col: s.Col}
	case VerticalFlip:
		return Square{Row: s.Row, Col: last - s.Col}
	case MainDiagonal:
		return Square{Row: s.Col, Col: s.Row}
	case AntiDiagonal:
		return Square{Row: last - s.Col, Col: last - s.Row}
	case Rotate90:
		return Square{Row: s.Col, Col: last - s.Row}
	case Rotate180:
		return Square{Row: last - s.Row, Col: last - s.Col}
	case Rotate270:
		return Square{Row: last - s.Col, Col: s.Row}
	default:
		return s
	}
}

// Apply returns the image of p on an n×n board.
func (t Transform) Apply(p Placement, n int) Placement {
	return NewPlacement(lo.Map(p, func(s Square, _ int) Square {
		return t.Map(s, n)
	})...)
}

// Orbit returns the distinct images of p under all Transforms, p
// itself first. Its length is 1, 2, 4 or 8.
func Orbit(p Placement, n int) []Placement {
	images := lo.Map(Transforms, func(t Transform, _ int) Placement {
		return t.Apply(p, n)
	})
	return lo.UniqBy(images, Placement.Key)
}
