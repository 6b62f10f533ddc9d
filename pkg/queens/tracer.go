package queens

import (
	"fmt"
	"io"
)

// SolutionPosition describes one discovered solution at the moment it
// is blocked.
type SolutionPosition interface {
	// Index is the 1-based number of the solution.
	Index() int
	Placement() Placement
	// Blocked lists every placement excluded together with this one.
	Blocked() []Placement
}

type Tracer interface {
	Trace(p SolutionPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SolutionPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SolutionPosition) {
	fmt.Fprintf(t.Writer, "---\nSolution %d:\n", p.Index())
	for _, s := range p.Placement() {
		fmt.Fprintf(t.Writer, "- %s\n", s)
	}
	fmt.Fprintf(t.Writer, "Blocked:\n")
	for _, b := range p.Blocked() {
		fmt.Fprintf(t.Writer, "- %s\n", b)
	}
}

type position struct {
	index     int
	placement Placement
	blocked   []Placement
}

func (p position) Index() int {
	return p.index
}

func (p position) Placement() Placement {
	return p.placement
}

func (p position) Blocked() []Placement {
	return p.blocked
}
