package queens

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/queens/pkg/oracle"
)

// State is the position of an Enumerator in its check/block cycle.
type State int

const (
	Initialized State = iota
	SolutionFound
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case SolutionFound:
		return "solution-found"
	case Exhausted:
		return "exhausted"
	default:
		return "failed"
	}
}

// Enumerator counts the solutions of the n-queens problem by asking
// the oracle for a model, blocking it and asking again until the
// oracle reports unsat.
type Enumerator struct {
	oracle Oracle
	board  *Board
	unique bool
	limit  int
	log    logrus.FieldLogger
	tracer Tracer
	state  State
	count  int
}

// NewEnumerator validates n, allocates the board in o and asserts the
// n-queens constraints inside a fresh scope. No oracle call is made if
// n is invalid.
func NewEnumerator(o Oracle, n int, options ...Option) (*Enumerator, error) {
	if err := ValidateSize(n); err != nil {
		return nil, err
	}
	e := Enumerator{oracle: o}
	for _, option := range append(options, defaults...) {
		if err := option(&e); err != nil {
			return nil, err
		}
	}

	board, err := NewBoard(o, n)
	if err != nil {
		return nil, err
	}
	e.board = board

	o.Push()
	if err := o.Assert(BuildConstraints(o, board)); err != nil {
		return nil, fmt.Errorf("error asserting constraints: %w", err)
	}
	e.log.WithFields(logrus.Fields{"size": n, "unique": e.unique}).Debug("constraints asserted")
	return &e, nil
}

// Run enumerates until the oracle reports unsat and returns the number
// of solutions found, counting one per symmetry class when unique
// counting is enabled. On error the count is only the progress made so
// far.
func (e *Enumerator) Run(ctx context.Context) (int, error) {
	if e.state == Exhausted {
		return e.count, nil
	}
	count, err := e.run(ctx)

	// This likely indicates a bug, so discard whatever
	// return values were produced.
	if derr := e.oracle.Err(); derr != nil {
		e.state = Failed
		return 0, derr
	}
	if err != nil {
		e.state = Failed
	}
	return count, err
}

func (e *Enumerator) run(ctx context.Context) (int, error) {
	for {
		outcome, err := e.oracle.Check(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return e.count, fmt.Errorf("%w after %d solutions: %w", ErrIncomplete, e.count, ctxErr)
			}
			return e.count, fmt.Errorf("error checking satisfiability: %w", err)
		}

		switch outcome {
		case oracle.Sat:
			e.state = SolutionFound
			if e.limit > 0 && e.count >= e.limit {
				return e.count, fmt.Errorf("%w: more than %d solutions", ErrIncomplete, e.limit)
			}
			if err := e.block(); err != nil {
				return e.count, err
			}
			e.state = Initialized
		case oracle.Unsat:
			e.state = Exhausted
			e.log.WithFields(logrus.Fields{
				"size":   e.board.Size(),
				"unique": e.unique,
				"count":  e.count,
			}).Info("search space exhausted")
			return e.count, nil
		default:
			return e.count, fmt.Errorf("%w after %d solutions", ErrUndecided, e.count)
		}
	}
}

// block decodes the current model and asserts a formula excluding it,
// or its whole symmetry class.
func (e *Enumerator) block() error {
	model, err := e.oracle.Model()
	if err != nil {
		return fmt.Errorf("error fetching model: %w", err)
	}
	placement, err := Decode(model, e.board)
	if err != nil {
		return err
	}
	if err := placement.Validate(e.board.Size()); err != nil {
		return fmt.Errorf("unexpected internal error: %w", err)
	}

	blocked := Blocked(placement, e.board.Size(), e.unique)
	if err := e.oracle.Assert(Block(e.oracle, e.board, blocked)); err != nil {
		return fmt.Errorf("error blocking %s: %w", placement, err)
	}
	e.count++

	e.log.WithFields(logrus.Fields{
		"solution":  e.count,
		"placement": placement.String(),
		"blocked":   len(blocked),
	}).Debug("solution found")
	e.tracer.Trace(position{index: e.count, placement: placement, blocked: blocked})
	return nil
}

func (e *Enumerator) State() State {
	return e.state
}

func (e *Enumerator) Board() *Board {
	return e.board
}

// Count enumerates the solutions for an n×n board on a fresh oracle
// session.
func Count(ctx context.Context, n int, options ...Option) (int, error) {
	if err := ValidateSize(n); err != nil {
		return 0, err
	}
	s, err := oracle.New()
	if err != nil {
		return 0, err
	}
	e, err := NewEnumerator(s, n, options...)
	if err != nil {
		return 0, err
	}
	return e.Run(ctx)
}

type Option func(e *Enumerator) error

// WithUnique enables symmetry folding: each solution blocks its whole
// orbit and is counted once.
func WithUnique(unique bool) Option {
	return func(e *Enumerator) error {
		e.unique = unique
		return nil
	}
}

// WithLimit makes Run fail with ErrIncomplete once more than limit
// solutions exist. Zero means no limit.
func WithLimit(limit int) Option {
	return func(e *Enumerator) error {
		if limit < 0 {
			return errors.New("solution limit must not be negative")
		}
		e.limit = limit
		return nil
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Enumerator) error {
		e.log = log
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(e *Enumerator) error {
		e.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(e *Enumerator) error {
		if e.log == nil {
			log := logrus.New()
			log.SetOutput(io.Discard)
			e.log = log
		}
		return nil
	},
	func(e *Enumerator) error {
		if e.tracer == nil {
			e.tracer = DefaultTracer{}
		}
		return nil
	},
}
