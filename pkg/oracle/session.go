package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

var (
	ErrNoModel         = errors.New("no model available")
	ErrModelEvaluation = errors.New("model evaluation failed")
	ErrNoScope         = errors.New("no scope to pop")
	ErrInvalidFormula  = errors.New("invalid formula")
)

// Result is the outcome of a satisfiability check. The values match
// the ones returned by gini.
type Result int

const (
	Unsat   Result = -1
	Unknown Result = 0
	Sat     Result = 1
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Formula is a handle to a node of a Session's boolean circuit. The
// zero Formula is not a valid formula.
type Formula struct {
	m z.Lit
}

// Assignment is a satisfying assignment obtained from a Session after
// a Sat check.
type Assignment interface {
	// Evaluate returns the value of a variable (or its negation)
	// under the assignment.
	Evaluate(f Formula) (bool, error)
}

// Session owns the variable namespace, the formula circuit and the
// assertion stack of a single incremental SAT problem. A Session is
// not safe for concurrent use.
type Session struct {
	g      *gini.Gini
	c      *logic.C
	dst    inter.Adder
	log    *clauseLog
	ns     *namespace
	marks  []int8
	scopes []z.Lit
	poll   time.Duration
	last   Result
	gen    uint64
}

// New returns an empty Session.
func New(options ...Option) (*Session, error) {
	g := gini.New()
	s := Session{
		g:   g,
		c:   logic.NewC(),
		dst: g,
		ns:  newNamespace(),
	}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	// pin the circuit's constant so that True and False can be asserted
	s.add(s.c.T)
	return &s, nil
}

type Option func(s *Session) error

// WithClauseLog records every clause taught to the solver so that the
// problem can later be written out with WriteDimacs.
func WithClauseLog() Option {
	return func(s *Session) error {
		s.log = &clauseLog{Adder: s.g}
		s.dst = s.log
		return nil
	}
}

// WithPollInterval sets how often a cancellable Check polls the
// background solve for completion.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", d)
		}
		s.poll = d
		return nil
	}
}

var defaults = []Option{
	func(s *Session) error {
		if s.poll == 0 {
			s.poll = time.Millisecond
		}
		return nil
	},
}

// NewVariable creates a fresh atom bound to name.
func (s *Session) NewVariable(name string) (Formula, error) {
	m, err := s.ns.bind(s.c, name)
	if err != nil {
		return Formula{}, err
	}
	return Formula{m: m}, nil
}

// Name returns the name of the atom underlying f, if any.
func (s *Session) Name(f Formula) (string, bool) {
	return s.ns.nameOf(f.m)
}

// Variables returns the names of all atoms in creation order.
func (s *Session) Variables() []string {
	return append([]string(nil), s.ns.inorder...)
}

func (s *Session) True() Formula {
	return Formula{m: s.c.T}
}

func (s *Session) False() Formula {
	return Formula{m: s.c.F}
}

func (s *Session) Not(f Formula) Formula {
	if !s.valid(f) {
		return s.False()
	}
	return Formula{m: f.m.Not()}
}

// And returns the conjunction of fs; the empty conjunction is True.
func (s *Session) And(fs ...Formula) Formula {
	m := s.c.T
	for _, f := range fs {
		if !s.valid(f) {
			return s.False()
		}
		m = s.c.And(m, f.m)
	}
	return Formula{m: m}
}

// Or returns the disjunction of fs; the empty disjunction is False.
func (s *Session) Or(fs ...Formula) Formula {
	m := s.c.F
	for _, f := range fs {
		if !s.valid(f) {
			return s.False()
		}
		m = s.c.Or(m, f.m)
	}
	return Formula{m: m}
}

func (s *Session) valid(f Formula) bool {
	if f.m == z.LitNull {
		s.ns.fail(fmt.Errorf("%w: zero formula used as operand", ErrInvalidFormula))
		return false
	}
	return true
}

// Assert adds f to the innermost scope of the assertion stack. Asserted
// formulas are never retracted, except by popping their scope.
func (s *Session) Assert(f Formula) error {
	if f.m == z.LitNull {
		return fmt.Errorf("%w: cannot assert the zero formula", ErrInvalidFormula)
	}
	if n := s.c.Len(); len(s.marks) < n {
		s.marks = append(s.marks, make([]int8, n-len(s.marks))...)
	}
	s.marks, _ = s.c.CnfSince(s.dst, s.marks, f.m)
	if n := len(s.scopes); n > 0 {
		s.add(s.scopes[n-1].Not(), f.m)
	} else {
		s.add(f.m)
	}
	s.touch()
	return nil
}

// Push opens a new assertion scope. Formulas asserted in the scope are
// guarded by an activation literal which is assumed on every Check
// until the scope is popped.
func (s *Session) Push() {
	s.scopes = append(s.scopes, s.c.Lit())
	s.touch()
}

// Pop discards every formula asserted since the matching Push.
func (s *Session) Pop() error {
	n := len(s.scopes)
	if n == 0 {
		return ErrNoScope
	}
	selector := s.scopes[n-1]
	s.scopes = s.scopes[:n-1]
	s.add(selector.Not())
	s.touch()
	return nil
}

// Depth returns the number of open scopes.
func (s *Session) Depth() int {
	return len(s.scopes)
}

// Check decides satisfiability of the currently asserted formulas. If
// ctx can be cancelled, the search runs in the background and is stopped
// when ctx is done, in which case Unknown is returned together with the
// context's error.
func (s *Session) Check(ctx context.Context) (Result, error) {
	s.touch()
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	s.g.Assume(s.scopes...)
	if ctx.Done() == nil {
		s.last = Result(s.g.Solve())
		return s.last, nil
	}

	solve := s.g.GoSolve()
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			solve.Stop()
			return Unknown, ctx.Err()
		case <-ticker.C:
			if result, done := solve.Test(); done {
				s.last = Result(result)
				return s.last, nil
			}
		}
	}
}

// Model returns the assignment found by the last Check. It is only
// available if that Check returned Sat and nothing was asserted since.
func (s *Session) Model() (Assignment, error) {
	if s.last != Sat {
		return nil, ErrNoModel
	}
	return &model{s: s, gen: s.gen}, nil
}

// Err reports misuse detected while building formulas.
func (s *Session) Err() error {
	return s.ns.Error()
}

func (s *Session) add(ms ...z.Lit) {
	for _, m := range ms {
		s.dst.Add(m)
	}
	s.dst.Add(z.LitNull)
}

// touch invalidates any previously returned model.
func (s *Session) touch() {
	s.last = Unknown
	s.gen++
}

type model struct {
	s   *Session
	gen uint64
}

func (a *model) Evaluate(f Formula) (bool, error) {
	if a.gen != a.s.gen {
		return false, fmt.Errorf("%w: %w", ErrModelEvaluation, ErrNoModel)
	}
	if f.m == z.LitNull || !a.s.ns.isAtom(f.m) {
		return false, fmt.Errorf("%w: %s is not a variable of this session", ErrModelEvaluation, f.m)
	}
	if f.m.Var() > a.s.g.MaxVar() {
		// never mentioned in any clause, complete the model with false
		return !f.m.IsPos(), nil
	}
	return a.s.g.Value(f.m), nil
}
