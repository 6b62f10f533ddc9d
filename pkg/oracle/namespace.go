package oracle

import (
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"go.uber.org/multierr"
)

// DuplicateIdentifier is returned by NewVariable when the requested
// name is already bound in the session.
type DuplicateIdentifier string

func (e DuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier %q in session", string(e))
}

// namespace performs translation between the named atoms handed out
// by a Session and the variables that appear in the SAT formula.
type namespace struct {
	inorder []string
	lits    map[string]z.Lit
	names   map[z.Var]string
	errs    error
}

func newNamespace() *namespace {
	return &namespace{
		lits:  make(map[string]z.Lit),
		names: make(map[z.Var]string),
	}
}

// bind allocates a fresh circuit input for name.
func (ns *namespace) bind(c *logic.C, name string) (z.Lit, error) {
	if _, ok := ns.lits[name]; ok {
		return z.LitNull, DuplicateIdentifier(name)
	}
	m := c.Lit()
	ns.lits[name] = m
	ns.names[m.Var()] = name
	ns.inorder = append(ns.inorder, name)
	return m, nil
}

func (ns *namespace) isAtom(m z.Lit) bool {
	_, ok := ns.names[m.Var()]
	return ok
}

func (ns *namespace) nameOf(m z.Lit) (string, bool) {
	name, ok := ns.names[m.Var()]
	return name, ok
}

func (ns *namespace) fail(err error) {
	ns.errs = multierr.Append(ns.errs, err)
}

// Error returns a single error value that is an aggregation of all
// errors encountered during the namespace's lifetime, or nil if there
// have been none. A non-nil return value likely indicates a bug in the
// caller building formulas.
func (ns *namespace) Error() error {
	if ns.errs == nil {
		return nil
	}
	errs := multierr.Errors(ns.errs)
	return fmt.Errorf("%d errors encountered building formulas: %w", len(errs), ns.errs)
}
