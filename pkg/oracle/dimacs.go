package oracle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

var ErrNoClauseLog = errors.New("session was created without a clause log")

// clauseLog tees every literal taught to the solver.
type clauseLog struct {
	inter.Adder
	clauses [][]z.Lit
	current []z.Lit
}

func (l *clauseLog) Add(m z.Lit) {
	l.Adder.Add(m)
	if m == z.LitNull {
		l.clauses = append(l.clauses, l.current)
		l.current = nil
		return
	}
	l.current = append(l.current, m)
}

// WriteDimacs writes every clause taught to the solver so far in DIMACS
// CNF format. Variables are renumbered densely from 1, and each named
// atom that occurs in a clause is listed in a comment line of the form
// "c <name> <variable>".
func (s *Session) WriteDimacs(w io.Writer) error {
	if s.log == nil {
		return ErrNoClauseLog
	}

	seen := map[z.Var]struct{}{}
	for _, clause := range s.log.clauses {
		for _, m := range clause {
			seen[m.Var()] = struct{}{}
		}
	}
	vars := make([]z.Var, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	slices.Sort(vars)
	index := make(map[z.Var]int, len(vars))
	for i, v := range vars {
		index[v] = i + 1
	}

	out := bufio.NewWriter(w)
	for _, name := range s.ns.inorder {
		if i, ok := index[s.ns.lits[name].Var()]; ok {
			fmt.Fprintf(out, "c %s %d\n", name, i)
		}
	}
	fmt.Fprintf(out, "p cnf %d %d\n", len(vars), len(s.log.clauses))
	terms := make([]string, 0, 8)
	for _, clause := range s.log.clauses {
		terms = terms[:0]
		for _, m := range clause {
			v := index[m.Var()]
			if !m.IsPos() {
				v = -v
			}
			terms = append(terms, strconv.Itoa(v))
		}
		terms = append(terms, "0")
		fmt.Fprintln(out, strings.Join(terms, " "))
	}
	return out.Flush()
}
