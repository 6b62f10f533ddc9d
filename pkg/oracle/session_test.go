package oracle_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/queens/pkg/oracle"
)

func mustVariable(s *oracle.Session, name string) oracle.Formula {
	f, err := s.NewVariable(name)
	Expect(err).ToNot(HaveOccurred())
	return f
}

// countModels enumerates all assignments of vars by blocking each one.
func countModels(s *oracle.Session, vars ...oracle.Formula) int {
	count := 0
	for {
		result, err := s.Check(context.Background())
		Expect(err).ToNot(HaveOccurred())
		if result == oracle.Unsat {
			return count
		}
		Expect(result).To(Equal(oracle.Sat))
		model, err := s.Model()
		Expect(err).ToNot(HaveOccurred())
		lits := make([]oracle.Formula, len(vars))
		for i, v := range vars {
			value, err := model.Evaluate(v)
			Expect(err).ToNot(HaveOccurred())
			if value {
				lits[i] = v
			} else {
				lits[i] = s.Not(v)
			}
		}
		Expect(s.Assert(s.Not(s.And(lits...)))).To(Succeed())
		count++
	}
}

var _ = Describe("Session", func() {
	var s *oracle.Session

	BeforeEach(func() {
		var err error
		s, err = oracle.New()
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject duplicate variable names", func() {
		mustVariable(s, "a")
		_, err := s.NewVariable("a")
		Expect(err).To(MatchError(oracle.DuplicateIdentifier("a")))
		Expect(s.Variables()).To(Equal([]string{"a"}))
	})

	It("should name its atoms", func() {
		a := mustVariable(s, "a")
		name, ok := s.Name(a)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("a"))
		_, ok = s.Name(s.And(a, mustVariable(s, "b")))
		Expect(ok).To(BeFalse())
	})

	It("should be satisfiable with nothing asserted", func() {
		Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
	})

	It("should be unsatisfiable after asserting false", func() {
		Expect(s.Assert(s.False())).To(Succeed())
		Expect(s.Check(context.Background())).To(Equal(oracle.Unsat))
	})

	It("should find a model that satisfies the assertions", func() {
		a := mustVariable(s, "a")
		b := mustVariable(s, "b")
		Expect(s.Assert(s.And(a, s.Not(b)))).To(Succeed())
		Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
		model, err := s.Model()
		Expect(err).ToNot(HaveOccurred())
		Expect(model.Evaluate(a)).To(BeTrue())
		Expect(model.Evaluate(b)).To(BeFalse())
		Expect(model.Evaluate(s.Not(b))).To(BeTrue())
	})

	It("should count the models of a disjunction", func() {
		a := mustVariable(s, "a")
		b := mustVariable(s, "b")
		c := mustVariable(s, "c")
		Expect(s.Assert(s.Or(a, b, c))).To(Succeed())
		Expect(countModels(s, a, b, c)).To(Equal(7))
	})

	It("should complete unconstrained variables with false", func() {
		mustVariable(s, "a")
		free := mustVariable(s, "free")
		Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
		model, err := s.Model()
		Expect(err).ToNot(HaveOccurred())
		Expect(model.Evaluate(free)).To(BeFalse())
	})

	Context("model validity", func() {
		It("should not provide a model before a check", func() {
			_, err := s.Model()
			Expect(err).To(MatchError(oracle.ErrNoModel))
		})

		It("should not provide a model after an unsat check", func() {
			Expect(s.Assert(s.False())).To(Succeed())
			Expect(s.Check(context.Background())).To(Equal(oracle.Unsat))
			_, err := s.Model()
			Expect(err).To(MatchError(oracle.ErrNoModel))
		})

		It("should fail to evaluate a stale model", func() {
			a := mustVariable(s, "a")
			Expect(s.Assert(a)).To(Succeed())
			Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
			model, err := s.Model()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Assert(s.Or(a, s.False()))).To(Succeed())
			_, err = model.Evaluate(a)
			Expect(err).To(MatchError(oracle.ErrModelEvaluation))
			Expect(err).To(MatchError(oracle.ErrNoModel))
		})

		It("should fail to evaluate compound formulas", func() {
			a := mustVariable(s, "a")
			b := mustVariable(s, "b")
			Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
			model, err := s.Model()
			Expect(err).ToNot(HaveOccurred())
			_, err = model.Evaluate(s.And(a, b))
			Expect(err).To(MatchError(oracle.ErrModelEvaluation))
		})
	})

	Context("scopes", func() {
		It("should retract assertions when a scope is popped", func() {
			a := mustVariable(s, "a")
			Expect(s.Assert(s.Or(a, s.Not(a)))).To(Succeed())
			s.Push()
			Expect(s.Depth()).To(Equal(1))
			Expect(s.Assert(a)).To(Succeed())
			Expect(s.Assert(s.Not(a))).To(Succeed())
			Expect(s.Check(context.Background())).To(Equal(oracle.Unsat))
			Expect(s.Pop()).To(Succeed())
			Expect(s.Depth()).To(Equal(0))
			Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
		})

		It("should keep assertions of outer scopes", func() {
			a := mustVariable(s, "a")
			s.Push()
			Expect(s.Assert(a)).To(Succeed())
			s.Push()
			Expect(s.Assert(s.Not(a))).To(Succeed())
			Expect(s.Pop()).To(Succeed())
			Expect(s.Check(context.Background())).To(Equal(oracle.Sat))
			model, err := s.Model()
			Expect(err).ToNot(HaveOccurred())
			Expect(model.Evaluate(a)).To(BeTrue())
		})

		It("should fail to pop without a scope", func() {
			Expect(s.Pop()).To(MatchError(oracle.ErrNoScope))
		})
	})

	Context("invalid formulas", func() {
		It("should refuse to assert the zero formula", func() {
			Expect(s.Assert(oracle.Formula{})).To(MatchError(oracle.ErrInvalidFormula))
		})

		It("should report zero operands", func() {
			a := mustVariable(s, "a")
			s.And(a, oracle.Formula{})
			s.Not(oracle.Formula{})
			Expect(s.Err()).To(MatchError(oracle.ErrInvalidFormula))
			Expect(s.Err().Error()).To(HavePrefix("2 errors encountered"))
		})

		It("should have no error on correct use", func() {
			a := mustVariable(s, "a")
			s.Or(a, s.Not(a))
			Expect(s.Err()).ToNot(HaveOccurred())
		})
	})

	Context("cancellation", func() {
		It("should return unknown for a cancelled context", func() {
			mustVariable(s, "a")
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			result, err := s.Check(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result).To(Equal(oracle.Unknown))
		})

		It("should solve under a live cancellable context", func() {
			a := mustVariable(s, "a")
			Expect(s.Assert(a)).To(Succeed())
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			Expect(s.Check(ctx)).To(Equal(oracle.Sat))
			model, err := s.Model()
			Expect(err).ToNot(HaveOccurred())
			Expect(model.Evaluate(a)).To(BeTrue())
		})
	})

	It("should reject a non-positive poll interval", func() {
		_, err := oracle.New(oracle.WithPollInterval(0))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("WriteDimacs", func() {
	It("should require a clause log", func() {
		s, err := oracle.New()
		Expect(err).ToNot(HaveOccurred())
		Expect(s.WriteDimacs(&bytes.Buffer{})).To(MatchError(oracle.ErrNoClauseLog))
	})

	It("should write the recorded clauses", func() {
		s, err := oracle.New(oracle.WithClauseLog())
		Expect(err).ToNot(HaveOccurred())
		a := mustVariable(s, "a")
		b := mustVariable(s, "b")
		Expect(s.Assert(s.Or(a, b))).To(Succeed())

		var buf bytes.Buffer
		Expect(s.WriteDimacs(&buf)).To(Succeed())
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines[0]).To(MatchRegexp(`^c a \d+$`))
		Expect(lines[1]).To(MatchRegexp(`^c b \d+$`))
		Expect(lines[2]).To(MatchRegexp(`^p cnf \d+ \d+$`))
		for _, line := range lines[3:] {
			Expect(line).To(MatchRegexp(`^(-?[1-9]\d*\s+)+0$`))
		}
	})
})
