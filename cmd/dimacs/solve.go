package dimacs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/queens/pkg/oracle"
	"github.com/operator-framework/queens/pkg/queens"
)

// CountModels counts the satisfying assignments of d by asserting its
// clauses once and then blocking every model the oracle returns.
func CountModels(ctx context.Context, d *Dimacs, log logrus.FieldLogger) (int, error) {
	s, err := oracle.New()
	if err != nil {
		return 0, err
	}

	vars := make([]oracle.Formula, len(d.Variables()))
	for i := range vars {
		vars[i], err = s.NewVariable(d.Name(i + 1))
		if err != nil {
			return 0, fmt.Errorf("error declaring variable %d: %w", i+1, err)
		}
	}
	lit := func(l int) oracle.Formula {
		if l < 0 {
			return s.Not(vars[-l-1])
		}
		return vars[l-1]
	}

	s.Push()
	for _, clause := range d.Clauses() {
		ors := make([]oracle.Formula, len(clause))
		for i, l := range clause {
			ors[i] = lit(l)
		}
		if err := s.Assert(s.Or(ors...)); err != nil {
			return 0, err
		}
	}

	count := 0
	for {
		outcome, err := s.Check(ctx)
		if err != nil {
			return count, fmt.Errorf("%w after %d models: %w", queens.ErrIncomplete, count, err)
		}
		switch outcome {
		case oracle.Unsat:
			log.WithField("count", count).Info("search space exhausted")
			return count, nil
		case oracle.Sat:
		default:
			return count, fmt.Errorf("%w after %d models", queens.ErrUndecided, count)
		}

		model, err := s.Model()
		if err != nil {
			return count, err
		}
		current := make([]oracle.Formula, len(vars))
		for i, v := range vars {
			value, err := model.Evaluate(v)
			if err != nil {
				return count, err
			}
			if value {
				current[i] = v
			} else {
				current[i] = s.Not(v)
			}
		}
		if err := s.Assert(s.Not(s.And(current...))); err != nil {
			return count, err
		}
		count++
		log.WithField("model", count).Debug("model found")
	}
}
