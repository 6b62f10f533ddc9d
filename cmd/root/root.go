package root

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/queens/cmd/dimacs"
	"github.com/operator-framework/queens/pkg/oracle"
	"github.com/operator-framework/queens/pkg/queens"
)

type options struct {
	size    int
	unique  bool
	timeout time.Duration
	limit   int
	verbose bool
	trace   bool
}

func NewRootCmd() *cobra.Command {
	opts := options{}
	log := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "queens",
		Short: "Counts the solutions of the n-queens problem with a sat solver",
		Long: `Counts the placements of n non-attacking queens on an n×n board.
The problem is encoded as a boolean satisfiability problem and solved
repeatedly, blocking every solution found. With --unique, solutions
related by a rotation or reflection of the board are counted once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := queens.ValidateSize(opts.size); err != nil {
				return err
			}
			if opts.limit < 0 {
				return fmt.Errorf("invalid limit %d: must not be negative", opts.limit)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := run(cmd.Context(), opts, log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total number of solutions: %d.\n", count)
			return nil
		},
	}

	rootCmd.Flags().IntVarP(&opts.size, "count", "c", 8, "size of the board")
	rootCmd.Flags().BoolVarP(&opts.unique, "unique", "u", true, "count solutions related by a board symmetry once")
	rootCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 means no timeout)")
	rootCmd.Flags().IntVar(&opts.limit, "limit", 0, "give up if there are more solutions than this (0 means no limit)")
	rootCmd.Flags().BoolVar(&opts.trace, "trace", false, "write every solution found to stderr")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewDimacsCommand())
	rootCmd.AddCommand(dimacs.NewSolveCommand(log))

	return rootCmd
}

func run(ctx context.Context, opts options, log logrus.FieldLogger, traceOut io.Writer) (int, error) {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	s, err := oracle.New()
	if err != nil {
		return 0, err
	}
	enumeratorOpts := []queens.Option{
		queens.WithUnique(opts.unique),
		queens.WithLimit(opts.limit),
		queens.WithLogger(log.WithField("size", opts.size)),
	}
	if opts.trace {
		enumeratorOpts = append(enumeratorOpts, queens.WithTracer(queens.LoggingTracer{Writer: traceOut}))
	}
	e, err := queens.NewEnumerator(s, opts.size, enumeratorOpts...)
	if err != nil {
		return 0, err
	}
	return e.Run(ctx)
}
