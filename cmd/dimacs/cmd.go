package dimacs

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewDimacsCommand() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Writes the n-queens constraints in dimacs format",
		Long: `Writes the clauses encoding the n-queens constraints in dimacs format.
Board squares are named in comment lines of the form:
c (<row>,<column>) <variable>
The remaining variables are introduced by the Tseitin transformation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Export(cmd.OutOrStdout(), size)
		},
	}
	cmd.Flags().IntVarP(&size, "count", "c", 8, "size of the board")
	return cmd
}

func NewSolveCommand(log logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <path>",
		Short: "Counts the models of a sat problem given in dimacs format",
		Long: `Counts the models of a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := solve(cmd, args[0], log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total number of models: %d.\n", count)
			return nil
		},
	}
}

func solve(cmd *cobra.Command, path string, log logrus.FieldLogger) (int, error) {
	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	d, err := NewDimacs(dimacsFile)
	if err != nil {
		return 0, fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}
	return CountModels(cmd.Context(), d, log.WithField("path", path))
}
