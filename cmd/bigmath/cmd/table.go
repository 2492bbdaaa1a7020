package cmd

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

// maxTableRows bounds the number of arguments a table may expand to
const maxTableRows = 10000

type tableOptions struct {
	second  string
	workers int
	plain   bool
}

func newTableCommand(opts *rootOptions) *cobra.Command {
	topts := &tableOptions{}

	cmd := &cobra.Command{
		Use:   "table <function> <from> <to> <step>",
		Short: "Tabulate a function over a range",
		Long: `Evaluate a function at from, from+step, ... up to to.

Rows are computed in parallel against one shared engine context. Binary
functions take their second argument from --y.

Examples:
  bigmath table sin 0 1 0.1 -p 30
  bigmath table pow 1 3 0.5 --y 2.5`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			fn, ok := s.engine.Lookup(args[0])
			if !ok {
				return errors.InvalidInput(errors.ModuleMathx, "table", args[0],
					"one of "+strings.Join(s.engine.FunctionNames(), ", "))
			}
			bounds, err := parseArgs(args[1:])
			if err != nil {
				return err
			}
			xs, err := tableArguments(bounds[0], bounds[1], bounds[2])
			if err != nil {
				return err
			}

			var extra []*apd.Decimal
			if fn.Arity == 2 {
				if topts.second == "" {
					return errors.InvalidInput(errors.ModuleMathx, "table", fn.Name, "--y for binary functions")
				}
				y, err := mathx.ParseDecimal(topts.second)
				if err != nil {
					return err
				}
				extra = append(extra, y)
			}

			rows, err := evaluateRows(cmd.Context(), s, fn, xs, extra, topts.workers)
			if err != nil {
				return err
			}
			renderTable(cmd, fn.Name, rows, topts.plain)
			return nil
		},
	}

	cmd.Flags().StringVar(&topts.second, "y", "", "second argument for binary functions")
	cmd.Flags().IntVarP(&topts.workers, "workers", "w", runtime.NumCPU(), "parallel evaluations")
	cmd.Flags().BoolVar(&topts.plain, "plain", false, "tab separated output without borders")
	return cmd
}

// tableArguments expands from, from+step, ... <= to exactly
func tableArguments(from, to, step *apd.Decimal) ([]*apd.Decimal, error) {
	if step.Sign() <= 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "table", step.String(), "positive step")
	}
	if from.Cmp(to) > 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "table", from.String(), "from <= to")
	}

	var xs []*apd.Decimal
	x := new(apd.Decimal).Set(from)
	for x.Cmp(to) <= 0 {
		if len(xs) == maxTableRows {
			return nil, errors.InvalidInput(errors.ModuleMathx, "table", len(xs), fmt.Sprintf("at most %d rows", maxTableRows))
		}
		xs = append(xs, x)
		next := new(apd.Decimal)
		if _, err := apd.BaseContext.Add(next, x, step); err != nil {
			return nil, errors.Internal(errors.ModuleMathx, "table", err)
		}
		x = next
	}
	return xs, nil
}

type tableRow struct {
	x      *apd.Decimal
	result *apd.Decimal
	err    error
}

// evaluateRows computes every row. Domain errors are kept per row; any
// other error aborts the table.
func evaluateRows(ctx context.Context, s *session, fn mathx.Function, xs, extra []*apd.Decimal, workers int) ([]tableRow, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = 1
	}

	rows := make([]tableRow, len(xs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	timer := s.logger.StartTimer("table "+fn.Name).WithLevel(log.LevelDebug).WithField("rows", len(xs))
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			args := append([]*apd.Decimal{x}, extra...)
			v, err := fn.Call(s.precision, args...)
			if err != nil && !rowError(err) {
				return err
			}
			rows[i] = tableRow{x: x, result: v, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Stop()
	return rows, nil
}

// rowError reports whether err belongs to a single argument
func rowError(err error) bool {
	switch bmerror.GetCode(err) {
	case bmerror.CodeDomainError, bmerror.CodeDivisionByZero, bmerror.CodeOverflow:
		return true
	}
	return false
}

func (r tableRow) cells() []string {
	if r.err != nil {
		return []string{r.x.String(), string(bmerror.GetCode(r.err))}
	}
	return []string{r.x.String(), r.result.String()}
}

func renderTable(cmd *cobra.Command, name string, rows []tableRow, plain bool) {
	out := cmd.OutOrStdout()
	if plain {
		for _, r := range rows {
			fmt.Fprintln(out, strings.Join(r.cells(), "\t"))
		}
		return
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	errorStyle := cellStyle.Foreground(lipgloss.Color("9"))

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = r.cells()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("x", name+"(x)").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && col == 1 && rows[row].err != nil:
				return errorStyle
			}
			return cellStyle
		})
	fmt.Fprintln(out, t.Render())
}
