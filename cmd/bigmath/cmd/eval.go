package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

func newEvalCommand(opts *rootOptions) *cobra.Command {
	var trailingZeros bool

	cmd := &cobra.Command{
		Use:   "eval <function> <x> [y]",
		Short: "Evaluate one function",
		Long: `Evaluate a function at the given arguments.

Examples:
  bigmath eval sin 0.5 -p 40
  bigmath eval pow 2 0.5 -r floor
  bigmath eval gamma 7.25`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			fn, ok := s.engine.Lookup(args[0])
			if !ok {
				return errors.InvalidInput(errors.ModuleMathx, "eval", args[0],
					"one of "+strings.Join(s.engine.FunctionNames(), ", "))
			}
			values, err := parseArgs(args[1:])
			if err != nil {
				return err
			}

			timer := s.logger.StartTimer("eval " + fn.Name).WithLevel(log.LevelDebug).WithField("digits", s.precision.Digits)
			result, err := fn.Call(s.precision, values...)
			if err != nil {
				timer.StopWithError(err)
				return err
			}
			timer.Stop()

			if trailingZeros {
				if result, err = mathx.RoundWithTrailingZeros(result, s.precision); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&trailingZeros, "trailing-zeros", false, "pad the result to the full number of digits")
	return cmd
}

func newFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the available functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := mathx.NewEngineContext()
			registry := engine.Functions()
			for _, name := range engine.FunctionNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", name, registry[name].Arity)
			}
			return nil
		},
	}
}
