package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/bigmath/foundation/utils/mathx"
)

func newConstCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "const [pi|e|ln2|ln3|ln10]",
		Short:     "Print mathematical constants",
		Long:      "Print one constant, or all of them when no name is given.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: mathx.ConstantNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 1 {
				v, err := s.engine.Constant(args[0], s.precision)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
				return nil
			}

			for _, name := range mathx.ConstantNames {
				v, err := s.engine.Constant(name, s.precision)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %s\n", name, v.String())
			}
			return nil
		},
	}
}
