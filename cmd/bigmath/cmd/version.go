package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/bigmath/pkg/core/version"
)

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "bigmath v%s\n", info.Version)
			fmt.Fprintf(out, "  Engine:     %s\n", info.Engine)
			fmt.Fprintf(out, "  Git Commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
