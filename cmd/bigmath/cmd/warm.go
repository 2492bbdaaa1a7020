package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

func newWarmCommand(opts *rootOptions) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Precompute constants into the constant store",
		Long: `Compute constants at the requested precision and persist them to the
SQLite constant store, so later runs start with these digits cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(names) == 0 {
				names = mathx.ConstantNames
			}
			return warmConstants(cmd, s, names)
		},
	}

	cmd.Flags().StringSliceVar(&names, "constants", nil, "constants to compute (default: all)")
	return cmd
}

func warmConstants(cmd *cobra.Command, s *session, names []string) error {
	out := cmd.OutOrStdout()
	for _, name := range names {
		start := time.Now()
		if _, err := s.engine.Constant(strings.TrimSpace(name), s.precision); err != nil {
			return err
		}
		fmt.Fprintf(out, "%-5s %s digits in %s\n", name,
			humanize.Comma(int64(s.engine.Stats().Constants[name])),
			time.Since(start).Round(time.Microsecond))
	}
	return nil
}

func newStoreCommand(opts *rootOptions) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the constant store",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Store.Timeout.Duration)
			defer cancel()
			entries, err := s.store.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no constants stored in", s.cfg.Store.Path)
				return nil
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Name, humanize.Comma(int64(e.Digits)), humanize.Time(e.ComputedAt), shortRunID(e.RunID)}
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("constant", "digits", "computed", "run").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					style := lipgloss.NewStyle().Padding(0, 1)
					if row == table.HeaderRow {
						return style.Bold(true)
					}
					return style
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored constant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Store.Timeout.Duration)
			defer cancel()
			ok, err := s.store.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.InvalidInput(errors.ModuleStore, "delete", args[0], "stored constant")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}

	storeCmd.AddCommand(listCmd, deleteCmd)
	return storeCmd
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
