package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cobra"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
	"github.com/msto63/bigmath/internal/conststore"
	"github.com/msto63/bigmath/pkg/core/config"
	"github.com/msto63/bigmath/pkg/core/logging"
)

// rootOptions holds the persistent flags shared by all subcommands
type rootOptions struct {
	cfgFile   string
	verbose   bool
	precision int
	rounding  string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bigmath",
		Short: "bigmath - arbitrary-precision transcendental functions",
		Long: `bigmath evaluates elementary and special functions on decimal
numbers to any requested number of significant digits.

Precision and rounding come from the config file and can be overridden
per call with --precision and --rounding.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $BIGMATH_CONFIG or ./configs/bigmath.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVarP(&opts.precision, "precision", "p", 0, "significant digits (default from config)")
	rootCmd.PersistentFlags().StringVarP(&opts.rounding, "rounding", "r", "", "rounding mode: half_up, half_even, half_down, up, down, ceiling, floor")

	rootCmd.AddCommand(
		newEvalCommand(opts),
		newFunctionsCommand(),
		newConstCommand(opts),
		newTableCommand(opts),
		newWarmCommand(opts),
		newStoreCommand(opts),
		newServeMetricsCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command and prints a failing command's error
func Execute() error {
	rootCmd := NewRootCommand()
	err := executeArgs(rootCmd, os.Args[1:])
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// executeArgs runs root on args. Negative numbers such as -1 or -.5 would
// otherwise be read as shorthand flags.
func executeArgs(root *cobra.Command, args []string) error {
	root.SetArgs(escapeNegativeNumbers(args))
	return root.Execute()
}

// escapeNegativeNumbers prefixes negative numeric arguments with a space so
// the flag parser keeps them positional. ParseDecimal trims the space.
func escapeNegativeNumbers(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "--" {
			copy(out[i:], args[i:])
			break
		}
		out[i] = a
		if isNegativeNumber(a) {
			out[i] = " " + a
		}
	}
	return out
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	if c := s[1]; (c < '0' || c > '9') && c != '.' {
		return false
	}
	_, err := mathx.ParseDecimal(s)
	return err == nil
}

// printError writes err with its code and failing operation
func printError(w io.Writer, err error) {
	code := bmerror.GetCode(err)
	if code == bmerror.CodeUnknown {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if op := errors.Operation(err); op != "" {
		fmt.Fprintf(w, "error [%s] %s: %v\n", code, op, err)
		return
	}
	fmt.Fprintf(w, "error [%s]: %v\n", code, err)
}

// loadConfig reads the config file and applies the flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.Load(o.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if o.precision != 0 {
		cfg.Engine.DefaultPrecision = o.precision
	}
	if o.rounding != "" {
		cfg.Engine.Rounding = o.rounding
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is the engine and its collaborators for one command run
type session struct {
	cfg       *config.Config
	logger    *log.Logger
	engine    *mathx.EngineContext
	precision mathx.PrecisionSpec
	store     conststore.Store
}

// newSession loads the configuration and builds an engine context. The
// constant store is opened when the config enables it or withStore is set.
func (o *rootOptions) newSession(cmd *cobra.Command, withStore bool, extra ...mathx.Option) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.NewCLILogger("bigmath", cfg.Log, o.verbose).WithOutput(cmd.ErrOrStderr())

	p, err := cfg.Precision()
	if err != nil {
		return nil, err
	}
	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	engineOpts = append(engineOpts, mathx.WithLogger(logger))

	s := &session{cfg: cfg, logger: logger, precision: p}
	if cfg.Store.Enabled || withStore {
		store, err := conststore.NewSQLiteStore(conststore.Config{Path: cfg.Store.Path})
		if err != nil {
			return nil, err
		}
		s.store = store
		engineOpts = append(engineOpts, mathx.WithConstantStore(store))
	}

	s.engine = mathx.NewEngineContext(append(engineOpts, extra...)...)
	logger.Debug("engine ready", log.Fields{
		"context":   s.engine.ID(),
		"precision": p.Digits,
		"rounding":  p.Rounding.String(),
		"config":    cfg.String(),
	})
	return s, nil
}

// Close releases the constant store
func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func parseArgs(args []string) ([]*apd.Decimal, error) {
	values := make([]*apd.Decimal, len(args))
	for i, a := range args {
		v, err := mathx.ParseDecimal(strings.TrimSpace(a))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
