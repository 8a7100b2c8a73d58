package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/internal/logging"
	"github.com/hoppxi/hkcheck/internal/manager"
)

var Version = "0.1.0"

var (
	configPath string
	verbose    bool

	configs *manager.ConfigManager
	cfg     *manager.Config
	logger  *zap.Logger
)

// exitError carries a process exit status out of a command. A nil err means
// the command already reported what went wrong.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// usageError marks err as a command line mistake so it exits 2 instead of
// the status a failed check uses.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 2, err: err}
}

// usageArgs wraps a cobra validator so its failures count as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(v(cmd, args))
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:           "hkcheck",
	Version:       Version,
	Short:         "Dell laptop hotkey validation",
	Long:          "hkcheck drives Dell hotkey paths through ACPI and uinput and verifies the system reacted",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Runnable so that stray positional arguments reach Args instead of
	// being swallowed by the help fallback.
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.HasParent() || cmd.Name() == "generate-config" || cmd.Name() == "help" {
			return nil
		}

		configs = manager.NewConfigManager(configPath)
		var err error
		cfg, err = configs.Load()
		if err != nil {
			return &exitError{code: 2, err: err}
		}

		logger, err = logging.New(cfg.Log, verbose)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
		if p := configs.Path(); p != "" {
			logger.Debug("config loaded", zap.String("path", p))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err == nil {
		return
	}

	code := exitCode(err)
	var ee *exitError
	if errors.As(err, &ee) && ee.err == nil {
		os.Exit(code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(code)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/hkcheck/hkcheck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(generateConfigCmd)
}
