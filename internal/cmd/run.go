package cmd

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/internal/hotkey"
	"github.com/hoppxi/hkcheck/internal/report"
	"github.com/hoppxi/hkcheck/pkg/miscinfo"
)

var runCmd = &cobra.Command{
	Use:   "run [test...]",
	Short: "Run hotkey checks",
	Long: `Run one or more hotkey checks. Tests are named positionally or with
--function (repeatable); "all" runs every check. Exit status is 0 when every
check passed or was skipped, 1 when any failed, 2 on usage errors.`,
	Example: "  hkcheck run -f airplane_mode\n  hkcheck run brightness keyboard_backlight\n  hkcheck run all --format json",
	RunE: func(cmd *cobra.Command, args []string) error {
		functions, _ := cmd.Flags().GetStringSlice("function")
		names := append(functions, args...)
		if len(names) == 0 {
			return &exitError{code: 2, err: errors.New("no test given, see `hkcheck list`")}
		}

		tests, err := hotkey.Select(names)
		if err != nil {
			return &exitError{code: 2, err: err}
		}

		if cmd.Flags().Changed("interactive") {
			interactive, _ := cmd.Flags().GetBool("interactive")
			cfg.Display.Interactive = interactive
			cfg.Suspend.Interactive = interactive
		}
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			cfg.Report.Format = f
		}
		if o, _ := cmd.Flags().GetString("output"); o != "" {
			cfg.Report.Output = o
		}
		if cmd.Flags().Changed("mqtt") {
			cfg.Report.MQTT.Enabled, _ = cmd.Flags().GetBool("mqtt")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runID := uuid.NewString()
		log := logger.With(zap.String("run_id", runID))

		env := hotkey.NewEnv(ctx, cfg, log, runID)
		started := time.Now()
		results := hotkey.NewRunner(env).Run(ctx, tests)

		summary := report.NewSummary(runID, miscinfo.GetSystem(), started, results)

		if err := writeSummary(summary); err != nil {
			log.Error("writing report failed", zap.Error(err))
		}
		if cfg.Report.MQTT.Enabled {
			if err := publishSummary(summary); err != nil {
				log.Error("publishing report failed", zap.Error(err))
			}
		}

		if ctx.Err() != nil {
			return &exitError{code: 1, err: errors.New("interrupted")}
		}
		if !summary.Passed {
			return &exitError{code: 1}
		}
		return nil
	},
}

func writeSummary(s report.Summary) error {
	var w io.Writer = os.Stdout
	if cfg.Report.Output != "" && cfg.Report.Output != "-" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return report.Render(w, s, cfg.Report.Format)
}

func publishSummary(s report.Summary) error {
	mcfg := cfg.Report.MQTT
	pub, err := report.NewMQTTPublisher(mcfg)
	if err != nil {
		return err
	}
	defer pub.Close()

	return report.PublishSummary(s, report.PublishConfig{
		Prefix:   mcfg.TopicPrefix,
		Host:     s.Host,
		Retained: mcfg.Retained,
	}, pub)
}

func init() {
	runCmd.Flags().StringSliceP("function", "f", nil, "Function (test) name, repeatable")
	runCmd.Flags().Bool("interactive", false, "Ask the operator before checks that need manual setup")
	runCmd.Flags().String("format", "", "Report format: text, json or yaml")
	runCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	runCmd.Flags().Bool("mqtt", false, "Publish the report to the configured MQTT broker")
}
