package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cigbreak/internal/bootstrap"
	"cigbreak/internal/platform/config"
	"cigbreak/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "cigbreak",
		Short:         "Step away for 90 seconds… cig like Cignetti, not cigarette",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataDir)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "directory holding .cigbreak state")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newClipsCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newRemindCmd(&dataDir))
	return root
}

// loadApp wires the application. CLI commands log to stderr; the TUI owns the
// terminal and logs to the state directory instead.
func loadApp(dataDir string, logToFile bool) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, nil, err
	}

	var log *slog.Logger
	var logFile io.Closer
	if logToFile {
		log, logFile, err = bootstrap.OpenLogFile(cfg)
		if err != nil {
			return nil, nil, err
		}
	} else {
		log = logger.New(logger.Config{
			Writer: os.Stderr,
			Format: cfg.LogFormat,
			Level:  logger.ParseLevel(cfg.LogLevel),
		})
	}

	app, err := bootstrap.New(cfg, log)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, nil, err
	}
	cleanup := func() {
		if err := app.Close(); err != nil {
			log.Warn("close app", "error", err)
		}
		if logFile != nil {
			_ = logFile.Close()
		}
	}
	return app, cleanup, nil
}

func runTUI(dataDir string) error {
	app, cleanup, err := loadApp(dataDir, true)
	if err != nil {
		return err
	}
	defer cleanup()
	return bootstrap.RunTUI(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the Cig Break terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*dataDir)
		},
	}
}

func newClipsCmd(dataDir *string) *cobra.Command {
	clips := &cobra.Command{Use: "clips", Short: "Clip catalog commands"}

	clips.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog clips with their source links",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()
			list, err := app.ClipCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, c := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Title, c.SourceURL)
			}
			return nil
		},
	})

	clips.AddCommand(&cobra.Command{
		Use:   "id <url>",
		Short: "Print the video id and embed link for a clip URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out := app.ClipCLI.Resolve(context.Background(), args[0])
			if !out.Playable {
				return fmt.Errorf("no video id in %s", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", out.VideoID, out.EmbedURL)
			return nil
		},
	})
	return clips
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Scoreboard commands"}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show break counters and reminder cadence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out := app.StatsCLI.Show(context.Background())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]int{
					"breaksTaken":     out.BreaksTaken,
					"yesCount":        out.YesCount,
					"notYetCount":     out.NotYetCount,
					"reminderMinutes": out.ReminderMinutes,
				})
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "breaks taken:   %d\n", out.BreaksTaken)
			_, _ = fmt.Fprintf(w, "felt better:    %d\n", out.YesCount)
			_, _ = fmt.Fprintf(w, "needed another: %d\n", out.NotYetCount)
			_, _ = fmt.Fprintf(w, "cadence:        %dm\n", out.ReminderMinutes)
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset counters and cadence to defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out := app.StatsCLI.Reset(context.Background())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stats reset (cadence %dm)\n", out.ReminderMinutes)
			return nil
		},
	}

	stats.AddCommand(show, reset)
	return stats
}

func newRemindCmd(dataDir *string) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Reminder commands"}

	remind.AddCommand(&cobra.Command{
		Use:   "interval <minutes>",
		Short: "Set the reminder cadence (clamped to 15..240 minutes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[0], err)
			}
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out := app.Reminders.SetInterval(context.Background(), minutes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminder cadence: %dm\n", out.Minutes)
			return nil
		},
	})

	var every int
	run := &cobra.Command{
		Use:   "run",
		Short: "Send reminders in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(*dataDir, false)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			out := app.Reminders.Enable(ctx, every)
			_, _ = fmt.Fprintf(w, "reminding every %dm (permission %s), ctrl+c to stop\n", out.Minutes, out.Permission)
			if !out.Delivering {
				_, _ = fmt.Fprintln(w, "notifications unavailable, reminders will be silent")
			}
			defer app.Reminders.Disable(context.Background())

			for {
				select {
				case <-ctx.Done():
					if errors.Is(ctx.Err(), context.Canceled) {
						_, _ = fmt.Fprintln(w, "reminders off")
						return nil
					}
					return ctx.Err()
				case alert, ok := <-app.Alerts:
					if !ok {
						return nil
					}
					_, _ = fmt.Fprintf(w, "\a%s  %s: %s\n", time.Now().Format("15:04"), alert.Title, alert.Body)
				}
			}
		},
	}
	run.Flags().IntVar(&every, "every", 0, "cadence in minutes, clamped to 15..240 (0: stored cadence)")

	remind.AddCommand(run)
	return remind
}
