package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekizoglu/dailyreel/internal/config"
	"github.com/ekizoglu/dailyreel/internal/storage"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// --- run ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Produce today's reel immediately",
	Long: `Produce today's reel immediately, ignoring the posting window.
If today's reel already exists, nothing happens and the command succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signalContext()
		defer stop()

		if err := app.runner.RunNow(ctx); err != nil {
			return err
		}
		printSuccess("Done")
		return nil
	},
}

// --- wait ---

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the next posting window, run once, and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signalContext()
		defer stop()

		next := app.window.NextFire(time.Now())
		printStatus("Window", "%s–%s %s", app.cfg.Window.Start, app.cfg.Window.End, app.cfg.Project.Timezone)
		printStatus("Next run", "%s", next.Format(time.RFC1123))

		err = app.runner.WaitWindow(ctx)
		if errors.Is(err, context.Canceled) {
			printWarning("Interrupted before the window opened")
			return nil
		}
		if err != nil {
			return err
		}
		printSuccess("Done")
		return nil
	},
}

// --- daemon ---

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run forever, producing one reel per day inside the posting window",
	RunE:  runDaemon,
}

// runDaemon also backs the bare invocation: `dailyreel` with no subcommand is
// the long-lived daily loop, so an unattended deployment needs no arguments.
func runDaemon(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signalContext()
	defer stop()

	printStatus("Window", "%s–%s %s", app.cfg.Window.Start, app.cfg.Window.End, app.cfg.Project.Timezone)
	printStatus("Output", "%s", app.cfg.Paths.OutputDir)

	err = app.runner.DailyWindow(ctx)
	if errors.Is(err, context.Canceled) {
		printSuccess("Stopped")
		return nil
	}
	return err
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's run, recent history, and the next scheduled run",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		now := time.Now().In(app.location)
		today := now.Format("2006-01-02")

		rec, err := app.store.GetRun(today)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			printStatus("Today", "no run yet (%s)", today)
		case err != nil:
			return err
		default:
			printStatus("Today", "%s", rec.Status)
			if rec.OutputPath != "" {
				printStatus("Reel", "%s", rec.OutputPath)
			}
			if rec.CaptionPath != "" {
				printStatus("Caption", "%s", rec.CaptionPath)
			}
			if rec.ErrorSummary != "" {
				printStatus("Note", "%s", rec.ErrorSummary)
			}
		}

		printStatus("Next run", "%s", app.window.NextFire(now).Format(time.RFC1123))

		if n, err := app.store.CountCacheEntries(); err == nil {
			printStatus("Cached media", "%d", n)
		}

		recent, err := app.store.RecentRuns(7)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println()
			for _, r := range recent {
				line := fmt.Sprintf("%s  %s", r.Date, r.Status)
				if r.Status == storage.StatusFailed {
					line += "  " + r.ErrorSummary
				}
				fmt.Println("  " + line)
			}
		}
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
