package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/kvittem/scantop/banner"
	"github.com/kvittem/scantop/logging"
	"github.com/kvittem/scantop/progress"
	"github.com/kvittem/scantop/scan"
)

const envPrefix = "SCANTOP"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scantop:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scantop",
		Short:         "Live terminal dashboard for a running scan",
		Long:          "scantop renders a resizable terminal dashboard for a long-running scan:\na summary panel, one panel per worker, and a scrolling log.",
		RunE:          runScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.Int("workers", 4, "number of concurrent scan workers")
	flags.Duration("duration", 30*time.Second, "how long the demo scan runs")
	flags.String("log-level", "info", "dashboard log level (debug, info, warn, error)")
	flags.Int("log-capacity", 0, "log history capacity (0 = default, negative = unlimited)")
	flags.Bool("no-banner", false, "suppress the welcome banner")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"workers", "duration", "log-level", "log-capacity", "no-banner"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	workers := viper.GetInt("workers")
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdout is not a terminal; the dashboard needs an interactive terminal")
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("measuring terminal: %w", err)
	}

	levelName := viper.GetString("log-level")
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	// Until the dashboard owns the terminal, records go to stderr.
	if err := logging.Initialize(levelName); err != nil {
		return err
	}
	logging.Debug("starting dashboard", zap.Int("workers", workers), zap.Int("columns", cols))

	registry := progress.NewRegistry()
	stopWinch := registry.NotifyResize()
	defer stopWinch()

	opts := []progress.Option{progress.WithLogCapacity(viper.GetInt("log-capacity"))}
	if !viper.GetBool("no-banner") {
		if b := banner.Welcome(cols); b != nil {
			opts = append(opts, progress.WithBanner(b))
		}
	}
	display, err := progress.New(registry, workers, opts...)
	if err != nil {
		return err
	}
	defer display.End()

	logging.Use(zap.New(display.LogCore(level)))
	defer logging.Sync()
	defer logging.Use(nil)

	// Process interruption routes through the registry so every live
	// terminal is restored before exit.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		registry.ResetAll()
	}()

	logging.Info("scan started", zap.Int("workers", workers))
	sim := scan.NewSimulator(workers, viper.GetDuration("duration"), logging.L())
	if err := sim.Run(ctx, display.HandleUpdate); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	display.ScanFinishedHandler(sim.Metrics(), sim.Timer())
	if err := display.EndOnInput(); err != nil {
		return err
	}
	if msg := display.ResultsMessage(); msg != "" {
		fmt.Println(msg)
	}
	return nil
}
