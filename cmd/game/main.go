package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tomz197/coinshove/internal/config"
	"github.com/tomz197/coinshove/internal/loop"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "coinshove",
	Short: "Shove coins past the keeper, in your terminal",
	Long: `Pick a coin, time the aim meter and shove it past the keeper into the goal.
Nickels spin longest, quarters score most. You have one minute.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringP("config", "c", config.GetEnv(config.EnvTuningFile, ""), "Tuning file (TOML)")
	rootCmd.Flags().String("log-file", "", "Write logs to this file")
	rootCmd.Flags().String("log-level", config.GetEnv(config.EnvLogLevel, "info"), "Log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logFile, _ := cmd.Flags().GetString("log-file")
	logLevel, _ := cmd.Flags().GetString("log-level")

	tuning, err := config.LoadTuning(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "coinshove",
	})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.Options{
		Tuning: &tuning,
		Logger: logger,
	})
}
