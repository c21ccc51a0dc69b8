package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wavechain/loader"
	"github.com/katalvlaran/wavechain/settings"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	settingsPath string
	logLevel     string

	settings settings.Settings
	logger   *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wavechain",
		Short:         "Inspect waveform documents",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "settings file (YAML); defaults apply when absent")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the log level (debug, info, warn, error)")

	root.AddCommand(
		newCheckCmd(a),
		newSampleCmd(a),
		newGraphCmd(a),
		newWatchCmd(a),
	)

	return root
}

func (a *app) init(stderr io.Writer) error {
	s := settings.Default()
	if a.settingsPath != "" {
		var err error
		if s, err = settings.LoadOrDefault(a.settingsPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		s.Log.Level = a.logLevel
		if err := s.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	a.settings = s
	a.logger = s.Logger(stderr)

	return nil
}

// load reads a document with the active settings.
func (a *app) load(path string) (*loader.Document, error) {
	return loader.LoadFile(path,
		loader.WithLogger(a.logger),
		loader.WithSampling(a.settings.TendencySampling()),
		loader.WithTolerance(a.settings.Tolerance),
	)
}
