package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/buildlayout/internal/adapters/filesystem"
	"github.com/felixgeelhaar/buildlayout/internal/adapters/logging"
	"github.com/felixgeelhaar/buildlayout/internal/adapters/metrics"
	"github.com/felixgeelhaar/buildlayout/internal/app"
	"github.com/felixgeelhaar/buildlayout/internal/domain/project"
	"github.com/felixgeelhaar/buildlayout/internal/domain/workspace"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/felixgeelhaar/buildlayout/internal/settings"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	manifestPath string
	settingsPath string
	verbose      bool
	logFormat    string
	metricsFile  string

	// recorder is set by newApp when --metrics-file is given.
	recorder *metrics.Prometheus
)

var rootCmd = &cobra.Command{
	Use:   "buildlayout",
	Short: "Shared build output layout for multi-project builds",
	Long: `buildlayout computes the build layout of a multi-project build.

It redirects the root project's output to a shared root, gives every
subproject its own directory below it, orders project evaluation after an
anchor project and pins one toolchain version on every compile step:
  Manifest → Redirect → Assign → Order → Pin`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if mErr := writeMetrics(); mErr != nil && err == nil {
		err = mErr
	}
	recorder = nil
	if err != nil {
		printErrorTo(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", workspace.DefaultManifestName, "workspace manifest exported by the host build")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json); overrides log.format")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file (textfile collector format)")

	_ = rootCmd.RegisterFlagCompletionFunc("manifest", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml", "hcl"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{settings.LogFormatText, settings.LogFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(versionCmd)
}

// newApp loads settings and wires the application for cmd.
func newApp(cmd *cobra.Command) (*app.BuildLayout, *settings.Settings, error) {
	fs := filesystem.NewRealFileSystem()
	s, err := loadSettings(fs)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), s.Log)
	if err != nil {
		return nil, nil, err
	}
	opts := []app.Option{app.WithFileSystem(fs), app.WithLogger(logger)}
	if metricsFile != "" {
		recorder = metrics.NewPrometheus()
		opts = append(opts, app.WithMetrics(recorder))
	}
	return app.New(cmd.OutOrStdout(), opts...), s, nil
}

// loadSettings reads --settings and applies the --log-format override.
func loadSettings(fs ports.FileSystem) (*settings.Settings, error) {
	s, err := settings.Load(fs, settingsPath)
	if err != nil {
		return nil, err
	}
	if logFormat != "" {
		s.Log.Format = logFormat
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// writeMetrics writes the recorded metrics to --metrics-file, if any.
func writeMetrics() error {
	if recorder == nil {
		return nil
	}
	return recorder.WriteTextfile(metricsFile)
}

func newLogger(w io.Writer, cfg settings.LogSettings) (ports.Logger, error) {
	level, err := ports.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = ports.LevelDebug
	}
	if cfg.Format == settings.LogFormatJSON {
		return logging.NewZapLogger(w, level), nil
	}
	return logging.NewConsoleLogger(logging.WithOutput(w), logging.WithLevel(level)), nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *workspace.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	var layoutErr *project.Error
	if errors.As(err, &layoutErr) {
		msg := layoutErr.Message
		if layoutErr.Project != "" {
			msg = fmt.Sprintf("%s: %s", layoutErr.Project, msg)
		}
		if layoutErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", layoutErr.Suggestion)
		}
		if verbose && layoutErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", layoutErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
