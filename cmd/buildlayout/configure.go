package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/buildlayout/internal/domain/layout"
	"github.com/felixgeelhaar/buildlayout/internal/settings"
	"github.com/spf13/cobra"
)

const formatText = "text"

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Compute the build layout",
	Long: `Run a full layout pass over the workspace manifest and print the result.

The pass assigns repositories and default library namespaces, redirects the
root project's output, gives every subproject its own directory below the
shared root, makes every subproject evaluate after the anchor project and
pins the toolchain version on all compile steps.

Examples:
  buildlayout configure                          # Human-readable summary
  buildlayout configure --format yaml            # Layout for the host build
  buildlayout configure --write build/layout.json --format json
  buildlayout configure --watch --write build/layout.yaml`,
	RunE: runConfigure,
}

var (
	configureFormat string
	configureWrite  string
	configureWatch  bool
)

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVarP(&configureFormat, "format", "f", formatText, "Output format (text, yaml, json, toml)")
	configureCmd.Flags().StringVarP(&configureWrite, "write", "w", "", "Also write the layout to this file")
	configureCmd.Flags().BoolVar(&configureWatch, "watch", false, "Re-run the pass whenever the manifest or settings file changes")

	_ = configureCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{formatText, string(layout.FormatYAML), string(layout.FormatJSON), string(layout.FormatTOML)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	var format layout.Format
	if configureFormat != formatText {
		f, err := layout.ParseFormat(configureFormat)
		if err != nil {
			return err
		}
		format = f
	}

	buildLayout, s, err := newApp(cmd)
	if err != nil {
		return err
	}

	emit := func(l *layout.Layout) error {
		if configureWrite != "" {
			writeFormat := format
			if writeFormat == "" {
				writeFormat = layout.FormatYAML
			}
			if err := buildLayout.WriteLayout(l, configureWrite, writeFormat); err != nil {
				return fmt.Errorf("failed to write layout: %w", err)
			}
		}
		if format == "" {
			buildLayout.PrintLayout(l)
			return nil
		}
		return l.Encode(cmd.OutOrStdout(), format)
	}

	if configureWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var extra []string
		if settingsPath != "" {
			extra = append(extra, settingsPath)
		}
		reload := func() (*settings.Settings, error) {
			return loadSettings(buildLayout.FileSystem())
		}
		return buildLayout.Watch(ctx, manifestPath, reload, func(l *layout.Layout) error {
			if err := emit(l); err != nil {
				return err
			}
			return writeMetrics()
		}, extra...)
	}

	l, err := buildLayout.Configure(context.Background(), manifestPath, s)
	if err != nil {
		return err
	}
	return emit(l)
}
