package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the shared build output root",
	Long: `Delete the shared output root and everything below it.

The root is resolved exactly as configure resolves it, so clean removes the
outputs of every subproject at once. A missing root is not an error.

Examples:
  buildlayout clean
  BUILDLAYOUT_OUTPUT_ROOT=../out buildlayout clean`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	buildLayout, s, err := newApp(cmd)
	if err != nil {
		return err
	}

	root, err := buildLayout.Clean(context.Background(), manifestPath, s)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", root)
	return nil
}
