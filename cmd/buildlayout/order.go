package main

import (
	"context"

	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the project evaluation order",
	Args:  cobra.NoArgs,
	RunE:  runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, _ []string) error {
	buildLayout, s, err := newApp(cmd)
	if err != nil {
		return err
	}

	sequence, err := buildLayout.Order(context.Background(), manifestPath, s)
	if err != nil {
		return err
	}
	buildLayout.PrintOrder(sequence)
	return nil
}
