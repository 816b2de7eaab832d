package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rescisao/internal/tui"
)

func main() {
	var regulatory string
	cmd := &cobra.Command{
		Use:   "rescisao-tui [input-file]",
		Short: "Interactive viewer for a termination settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("input file not found: %s", inputPath)
			}
			p := tea.NewProgram(
				tui.NewModel(inputPath, regulatory),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&regulatory, "regulatory", "", "Regulatory config file (default: embedded 2025 tables)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
