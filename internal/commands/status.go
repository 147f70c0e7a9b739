package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dost-cli/dost/internal/api"
	"github.com/dost-cli/dost/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the companion backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func runStatus() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	client, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := client.CheckHealth(ctx)

	switch status {
	case api.StatusOnline:
		dot := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("●")
		fmt.Printf("%s %s (%s)\n", dot, status, cfg.ServerURL)
	default:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true).Render("●")
		fmt.Printf("%s %s (%s)\n", dot, status, cfg.ServerURL)
	}

	return nil
}
