package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dost-cli/dost/internal/attach"
	"github.com/dost-cli/dost/internal/config"
	"github.com/dost-cli/dost/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with Dost.

Use /attach <path> to stage an image, /clear to reset the
conversation. Type 'exit', 'quit', or press Ctrl+C to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	client, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return tui.RunChat(client, cfg, attach.NewPreparer())
}
