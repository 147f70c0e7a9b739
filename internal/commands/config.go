package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dost-cli/dost/internal/config"
	"github.com/dost-cli/dost/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to the config file.

Keys:
  completion_url     Base URL of the completion endpoint
  server_url         Base URL of the companion backend
  text_model         Model for text-only messages
  vision_model       Model for messages with an image
  history_turns      Prior turns sent with each message (0 = single-turn)
  timeout_seconds    Per-request timeout
  max_attempts       Attempts per send (1 = no retries)
  verbose            Enable the debug log (true/false)
  copy_to_clipboard  Copy one-shot answers to the clipboard (true/false)
  theme              TUI color theme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfigValue(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func showConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path, _ := config.GetConfigPath()

	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("  completion_url     %s\n", cfg.CompletionURL)
	fmt.Printf("  server_url         %s\n", cfg.ServerURL)
	fmt.Printf("  text_model         %s\n", cfg.TextModel)
	fmt.Printf("  vision_model       %s\n", cfg.VisionModel)
	fmt.Printf("  history_turns      %d\n", cfg.HistoryTurns)
	fmt.Printf("  timeout_seconds    %d\n", cfg.TimeoutSeconds)
	fmt.Printf("  max_attempts       %d\n", cfg.MaxAttempts)
	fmt.Printf("  verbose            %t\n", cfg.Verbose)
	fmt.Printf("  copy_to_clipboard  %t\n", cfg.CopyToClipboard)
	fmt.Printf("  theme              %s (available: %s)\n", cfg.TUITheme, strings.Join(render.TUIThemeNames(), ", "))

	return nil
}

func setConfigValue(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "completion_url":
		cfg.CompletionURL = value
	case "server_url":
		cfg.ServerURL = value
	case "text_model":
		cfg.TextModel = value
	case "vision_model":
		cfg.VisionModel = value
	case "history_turns", "timeout_seconds", "max_attempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects a number: %w", key, err)
		}
		switch key {
		case "history_turns":
			cfg.HistoryTurns = n
		case "timeout_seconds":
			cfg.TimeoutSeconds = n
		case "max_attempts":
			cfg.MaxAttempts = n
		}
	case "verbose", "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, err)
		}
		if key == "verbose" {
			cfg.Verbose = b
		} else {
			cfg.CopyToClipboard = b
		}
	case "theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
		cfg.TUITheme = value
		applyTheme(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("✓ %s set to %s\n", key, value)
	return nil
}
