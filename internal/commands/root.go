// Package commands provides CLI commands for dost.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dost-cli/dost/internal/config"
	"github.com/dost-cli/dost/internal/logging"
	"github.com/dost-cli/dost/internal/render"
	"github.com/dost-cli/dost/internal/tui"
)

var (
	// Global flags
	outputFlag  string
	fileFlag    string
	imageFlag   string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dost [prompt]",
	Short: "Chat with Dost, your AI companion",
	Long: `dost is a command-line companion chat client. It talks to an
OpenAI-compatible completion endpoint and renders answers for the
terminal.

Examples:
  dost chat                       Start the interactive chat
  dost "What is Go?"              Send a single query
  dost -f prompt.md               Read prompt from file
  cat prompt.md | dost            Read prompt from stdin
  dost "Hello" -o response.md     Save response to file
  dost -i photo.png "What's this?"   Ask about an image`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			cfg = config.DefaultConfig()
		}
		applyTheme(cfg.TUITheme)
		if dir, err := config.EnsureConfigDir(); err == nil {
			logging.Setup(dir, cfg.Verbose || verboseFlag)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("dost %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if len(args) > 0 {
			return runQuery(args[0], !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// applyTheme activates a named color theme. Setting the theme and
// rebuilding the chat styles always happen together; the styles are
// built from the default palette at package init and do not follow
// theme changes on their own.
func applyTheme(name string) {
	if name == "" {
		return
	}
	if render.SetTUITheme(name) {
		tui.UpdateTheme()
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Path to image file to include")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
}
