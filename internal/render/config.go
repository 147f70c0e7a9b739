package render

import (
	"os"

	"github.com/dost-cli/dost/internal/config"
)

// OptionsFromConfig builds render options from user configuration.
// The GLAMOUR_STYLE environment variable takes precedence over the
// config file style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	md := cfg.Markdown
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
