package tui

import (
	"testing"

	"github.com/dost-cli/dost/internal/render"
)

func TestUpdateTheme_FollowsActiveTheme(t *testing.T) {
	t.Cleanup(func() {
		render.SetTUITheme("tokyonight")
		UpdateTheme()
	})

	theme, ok := render.GetTUIThemeByName("dracula")
	if !ok {
		t.Fatal("dracula theme is not registered")
	}

	// Switching the active theme takes effect only through UpdateTheme;
	// the styles are built once at package init otherwise.
	render.SetTUITheme("dracula")
	UpdateTheme()

	if got := titleStyle.GetForeground(); got != theme.Primary {
		t.Errorf("title foreground = %v, want %v", got, theme.Primary)
	}
	if got := errorBubbleStyle.GetBorderTopForeground(); got != theme.Error {
		t.Errorf("error bubble border = %v, want %v", got, theme.Error)
	}
}
