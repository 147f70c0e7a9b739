package render

import "testing"

func TestSetTUITheme(t *testing.T) {
	t.Cleanup(func() { currentTUITheme = TokyoNightTheme })

	if !SetTUITheme("nord") {
		t.Fatal("SetTUITheme(nord) should succeed")
	}
	if GetTUITheme().Name != "nord" {
		t.Errorf("active theme = %s, want nord", GetTUITheme().Name)
	}

	if SetTUITheme("does-not-exist") {
		t.Error("unknown theme name should be rejected")
	}
	if GetTUITheme().Name != "nord" {
		t.Error("rejected theme name must not change the active theme")
	}
}

func TestGetTUIThemeByName(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := GetTUIThemeByName(name)
		if !ok {
			t.Errorf("GetTUIThemeByName(%q) not found", name)
		}
		if theme.Name != name {
			t.Errorf("theme name = %s, want %s", theme.Name, name)
		}
		if theme.Primary == "" || theme.Text == "" {
			t.Errorf("theme %s has unset colors", name)
		}
	}
}
