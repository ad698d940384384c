package design

import "testing"

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	if theme.Name != "default" {
		t.Errorf("expected theme name 'default', got %q", theme.Name)
	}
	if theme.Success == "" {
		t.Error("expected Success color to be set")
	}
	if theme.Failure == "" {
		t.Error("expected Failure color to be set")
	}
	if theme.Muted == "" {
		t.Error("expected Muted color to be set")
	}
}

func TestMonoTheme(t *testing.T) {
	theme := MonoTheme()

	if theme.Name != "mono" {
		t.Errorf("expected theme name 'mono', got %q", theme.Name)
	}
	if theme.Success != "" || theme.Failure != "" || theme.Muted != "" {
		t.Errorf("expected mono colors to be empty, got %+v", theme)
	}
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"default", "default"},
		{"orca", "orca"},
		{"mono", "mono"},
		{"", "default"},
		{"neon", "default"},
	}
	for _, tt := range tests {
		if got := ThemeByName(tt.name).Name; got != tt.want {
			t.Errorf("ThemeByName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRole_String(t *testing.T) {
	if RoleEmphasis.String() != "emphasis" {
		t.Errorf("RoleEmphasis.String() = %q", RoleEmphasis.String())
	}
	if Role(99).String() != "none" {
		t.Errorf("Role(99).String() = %q, want none", Role(99).String())
	}
}
