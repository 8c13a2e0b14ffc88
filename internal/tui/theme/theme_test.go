package theme

import (
	"testing"

	"github.com/theirongolddev/savebonus/internal/config"
)

func TestThemesMatchConfigNames(t *testing.T) {
	if len(All) != len(config.Themes) {
		t.Fatalf("len(All) = %d, want %d", len(All), len(config.Themes))
	}
	for i, name := range config.Themes {
		if All[i].Name != name {
			t.Errorf("All[%d].Name = %q, want %q", i, All[i].Name, name)
		}
		if All[i].Form == nil {
			t.Errorf("theme %q has no form theme", name)
		}
	}
}

func TestSetActive_UnknownFallsBack(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("tokyo-night")
	if Active.Name != "tokyo-night" {
		t.Fatalf("Active = %q, want tokyo-night", Active.Name)
	}
	SetActive("does-not-exist")
	if Active.Name != FlexokiDark.Name {
		t.Fatalf("Active = %q, want fallback %q", Active.Name, FlexokiDark.Name)
	}
}
