package utils

import (
	"strings"
	"testing"
)

func TestShareableID(t *testing.T) {
	id := "1b671a64-40d5-491e-99b0-da01ff1f3341"

	got := ShareableID(id)
	if len(got) != 12 {
		t.Errorf("len = %d, want 12", len(got))
	}
	if strings.Contains(got, "=") {
		t.Errorf("padding leaked into shareable id: %q", got)
	}
	if got != ShareableID(id) {
		t.Errorf("derivation not deterministic")
	}
	if ShareableID("another-document-id") == got {
		t.Errorf("distinct ids collide")
	}
}

func TestShareableID_ShortInput(t *testing.T) {
	got := ShareableID("abc")
	if len(got) == 0 || len(got) > 12 {
		t.Errorf("ShareableID(%q) = %q", "abc", got)
	}
}
