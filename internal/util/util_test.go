package util

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "index", "main"); got != "index" {
		t.Fatalf("expected index, got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestCloneAnyMap(t *testing.T) {
	src := map[string]any{"a": 1}
	out := CloneAnyMap(src)
	out["a"] = 2
	if src["a"] != 1 {
		t.Fatalf("clone mutated source")
	}
	if CloneAnyMap(nil) == nil {
		t.Fatalf("expected non-nil map")
	}
}
