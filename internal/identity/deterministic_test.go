package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestAssetHashIsStable(t *testing.T) {
	a := AssetHash("css/site.css")
	b := AssetHash("css/site.css")
	if a == "" || a != b {
		t.Fatalf("expected stable non-empty hash, got %q and %q", a, b)
	}
	if AssetHash("css/Site.css") == a {
		t.Fatalf("expected case-sensitive hashing")
	}
	if AssetHash("  css/site.css ") != a {
		t.Fatalf("expected surrounding whitespace to be ignored")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("") != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key")
	}
}

func TestThemeIDTrimsSlashes(t *testing.T) {
	if ThemeID("themes/starter/") != ThemeID("/themes/starter") {
		t.Fatalf("expected slash-insensitive theme id")
	}
}

func TestRequestIDIsRandom(t *testing.T) {
	if RequestID() == RequestID() {
		t.Fatalf("expected distinct request ids")
	}
}
