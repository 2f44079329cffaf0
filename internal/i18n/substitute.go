// Package i18n substitutes {{token}} placeholders in scripts and snippets.
package i18n

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goliatone/go-themes/pkg/interfaces"
)

var tokenPattern = regexp.MustCompile(`\{\{([^{}]*?)\}\}`)

// MissingMarker formats the placeholder left behind for unresolved tokens.
func MissingMarker(token string) string {
	return "[missing: " + token + "]"
}

// Substituter replaces {{token}} occurrences using, in order, the caller's
// langs map, the Translator, then OnMissing.
type Substituter struct {
	Translator interfaces.Translator
	Locale     string
	OnMissing  interfaces.MissingTranslationHandler
}

// NewSubstituter returns a Substituter whose translator echoes keys back.
func NewSubstituter(locale string) *Substituter {
	return &Substituter{Translator: EchoTranslator{}, Locale: locale}
}

// Translate resolves textOrPath (a readable regular file, or raw text) and
// substitutes every {{token}} in it.
func (s *Substituter) Translate(textOrPath string, langs map[string]string) (string, error) {
	text, err := readSource(textOrPath)
	if err != nil {
		return "", err
	}
	return s.Replace(text, langs), nil
}

// Replace substitutes tokens in text without touching the filesystem.
func (s *Substituter) Replace(text string, langs map[string]string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		token := strings.TrimSpace(match[2 : len(match)-2])
		return s.lookup(token, langs)
	})
}

func (s *Substituter) lookup(token string, langs map[string]string) string {
	if value, ok := langs[token]; ok {
		return value
	}

	var err error
	if s != nil && s.Translator != nil {
		var value string
		if value, err = s.Translator.Translate(s.Locale, token); err == nil {
			return value
		}
	} else {
		err = fmt.Errorf("i18n: no translator for %q", token)
	}

	if s != nil && s.OnMissing != nil {
		return s.OnMissing(s.Locale, token, nil, err)
	}
	return MissingMarker(token)
}

func readSource(textOrPath string) (string, error) {
	candidate := strings.TrimSpace(textOrPath)
	if candidate == "" || strings.ContainsAny(candidate, "\n{") {
		return textOrPath, nil
	}
	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return textOrPath, nil
	}
	raw, err := os.ReadFile(candidate)
	if err != nil {
		return "", fmt.Errorf("i18n: read %s: %w", candidate, err)
	}
	return string(raw), nil
}

// EchoTranslator returns the key unchanged.
type EchoTranslator struct{}

func (EchoTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	return key, nil
}
