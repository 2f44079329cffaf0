package i18n

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-themes/pkg/interfaces"
)

// ErrNotFound is returned when no locale in the fallback chain has the key.
var ErrNotFound = errors.New("i18n: translation not found")

// Catalog is an in-memory translator keyed by locale then message key.
// Lookups fall back from a regional locale ("es-mx") to its parent ("es")
// and finally to DefaultLocale.
type Catalog struct {
	DefaultLocale string                       `yaml:"default_locale" json:"default_locale"`
	Messages      map[string]map[string]string `yaml:"translations" json:"translations"`
}

var _ interfaces.Translator = (*Catalog)(nil)

// LoadCatalog reads a YAML or JSON catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open catalog %q: %w", path, err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("i18n: decode catalog %q: %w", path, err)
	}
	catalog.normalize()
	return &catalog, nil
}

func (c *Catalog) normalize() {
	if c.Messages == nil {
		c.Messages = map[string]map[string]string{}
	}
	normalized := make(map[string]map[string]string, len(c.Messages))
	for locale, messages := range c.Messages {
		normalized[normalizeLocale(locale)] = messages
	}
	c.Messages = normalized
	c.DefaultLocale = normalizeLocale(c.DefaultLocale)
}

func (c *Catalog) Translate(locale string, key string, args ...any) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	for _, candidate := range c.chain(locale) {
		value, ok := c.Messages[candidate][key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(value, args...), nil
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrNotFound, locale, key)
}

func (c *Catalog) chain(locale string) []string {
	locale = normalizeLocale(locale)
	var out []string
	for locale != "" {
		out = append(out, locale)
		idx := strings.LastIndex(locale, "-")
		if idx < 0 {
			break
		}
		locale = locale[:idx]
	}
	if c.DefaultLocale != "" {
		out = append(out, c.DefaultLocale)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
