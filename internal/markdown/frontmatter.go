package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits source into its front matter (YAML, TOML or JSON
// delimited) and the Markdown body. Sources without front matter return an
// empty map and the full body.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("markdown: parse front matter: %w", err)
	}
	return meta, body, nil
}

// Title returns the front matter title, if any.
func Title(meta map[string]any) string {
	if title, ok := meta["title"].(string); ok {
		return title
	}
	return ""
}
