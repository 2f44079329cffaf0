package themes

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeMissingTemplate = "MISSING_TEMPLATE_VIEW"
	codeRenderFailed    = "THEME_RENDER_FAILED"
)

// ErrMissingTemplateView is returned by Render when the main layout template
// is absent from the theme directory.
var ErrMissingTemplateView = errors.New("themes: template view not found")

func missingTemplate(theme, template string) error {
	return goerrors.Wrap(ErrMissingTemplateView, goerrors.CategoryNotFound, "template "+template+" not found in theme "+theme).
		WithTextCode(codeMissingTemplate).
		WithMetadata(map[string]any{"theme": theme, "template": template})
}

func renderFailed(stage, name string, err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "themes: render "+stage+" "+name).
		WithTextCode(codeRenderFailed).
		WithMetadata(map[string]any{"stage": stage, "name": name})
}
