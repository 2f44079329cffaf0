package interfaces

// Translator resolves a translation key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler produces the replacement used when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string
