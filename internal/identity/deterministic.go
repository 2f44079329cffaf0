package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key using go-hashid. The key is
// hashed verbatim: "App.css" and "app.css" produce different identifiers.
func UUID(key string) uuid.UUID {
	if key == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// AssetHash is the dedup key of a registered asset. Only the raw source
// string participates; two registrations of the same source collapse at
// render time regardless of priority or kind.
func AssetHash(source string) string {
	return UUID("go-themes:asset:" + strings.TrimSpace(source)).String()
}

// ThemeID identifies a theme directory across requests.
func ThemeID(themeDir string) uuid.UUID {
	return UUID("go-themes:theme:" + strings.Trim(strings.TrimSpace(themeDir), "/"))
}

// RequestID returns a random identifier for a per-request theme context.
func RequestID() uuid.UUID {
	return uuid.New()
}
