package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-addressformat"

// UUID derives a deterministic UUID from a stable key using go-hashid. Keys
// should be prefixed by entity type to avoid collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DefinitionUUID returns the stable row ID for a country's stored definition.
// Country codes are case sensitive lookup keys, so no case folding happens here.
func DefinitionUUID(countryCode string) uuid.UUID {
	code := strings.TrimSpace(countryCode)
	if code == "" {
		return uuid.Nil
	}
	return UUID(namespace + ":definition:" + code)
}
