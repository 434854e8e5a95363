// Package identifier derives stable identifiers for extracted code
// entities: deterministic UUIDv5-based entity IRIs and short content
// hashes for change detection. The same input always yields the same
// identifier, so repeated indexing runs converge on identical graphs.
package identifier

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/semshapes/vocabulary/code"
)

// namespace seeds the UUIDv5 derivation for all entity identifiers.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(code.EntityNamespace))

// EntityIRI derives a deterministic entity IRI from the entity's
// identifying parts (typically kind, file path and name).
func EntityIRI(parts ...string) string {
	id := uuid.NewSHA1(namespace, []byte(strings.Join(parts, "/")))
	return code.EntityNamespace + id.String()
}

// ContentHash computes a short hex hash of file content for change
// detection. Eight bytes of SHA-256 is plenty at this scale.
func ContentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:8])
}
