package entity

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks ids generated on the client before the server has
// confirmed an entity. Server ids never carry it.
const TempIDPrefix = "tmp-"

// NewTempID returns a fresh client-side placeholder id.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id is a client-side placeholder.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// NewID returns a server-assigned id with the given short prefix, e.g.
// "card-3f2a...". The prefix only aids reading logs.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
