package glubblog

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// postNamespace scopes post ids so they never collide with other UUIDv5 users.
var postNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("glubblog:post"))

// PostID derives the identifier of the content file at rel, a slash separated
// path relative to the content root. The same file always gets the same id.
func PostID(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	return uuid.NewSHA1(postNamespace, []byte(rel)).String()
}

// ValidID reports whether s looks like an id produced by PostID.
func ValidID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 5
}
