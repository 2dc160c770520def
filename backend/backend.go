// Package backend provides the file systems content is read from.
package backend

import (
	"net/http"
	"path/filepath"

	"github.com/pkg/errors"
)

type Backend interface {
	http.FileSystem
}

// CIDer is implemented by backends that pin content to a revision.
type CIDer interface {
	CID() string
}

// Dir serves content from a directory on disk.
func Dir(root string) (Backend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "filepath.Abs(%q)", root)
	}
	return http.Dir(abs), nil
}

// Open returns a git backend for branch if git is set, a directory backend
// otherwise.
func Open(root string, git bool, branch string) (Backend, error) {
	if git {
		return Git(root, branch)
	}
	return Dir(root)
}

// CID returns the revision of b, or "" if b is not pinned.
func CID(b Backend) string {
	if c, ok := b.(CIDer); ok {
		return c.CID()
	}
	return ""
}
