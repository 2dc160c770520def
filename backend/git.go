package backend

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gogits/git"
	"github.com/lemmi/ghfs"
	"github.com/pkg/errors"
)

const DefaultBranch = "master"

type gitBackend struct {
	http.FileSystem
	cid string
}

func (g gitBackend) CID() string {
	return g.cid
}

// Git serves content from the head commit of branch in the repository at root.
func Git(root, branch string) (Backend, error) {
	path, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "filepath.Abs(%q)", root)
	}
	if branch == "" {
		branch = DefaultBranch
	}

	repo, err := git.OpenRepository(path)
	if err != nil {
		return nil, errors.Wrapf(err, "git.OpenRepository(%q)", path)
	}
	commit, err := repo.GetCommitOfBranch(branch)
	if err != nil {
		return nil, errors.Wrapf(err, "Can not open branch %q", branch)
	}

	return gitBackend{
		FileSystem: ghfs.FromCommit(commit),
		cid:        strings.Trim(commit.Id.String(), "\""),
	}, nil
}
