package backend

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hello.md"), []byte("# hi"), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(root, false, "")
	if err != nil {
		t.Fatal(err)
	}
	if cid := CID(b); cid != "" {
		t.Errorf("directory backend has revision %q", cid)
	}

	f, err := b.Open("/hello.md")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "# hi" {
		t.Errorf("got %q", got)
	}
}

func TestGitMissingRepo(t *testing.T) {
	if _, err := Git(t.TempDir(), ""); err == nil {
		t.Error("expected error for a directory without a repository")
	}
}

type pinned struct {
	Backend
}

func (pinned) CID() string { return "abc" }

func TestCID(t *testing.T) {
	if got := CID(pinned{}); got != "abc" {
		t.Errorf("CID = %q", got)
	}
}
