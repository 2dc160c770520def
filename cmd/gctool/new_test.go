package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lemmi/glubblog"
	"github.com/lemmi/glubblog/backend"
)

func TestWriteNewPost(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "content")
	o := newOptions{meta: glubblog.Meta{
		Title:  "Mocking Time",
		Author: "Jane",
		Date:   glubblog.GCTime(time.Date(2024, 3, 4, 5, 6, 0, 0, time.UTC)),
		Tags:   []string{"python"},
	}}

	out := bytes.Buffer{}
	path, err := writeNewPost(&out, dir, o)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "2024-03-04_mocking-time.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !strings.HasPrefix(out.String(), path+"\n---\n") {
		t.Errorf("output = %q", out.String())
	}

	if _, err := writeNewPost(&out, dir, o); err == nil {
		t.Error("overwrote an existing post")
	}

	fs, err := backend.Dir(root)
	if err != nil {
		t.Fatal(err)
	}
	store, err := glubblog.NewStore(fs)
	if err != nil {
		t.Fatal(err)
	}
	p, err := store.BySlug("mocking-time")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title() != "Mocking Time" || p.Author() != "Jane" {
		t.Errorf("meta = %+v", p.Meta())
	}
	if got := p.Date().Format(glubblog.GCTimeLayout); got != "2024-03-04 05:06" {
		t.Errorf("Date = %s", got)
	}
	if p.ID() != glubblog.PostID("2024-03-04_mocking-time.md") {
		t.Errorf("ID = %s", p.ID())
	}
}

func TestWriteNewPostSimulate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	o := newOptions{meta: glubblog.Meta{Title: "Dry Run"}, filename: "dry", simulate: true}
	path, err := writeNewPost(&bytes.Buffer{}, dir, o)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("simulate wrote %q", path)
	}
}

func TestListPosts(t *testing.T) {
	p := glubblog.NewPost("id-1", "Listed", "")
	out := bytes.Buffer{}
	if err := listPosts(&out, glubblog.Entries{p}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "id-1") || !strings.Contains(out.String(), "Listed") {
		t.Errorf("output = %q", out.String())
	}
}
