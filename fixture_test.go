package glubblog

import (
	"net/http"
	"testing"
	"testing/fstest"
)

var fixture = fstest.MapFS{
	"content/2020-03-01_mocking-open.md": {Data: []byte(`---
title: Mocking open()
description: Replace builtins in tests.
tags: [python, testing]
---
Use ` + "`mock_open`" + ` for *file* reads.

` + "```python\nwith patch(\"builtins.open\", mock_open(read_data=\"x\")):\n    pass\n```\n")},
	"content/python/patch-object.md": {Data: []byte(`---
title: Patch Where It Is Looked Up
date: 2021-05-02
author: Jane
---
Hello *world*
`)},
	"content/untitled-notes.md": {Data: []byte("just notes\n")},
	"content/wip.md": {Data: []byte(`---
title: Work In Progress
draft: true
---
soon
`)},
	"content/legacy/meta.json": {Data: []byte(`{
	"Title": "Legacy Entry",
	"Author": "Webmaster",
	"Date": "2019-01-01 10:00",
	"Priority": 0
}`)},
	"content/legacy/article.md": {Data: []byte("# old\n\nstill here\n")},
	"content/notes.txt":         {Data: []byte("not markdown")},
	"content/_hidden.md":        {Data: []byte("---\ntitle: Hidden\n---\n")},
	"static/style.css":          {Data: []byte("body{}")},
	"static/img/logo.svg":       {Data: []byte("<svg/>")},
}

func fixtureFS() http.FileSystem {
	return http.FS(fixture)
}

func newFixtureStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	s, err := NewStore(fixtureFS(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func slugs(e Entries) []string {
	var ret []string
	for _, p := range e {
		ret = append(ret, p.Slug())
	}
	return ret
}
