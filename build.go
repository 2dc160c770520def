package glubblog

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	staticDir = "static"
	indexFile = "index.html"
)

type BuildOptions struct {
	// Clean removes the output directory first.
	Clean bool
	// Tidy runs the index page through tidyhtml.
	Tidy bool
}

type BuildReport struct {
	Posts  int
	Static int
	Files  []string
}

// Build writes the whole site below out: one directory per post, the index
// page, static files and the highlight stylesheet.
func Build(ctx context.Context, site *Site, out string, opts BuildOptions) (BuildReport, error) {
	var rep BuildReport

	if opts.Clean {
		if err := cleanDir(out); err != nil {
			return rep, err
		}
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return rep, errors.Wrapf(err, "Cannot create output directory: %q", out)
	}

	write := func(rel string, data []byte) error {
		dst := filepath.Join(out, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return errors.Wrapf(err, "Cannot create directory: %q", filepath.Dir(dst))
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return errors.Wrapf(err, "Cannot write file: %q", dst)
		}
		rep.Files = append(rep.Files, rel)
		return nil
	}

	for _, p := range site.Store.Posts() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		page, err := site.Renderer.RenderBytes(p)
		if err != nil {
			return rep, err
		}
		if err := write(path.Join(p.Slug(), indexFile), page); err != nil {
			return rep, err
		}
		slog.Debug("wrote post", "id", p.ID(), "slug", p.Slug())
		rep.Posts++
	}

	buf := bytes.Buffer{}
	if err := site.Renderer.RenderIndex(&buf, site.Store.Posts()); err != nil {
		return rep, errors.Wrap(err, "render index")
	}
	index := buf.Bytes()
	if opts.Tidy {
		tbuf := bytes.Buffer{}
		if err := Tidy(&tbuf, index); err != nil {
			return rep, err
		}
		index = tbuf.Bytes()
	}
	if err := write(indexFile, index); err != nil {
		return rep, err
	}

	buf.Reset()
	if err := WriteStylesheet(&buf, site.Config.HighlightStyle); err != nil {
		return rep, err
	}
	if err := write(StylesheetName, buf.Bytes()); err != nil {
		return rep, err
	}

	n, err := copyStatic(ctx, site.FS, "/"+staticDir, filepath.Join(out, staticDir))
	rep.Static = n
	if err != nil {
		return rep, err
	}
	return rep, nil
}

// cleanDir refuses to remove the working directory or the filesystem root.
func cleanDir(out string) error {
	abs, err := filepath.Abs(out)
	if err != nil {
		return errors.Wrapf(err, "filepath.Abs(%q)", out)
	}
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "os.Getwd")
	}
	if abs == wd || abs == filepath.Dir(abs) {
		return errors.Errorf("refusing to clean %q", abs)
	}
	return errors.Wrapf(os.RemoveAll(abs), "Cannot remove output directory: %q", abs)
}

// copyStatic mirrors the static directory of fs into dst. A missing static
// directory is not an error.
func copyStatic(ctx context.Context, fs http.FileSystem, src, dst string) (int, error) {
	d, err := fs.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "Cannot open directory: %q", src)
	}
	fis, err := d.Readdir(-1)
	d.Close()
	if err != nil {
		return 0, errors.Wrapf(err, "Cannot read directory: %q", src)
	}

	n := 0
	for _, fi := range fis {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		spath := path.Join(src, fi.Name())
		dpath := filepath.Join(dst, fi.Name())
		if fi.IsDir() {
			c, err := copyStatic(ctx, fs, spath, dpath)
			n += c
			if err != nil {
				return n, err
			}
			continue
		}
		if err := copyFile(fs, spath, dpath); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func copyFile(fs http.FileSystem, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, "Cannot open file: %q", src)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, "Cannot create directory: %q", filepath.Dir(dst))
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "Cannot create file: %q", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "Cannot copy %q to %q", src, dst)
	}
	return errors.Wrapf(out.Close(), "Cannot close file: %q", dst)
}
