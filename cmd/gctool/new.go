package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/lemmi/glubblog"
	"github.com/lemmi/glubblog/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type newOptions struct {
	meta     glubblog.Meta
	filename string
	simulate bool
	edit     bool
}

func newNewCmd(g *globals) *cobra.Command {
	var o newOptions
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.prefix, g.cfgFile, nil)
			if err != nil {
				return err
			}
			o.meta.Date = glubblog.GCTime(time.Now())
			if o.meta.Author == "" {
				o.meta.Author = cfg.Author
			}
			dir := filepath.Join(g.prefix, cfg.ContentDir)
			path, err := writeNewPost(cmd.OutOrStdout(), dir, o)
			if err != nil {
				return err
			}
			if o.edit && !o.simulate {
				return edit(path)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.meta.Author, "author", "", "Set the author name")
	f.StringVar(&o.meta.Title, "title", "New Post", "Set the title")
	f.StringVar(&o.meta.Description, "description", "", "Set the description")
	f.StringSliceVar(&o.meta.Tags, "tag", nil, "Add a tag")
	f.IntVar(&o.meta.Priority, "priority", 0, "Set the priority")
	f.BoolVar(&o.meta.Draft, "draft", false, "Mark the post as draft")
	f.StringVar(&o.filename, "filename", "", "Set the file name, without extension")
	f.BoolVarP(&o.simulate, "simulate", "n", false, "Only show the result")
	f.BoolVarP(&o.edit, "edit", "e", false, "Open $EDITOR on the new post")
	return cmd
}

// writeNewPost writes the post file into dir and prints its path and
// contents to out. It returns the path of the file.
func writeNewPost(out io.Writer, dir string, o newOptions) (string, error) {
	name := o.filename
	if name == "" {
		name = time.Time(o.meta.Date).Format("2006-01-02_") + glubblog.Slugify(o.meta.Title)
	}
	path := filepath.Join(dir, name+".md")

	b := bytes.Buffer{}
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(o.meta); err != nil {
		return "", errors.Wrap(err, "encode front-matter")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encode front-matter")
	}
	b.WriteString("---\n\n")

	if !o.simulate {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrapf(err, "Cannot create directory: %q", dir)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return "", errors.Wrapf(err, "Cannot create post: %q", path)
		}
		if _, err := f.Write(b.Bytes()); err != nil {
			f.Close()
			return "", errors.Wrapf(err, "Cannot write post: %q", path)
		}
		if err := f.Close(); err != nil {
			return "", errors.Wrapf(err, "Cannot write post: %q", path)
		}
	}

	fmt.Fprintln(out, path)
	fmt.Fprint(out, b.String())
	return path, nil
}

func edit(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	editorPath, err := exec.LookPath(editor)
	if err != nil {
		return errors.Wrapf(err, "Cannot find editor %q", editor)
	}
	cmd := exec.Command(editorPath, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.Wrap(cmd.Run(), editor)
}
