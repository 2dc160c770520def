package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "glubblog" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if !cfg.Sanitize {
		t.Error("sanitize should default to true")
	}
	if cfg.OutputDir != filepath.Join(root, "public") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadFileEnvFlags(t *testing.T) {
	root := t.TempDir()
	yaml := "title: Mock Everything\nbaseURL: https://example.org\nrelated: 3\ntidy: true\n"
	if err := os.WriteFile(filepath.Join(root, "glubblog.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GLUBBLOG_AUTHOR", "Jane")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("title", "", "")
	flags.Bool("drafts", false, "")
	if err := flags.Parse([]string{"--drafts"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root, "", flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Mock Everything" {
		t.Errorf("unchanged flag overrode the file: Title = %q", cfg.Title)
	}
	if cfg.BaseURL != "https://example.org" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Related != 3 || !cfg.Tidy {
		t.Errorf("Related = %d, Tidy = %v", cfg.Related, cfg.Tidy)
	}
	if cfg.Author != "Jane" {
		t.Errorf("Author = %q", cfg.Author)
	}
	if !cfg.Drafts {
		t.Error("drafts flag ignored")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(t.TempDir(), "does-not-exist.yaml", nil); err == nil {
		t.Error("expected error")
	}
}
