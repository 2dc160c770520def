// Package config loads glubblog.yaml, GLUBBLOG_* variables and command flags
// into a glubblog.Config.
package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lemmi/glubblog"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	Name      = "glubblog"
	EnvPrefix = "GLUBBLOG"
)

// FlagKeys maps command line flags to the config keys they override.
var FlagKeys = map[string]string{
	"title":           "title",
	"base-url":        "baseURL",
	"content-dir":     "contentDir",
	"out":             "outputDir",
	"markdown":        "markdown",
	"highlight-style": "highlightStyle",
	"sanitize":        "sanitize",
	"tidy":            "tidy",
	"drafts":          "drafts",
	"related":         "related",
}

// Load reads the configuration for the site rooted at root. An explicit file
// must exist, the default root/glubblog.yaml is optional. Precedence is flags,
// environment, file, defaults.
func Load(root, file string, flags *pflag.FlagSet) (glubblog.Config, error) {
	if root == "" {
		root = "."
	}
	def := glubblog.DefaultConfig()
	v := viper.New()

	v.SetDefault("title", def.Title)
	v.SetDefault("description", def.Description)
	v.SetDefault("baseURL", def.BaseURL)
	v.SetDefault("author", def.Author)
	v.SetDefault("contentDir", def.ContentDir)
	v.SetDefault("outputDir", def.OutputDir)
	v.SetDefault("markdown", def.Markdown)
	v.SetDefault("highlightStyle", def.HighlightStyle)
	v.SetDefault("sanitize", def.Sanitize)
	v.SetDefault("tidy", def.Tidy)
	v.SetDefault("drafts", def.Drafts)
	v.SetDefault("related", def.Related)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(root)
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return def, errors.Wrap(err, "failed to read config file")
		}
		slog.Debug("no config file, using defaults", "root", root)
	} else {
		slog.Debug("using config file", "file", v.ConfigFileUsed())
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return def, errors.Wrapf(err, "bind flag %q", name)
			}
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return def, errors.Wrap(err, "unable to decode config into struct")
	}
	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(root, cfg.OutputDir)
	}
	return cfg, nil
}
