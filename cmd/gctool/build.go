package main

import (
	"fmt"
	"log/slog"

	"github.com/lemmi/glubblog"
	"github.com/lemmi/glubblog/backend"
	"github.com/lemmi/glubblog/internal/config"
	"github.com/spf13/cobra"
)

func newBuildCmd(g *globals) *cobra.Command {
	var noClean bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site",
		Long: `build renders every post below <prefix>/content into
<out>/<slug>/index.html, writes the index page and the highlight stylesheet
and copies <prefix>/static.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.prefix, g.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			fs, err := backend.Dir(g.prefix)
			if err != nil {
				return err
			}
			site, err := glubblog.NewSite(fs, cfg)
			if err != nil {
				return err
			}
			rep, err := glubblog.Build(cmd.Context(), site, cfg.OutputDir, glubblog.BuildOptions{
				Clean: !noClean,
				Tidy:  cfg.Tidy,
			})
			if err != nil {
				return err
			}
			slog.Info("build done", "posts", rep.Posts, "static", rep.Static, "out", cfg.OutputDir)
			fmt.Fprintf(cmd.OutOrStdout(), "%d posts, %d static files -> %s\n", rep.Posts, rep.Static, cfg.OutputDir)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("out", "", "output directory (default is <prefix>/public)")
	f.String("base-url", "", "absolute URL of the site")
	f.String("markdown", "", "markdown engine, goldmark or blackfriday")
	f.String("highlight-style", "", "chroma style for code blocks")
	f.Bool("drafts", false, "include draft posts")
	f.Bool("tidy", false, "tidy the index page")
	f.Int("related", 0, "number of related posts around each post")
	f.BoolVar(&noClean, "no-clean", false, "keep existing files in the output directory")
	return cmd
}
