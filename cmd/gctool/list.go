package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lemmi/glubblog"
	"github.com/lemmi/glubblog/backend"
	"github.com/lemmi/glubblog/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts with their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.prefix, g.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			fs, err := backend.Dir(g.prefix)
			if err != nil {
				return err
			}
			store, err := glubblog.NewStore(fs,
				glubblog.WithContentDir(cfg.ContentDir),
				glubblog.WithDrafts(cfg.Drafts))
			if err != nil {
				return err
			}
			return listPosts(cmd.OutOrStdout(), store.Posts())
		},
	}
	cmd.Flags().Bool("drafts", false, "include draft posts")
	return cmd
}

func listPosts(w io.Writer, posts glubblog.Entries) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range posts {
		date := ""
		if !p.Date().IsZero() {
			date = p.Date().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID(), date, p.Slug(), p.Title())
	}
	return tw.Flush()
}
