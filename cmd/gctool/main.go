package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

type globals struct {
	prefix  string
	cfgFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "gctool",
		Short: "Author and build a glubblog site",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&g.prefix, "prefix", ".", "path to the root dir")
	pf.StringVar(&g.cfgFile, "config", "", "config file (default is <prefix>/glubblog.yaml)")
	pf.BoolVar(&g.debug, "debug", false, "set debug output")

	cmd.AddCommand(
		newNewCmd(g),
		newBuildCmd(g),
		newListCmd(g),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
