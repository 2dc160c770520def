package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/lemmi/compress"
	"github.com/lemmi/glubblog"
	"github.com/lemmi/glubblog/backend"
	"github.com/lemmi/glubblog/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	DEBUG bool
)

type options struct {
	prefix  string
	cfgFile string
	addr    string
	network string
	git     bool
	branch  string
	watch   bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "gcserver",
		Short: "Serve a glubblog site",
		Long: `gcserver renders the posts below <prefix>/content on request, using the
templates in <prefix>/templates and the files in <prefix>/static.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(DEBUG)
			return run(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.prefix, "prefix", ".", "path to the root dir")
	f.StringVar(&o.cfgFile, "config", "", "config file (default is <prefix>/glubblog.yaml)")
	f.StringVar(&o.addr, "bind", "localhost:8080", "address or path to bind to")
	f.StringVar(&o.network, "net", "tcp", `"tcp", "tcp4", "tcp6", "unix" or "unixpacket"`)
	f.BoolVar(&o.git, "git", false, "prefix is a git repo")
	f.StringVar(&o.branch, "branch", backend.DefaultBranch, "branch to serve with --git")
	f.BoolVar(&o.watch, "watch", false, "reload when files below prefix change")
	f.BoolVar(&DEBUG, "debug", false, "set debug output")
	f.Bool("drafts", false, "serve draft posts")
	f.Bool("tidy", false, "tidy the index page")
	f.String("markdown", "", "markdown engine, goldmark or blackfriday")
	return cmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
}

func run(cmd *cobra.Command, o options) error {
	if o.git && o.watch {
		return errors.New("--watch has no effect with --git, content follows the branch")
	}
	cfg, err := config.Load(o.prefix, o.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	load := func() (*glubblog.Site, error) {
		fs, err := backend.Open(o.prefix, o.git, o.branch)
		if err != nil {
			return nil, err
		}
		return glubblog.NewSite(fs, cfg)
	}

	h, err := newSiteHandler(load)
	if err != nil {
		return err
	}
	if o.git {
		h.revision = func() (string, error) {
			b, err := backend.Git(o.prefix, o.branch)
			if err != nil {
				return "", err
			}
			return backend.CID(b), nil
		}
	}
	if o.watch {
		stop, err := watch(o.prefix, h.Reload)
		if err != nil {
			return err
		}
		defer stop()
	}

	ln, err := net.Listen(o.network, o.addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s %s", o.network, o.addr)
	}
	defer ln.Close()
	if strings.HasPrefix(o.network, "unix") {
		if err := os.Chmod(o.addr, 0666); err != nil {
			return errors.Wrapf(err, "chmod %q", o.addr)
		}
	}

	slog.Info("Starting", "addr", ln.Addr().String(), "network", o.network)
	slog.Debug("options", "prefix", o.prefix, "git", o.git, "branch", o.branch, "watch", o.watch)
	return http.Serve(ln, compress.New(h.Router()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
