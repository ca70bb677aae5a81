package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hufspace/hufspace-cli/pkg/files"
	"github.com/hufspace/hufspace-cli/pkg/server"
)

var (
	serveAddr      string
	serveStaticDir string
	serveWatch     bool
	serveNoOffline bool
	serveManifest  string
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web calculator with offline caching",
		Long: `Serve the calculator page over HTTP.

Every asset listed in the precache manifest is installed into a versioned
cache before the server starts listening. GET requests found in the cache
are answered from it; everything else goes to the network handlers.

Examples:
  # Serve on the configured address
  hufspace serve

  # Serve assets from a directory and evict cached files when they change
  hufspace serve --static-dir ./static --watch

  # Serve without the cache
  hufspace serve --no-offline --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings)")
	cmd.Flags().StringVar(&serveStaticDir, "static-dir", "", "Serve static assets from this directory instead of the embedded ones")
	cmd.Flags().BoolVar(&serveWatch, "watch", false, "Evict cached assets when files in --static-dir change")
	cmd.Flags().BoolVar(&serveNoOffline, "no-offline", false, "Disable the cache-first wrapper")
	cmd.Flags().StringVar(&serveManifest, "manifest", "", "Precache manifest YAML (default: project manifest or built-in)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := files.ReadSettingsOrDefault()
	if err != nil {
		return err
	}

	opts := server.Options{
		StaticDir: settings.Server.StaticDir,
		Watch:     settings.Server.Watch,
		Offline:   settings.Offline.Enabled,
		Logger:    logrus.StandardLogger(),
	}
	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	if serveStaticDir != "" {
		opts.StaticDir = serveStaticDir
	}
	if cmd.Flags().Changed("watch") {
		opts.Watch = serveWatch
	}
	if serveNoOffline {
		opts.Offline = false
	}
	if opts.Watch && opts.StaticDir == "" {
		return fmt.Errorf("--watch requires --static-dir")
	}

	manifestPath := settings.Offline.ManifestPath
	if serveManifest != "" {
		manifestPath = serveManifest
	}
	opts.Manifest, err = files.ResolveManifest(manifestPath)
	if err != nil {
		return err
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Precache(ctx); err != nil {
		// A failed install leaves the cache empty; the page still works online.
		logrus.Warnf("precache failed, serving without offline cache: %v", err)
	}

	return srv.Run(ctx, addr)
}
