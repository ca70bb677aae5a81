package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gosuri/uilive"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hufspace/hufspace-cli/internal/cli"
	"github.com/hufspace/hufspace-cli/pkg/files"
	"github.com/hufspace/hufspace-cli/pkg/offline"
)

// PrecacheResult represents the output structure for the precache command
type PrecacheResult struct {
	CacheName string          `json:"cache_name" yaml:"cache_name"`
	Origin    string          `json:"origin" yaml:"origin"`
	Entries   []PrecacheEntry `json:"entries" yaml:"entries"`
	Bytes     int64           `json:"bytes" yaml:"bytes"`
}

// PrecacheEntry is one installed URL
type PrecacheEntry struct {
	URL         string `json:"url" yaml:"url"`
	Status      int    `json:"status" yaml:"status"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
}

var (
	precacheOrigin   string
	precacheManifest string
	precacheTimeout  time.Duration
)

// NewPrecacheCommand creates the precache command
func NewPrecacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "precache",
		Short: "Check that every manifest URL can be installed from an origin",
		Long: `Fetch every URL in the precache manifest from a running origin, the way the
offline cache installs them, and report what would be stored.

The install is all-or-nothing: a single failed fetch or non-2xx response fails
the whole command.

Examples:
  # Check the local server
  hufspace precache

  # Check a deployed origin with a custom manifest
  hufspace precache --origin https://calc.example.org --manifest ./manifest.yaml

  # Output as YAML
  hufspace precache -o yaml`,
		Args: cobra.NoArgs,
		RunE: runPrecache,
	}

	cmd.Flags().StringVar(&precacheOrigin, "origin", "", "Origin to fetch from (default from settings)")
	cmd.Flags().StringVar(&precacheManifest, "manifest", "", "Precache manifest YAML (default: project manifest or built-in)")
	cmd.Flags().DurationVar(&precacheTimeout, "timeout", 0, "Per-request timeout (default from settings)")

	return cmd
}

func runPrecache(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateFormat(format); err != nil {
		return err
	}

	settings, err := files.ReadSettingsOrDefault()
	if err != nil {
		return err
	}
	origin := settings.Offline.Origin
	if precacheOrigin != "" {
		origin = precacheOrigin
	}
	timeout := settings.Offline.Timeout
	if precacheTimeout > 0 {
		timeout = precacheTimeout
	}
	manifestPath := settings.Offline.ManifestPath
	if precacheManifest != "" {
		manifestPath = precacheManifest
	}
	manifest, err := files.ResolveManifest(manifestPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := offline.InstallOptions{
		Concurrency: settings.Offline.Concurrency,
		Logger:      logrus.StandardLogger(),
		DryRun:      true,
	}
	var writer *uilive.Writer
	if format == string(cli.FormatText) && !cli.Quiet() {
		writer = uilive.New()
		writer.Out = cmd.OutOrStdout()
		writer.RefreshInterval = 50 * time.Millisecond
		writer.Start()
		opts.Progress = func(done, total int, e *offline.Entry) {
			fmt.Fprintf(writer, "Fetching %s ... %d/%d\n", e.URL, done, total)
		}
	}

	fetcher := offline.NewHTTPFetcher(origin, timeout)
	entries, err := offline.Install(ctx, offline.NewStorage(), manifest, fetcher, opts)
	if writer != nil {
		// Stop flushes the last progress lines; it must run exactly once.
		writer.Stop()
	}
	if err != nil {
		return err
	}

	result := PrecacheResult{CacheName: manifest.CacheName, Origin: origin}
	for _, e := range entries {
		result.Entries = append(result.Entries, PrecacheEntry{
			URL:         e.URL,
			Status:      e.Status,
			ContentType: e.Header.Get("Content-Type"),
			Bytes:       len(e.Body),
		})
		result.Bytes += int64(len(e.Body))
	}

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("URL", "STATUS", "SIZE", "TYPE")
	for _, e := range result.Entries {
		table.Row(e.URL, fmt.Sprint(e.Status), cli.FormatBytes(int64(e.Bytes)), e.ContentType)
	}
	table.Flush()
	cli.PrintSuccess("%d urls installable into %s (%s)", len(result.Entries), result.CacheName, cli.FormatBytes(result.Bytes))
	return nil
}
