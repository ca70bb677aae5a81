package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hufspace/hufspace-cli/internal/cli"
	"github.com/hufspace/hufspace-cli/pkg/files"
)

var manifestPath string

// NewManifestCommand creates the manifest command
func NewManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the effective precache manifest",
		Long: `Print the cache name and URL list the offline cache installs.

The manifest is read from --manifest, then the project's
.hufspace/manifest.yaml, and falls back to the built-in list.

Examples:
  hufspace manifest
  hufspace manifest -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			if err := cli.ValidateFormat(format); err != nil {
				return err
			}

			path := manifestPath
			if path == "" {
				settings, err := files.ReadSettingsOrDefault()
				if err != nil {
					return err
				}
				path = settings.Offline.ManifestPath
			}
			m, err := files.ResolveManifest(path)
			if err != nil {
				return err
			}

			if format != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), format, m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cache: %s\n", m.CacheName)
			for _, u := range m.URLs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", u)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest YAML to print")

	return cmd
}
