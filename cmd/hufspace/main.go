package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hufspace/hufspace-cli/cmd/commands"
	"github.com/hufspace/hufspace-cli/internal/cli"
	"github.com/hufspace/hufspace-cli/pkg/files"
	"github.com/hufspace/hufspace-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	outputFormat string
	quiet        bool
	noColor      bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "hufspace",
	Short: "Four-function calculator for the terminal and the browser",
	Long: `Hufspace is a four-function calculator. Run it without arguments for the
interactive keypad, use 'eval' to press keys from scripts, or 'serve' to host
the web keypad with an offline cache.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(quiet, noColor)
		level, err := resolveLogLevel(cmd, logLevel)
		if err != nil {
			return err
		}
		return cli.SetupLogger(level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := files.ReadSettingsOrDefault()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, so log lines would corrupt the screen.
		cli.SilenceLogger()

		app := tui.NewApp(settings.UI)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

// resolveLogLevel prefers an explicit --log-level, then the project's
// settings, then the flag default.
func resolveLogLevel(cmd *cobra.Command, flagValue string) (string, error) {
	if cmd.Flags().Changed("log-level") {
		return flagValue, nil
	}
	settings, err := files.ReadSettingsOrDefault()
	if err != nil {
		return "", err
	}
	if settings.Log.Level == "" {
		return flagValue, nil
	}
	return settings.Log.Level, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Hufspace project",
	Long:  `Creates the .hufspace folder with default settings and precache manifest in the current directory`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		cli.PrintInfo("Initializing Hufspace project in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created %s", files.ProjectDir)
		if !cli.Quiet() {
			fmt.Println("\nRun 'hufspace' to start the keypad or 'hufspace serve' for the web version.")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Hufspace",
	Long:  `Display the current version of the Hufspace CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Hufspace version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error; default from settings)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewEvalCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewPrecacheCommand())
	rootCmd.AddCommand(commands.NewManifestCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
