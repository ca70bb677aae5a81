package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stdout, "OK: %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", color.New(color.Bold, color.FgGreen).Sprint("✓"), msg)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stdout, "INFO: %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", color.CyanString("ℹ"), msg)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stderr, "WARNING: %s\n", msg)
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", color.YellowString("⚠"), msg)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(stderr, "ERROR: %s\n", msg)
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", color.New(color.Bold, color.FgRed).Sprint("✗"), msg)
}

// Global flags (will be set from cmd package)
var (
	quiet   bool
	noColor bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc bool) {
	quiet = q
	noColor = nc
	if nc {
		color.NoColor = true
	}
}

// Quiet reports whether quiet mode is enabled
func Quiet() bool {
	return quiet
}
