package main

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hufspace/hufspace-cli/pkg/files"
	"github.com/hufspace/hufspace-cli/pkg/models"
)

func inTempProject(t *testing.T, level string) {
	t.Helper()
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(oldDir) })

	if level == "" {
		return
	}
	settings := models.DefaultSettings()
	settings.Log.Level = level
	require.NoError(t, files.WriteSettings(settings))
}

func newLevelCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "info", "")
	return cmd
}

func TestResolveLogLevel(t *testing.T) {
	t.Run("settings used when flag not given", func(t *testing.T) {
		inTempProject(t, "debug")
		level, err := resolveLogLevel(newLevelCommand(), "info")
		require.NoError(t, err)
		assert.Equal(t, "debug", level)
	})

	t.Run("flag overrides settings", func(t *testing.T) {
		inTempProject(t, "debug")
		cmd := newLevelCommand()
		require.NoError(t, cmd.Flags().Set("log-level", "warn"))
		level, err := resolveLogLevel(cmd, "warn")
		require.NoError(t, err)
		assert.Equal(t, "warn", level)
	})

	t.Run("no project uses flag default", func(t *testing.T) {
		inTempProject(t, "")
		level, err := resolveLogLevel(newLevelCommand(), "info")
		require.NoError(t, err)
		assert.Equal(t, "info", level)
	})
}

func TestRootAppliesSettingsLogLevel(t *testing.T) {
	inTempProject(t, "error")
	defer logrus.SetLevel(logrus.InfoLevel)

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}
