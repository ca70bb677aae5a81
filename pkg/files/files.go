package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hufspace/hufspace-cli/pkg/models"
	"github.com/hufspace/hufspace-cli/pkg/offline"
	"gopkg.in/yaml.v3"
)

const (
	ProjectDir   = ".hufspace"
	SettingsFile = "settings.yaml"
	ManifestFile = "manifest.yaml"
)

// InitProjectStructure creates the project directory with default settings
// and manifest files. Existing files are left untouched.
func InitProjectStructure() error {
	if err := os.MkdirAll(ProjectDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ProjectDir, err)
	}

	if _, err := os.Stat(SettingsPath()); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	if _, err := os.Stat(ManifestPath()); os.IsNotExist(err) {
		if err := WriteManifest(ManifestPath(), offline.DefaultManifest()); err != nil {
			return err
		}
	}

	return nil
}

// SettingsPath returns the location of the settings file
func SettingsPath() string {
	return filepath.Join(ProjectDir, SettingsFile)
}

// ManifestPath returns the location of the project manifest
func ManifestPath() string {
	return filepath.Join(ProjectDir, ManifestFile)
}

// ReadSettings loads the settings file. Fields missing from the file keep
// their default values.
func ReadSettings() (*models.Settings, error) {
	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

// ReadSettingsOrDefault loads settings, falling back to the defaults when the
// project has not been initialized
func ReadSettingsOrDefault() (*models.Settings, error) {
	settings, err := ReadSettings()
	if err == nil {
		return settings, nil
	}
	if _, statErr := os.Stat(SettingsPath()); os.IsNotExist(statErr) {
		return models.DefaultSettings(), nil
	}
	return nil, err
}

// WriteSettings saves settings to the settings file
func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(ProjectDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ProjectDir, err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// WriteManifest saves a manifest as YAML
func WriteManifest(path string, m offline.Manifest) error {
	content, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest to YAML: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// ResolveManifest returns the manifest at path, or the project manifest when
// path is empty and one exists, or the built-in manifest.
func ResolveManifest(path string) (offline.Manifest, error) {
	if path != "" {
		return offline.LoadManifest(path)
	}
	if _, err := os.Stat(ManifestPath()); err == nil {
		return offline.LoadManifest(ManifestPath())
	}
	return offline.DefaultManifest(), nil
}
