package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hufspace/hufspace-cli/pkg/models"
	"github.com/hufspace/hufspace-cli/pkg/offline"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	return tempDir
}

func TestInitProjectStructure(t *testing.T) {
	chdirTemp(t)

	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	for _, path := range []string{ProjectDir, SettingsPath(), ManifestPath()} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected %s to exist", path)
		}
	}

	m, err := ResolveManifest("")
	if err != nil {
		t.Fatalf("ResolveManifest failed: %v", err)
	}
	if m.CacheName != offline.DefaultCacheName {
		t.Errorf("Expected cache name %q, got %q", offline.DefaultCacheName, m.CacheName)
	}
}

func TestInitKeepsExistingSettings(t *testing.T) {
	chdirTemp(t)

	settings := models.DefaultSettings()
	settings.Server.Addr = "0.0.0.0:9999"
	if err := WriteSettings(settings); err != nil {
		t.Fatalf("WriteSettings failed: %v", err)
	}
	if err := InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}

	got, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if got.Server.Addr != "0.0.0.0:9999" {
		t.Errorf("Expected existing addr to survive init, got %q", got.Server.Addr)
	}
}

func TestReadSettingsPartialFile(t *testing.T) {
	chdirTemp(t)

	if err := os.MkdirAll(ProjectDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "ui:\n  accent_color: \"33\"\noffline:\n  timeout: 3s\n"
	if err := os.WriteFile(SettingsPath(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if got.UI.AccentColor != "33" {
		t.Errorf("Expected accent color 33, got %q", got.UI.AccentColor)
	}
	if got.Offline.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", got.Offline.Timeout)
	}
	if got.Server.Addr != models.DefaultSettings().Server.Addr {
		t.Errorf("Expected default addr, got %q", got.Server.Addr)
	}
}

func TestReadSettingsOrDefault(t *testing.T) {
	chdirTemp(t)

	got, err := ReadSettingsOrDefault()
	if err != nil {
		t.Fatalf("ReadSettingsOrDefault failed: %v", err)
	}
	if got.Log.Level != "info" {
		t.Errorf("Expected default log level, got %q", got.Log.Level)
	}

	if err := os.MkdirAll(ProjectDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(SettingsPath(), []byte("ui: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSettingsOrDefault(); err == nil {
		t.Error("Expected an error for malformed settings")
	}
}

func TestResolveManifestExplicitPath(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "custom.yaml")
	want := offline.Manifest{CacheName: "custom-v3", URLs: []string{"/", "/app.js"}}
	if err := WriteManifest(path, want); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	got, err := ResolveManifest(path)
	if err != nil {
		t.Fatalf("ResolveManifest failed: %v", err)
	}
	if got.CacheName != want.CacheName || len(got.URLs) != 2 {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	def, err := ResolveManifest("")
	if err != nil {
		t.Fatalf("ResolveManifest failed: %v", err)
	}
	if def.CacheName != offline.DefaultCacheName {
		t.Errorf("Expected built-in manifest, got %q", def.CacheName)
	}
}
