package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEnvPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}

	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/test-config")

		result := DefaultEnvPath()
		expected := filepath.Join("/tmp/test-config", "swiftly", "swiftly.env")
		if result != expected {
			t.Errorf("Expected %s, got %s", expected, result)
		}
	})

	t.Run("without XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		result := DefaultEnvPath()
		expected := filepath.Join(homeDir, ".config", "swiftly", "swiftly.env")
		if result != expected {
			t.Errorf("Expected %s, got %s", expected, result)
		}
	})
}

func TestEnsureParentDir(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "nested", "dir", "swiftly.env")

	if err := EnsureParentDir(testPath); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}

	info, err := os.Stat(filepath.Dir(testPath))
	if err != nil {
		t.Fatalf("Parent directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected parent to be a directory")
	}
	if info.Mode().Perm() != os.FileMode(0700) {
		t.Errorf("Expected permissions %v, got %v", os.FileMode(0700), info.Mode().Perm())
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	existing := filepath.Join(tmpDir, "exists.env")
	if err := os.WriteFile(existing, []byte("ENV=dev\n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existing) {
		t.Error("Expected FileExists to return true for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "missing.env")) {
		t.Error("Expected FileExists to return false for missing file")
	}
	if FileExists(tmpDir) {
		t.Error("Expected FileExists to return false for a directory")
	}
}
