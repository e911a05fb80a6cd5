// Package testutil provides fixture helpers shared by tests across the
// module: testdata loading, roster and tier map fixtures, and an
// in-process directory API server.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/seatsync/pkg/constants"
)

// LoadTestdata loads a file from the caller's testdata directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", path, err)
	}
	return data
}

// WriteRoster writes CSV content to a temporary roster file and returns
// its path. The file is removed when the test finishes.
func WriteRoster(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, "roster.csv", content)
}

// WriteTierMap writes YAML alias content to a temporary tier map file and
// returns its path.
func WriteTierMap(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, "tiers.yaml", content)
}

// WriteFile writes content to a named file under a fresh temporary
// directory and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}
