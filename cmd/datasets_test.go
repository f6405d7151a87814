package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/chat-explorer/testutil"
)

func TestDatasetsCommand(t *testing.T) {
	dataDir := testutil.CreateMockDataDir(t)

	out, err := execute(t, "--data-dir", dataDir, "datasets")
	if err != nil {
		t.Fatalf("datasets error = %v", err)
	}
	for _, want := range []string{"Found 2 dataset(s)", "alpha", "beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ".trash") {
		t.Error("hidden folders should not be listed")
	}
}

func TestDatasetsCommand_Empty(t *testing.T) {
	out, err := execute(t, "--data-dir", t.TempDir(), "datasets")
	if err != nil {
		t.Fatalf("datasets error = %v", err)
	}
	if !strings.Contains(out, "No datasets found") {
		t.Errorf("output = %q", out)
	}
}

func TestDatasetsCommand_MissingDir(t *testing.T) {
	if _, err := execute(t, "--data-dir", "/nonexistent/chat-explorer", "datasets"); err == nil {
		t.Error("datasets should fail for a missing data directory")
	}
}
