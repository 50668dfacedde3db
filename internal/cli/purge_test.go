package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunPurgeSessionsCommand(t *testing.T) {
	var out bytes.Buffer
	dbPath := filepath.Join(t.TempDir(), "nested", "rangepick.db")

	if err := RunPurgeSessionsCommand(&out, dbPath, 24*time.Hour); err != nil {
		t.Fatalf("RunPurgeSessionsCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Purged 0 idle session(s)") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if err := RunPurgeSessionsCommand(&out, dbPath, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}
