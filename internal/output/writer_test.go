package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"spiritlog/internal/failure"
	"spiritlog/internal/output"
	"spiritlog/internal/record"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "plays.json")
	plays := []record.Play{
		{
			PlayID:    record.StringPtr("101"),
			Date:      "2025-01-02",
			Adversary: record.StringPtr("England"),
			Level:     record.IntPtr(3),
			Map:       record.StringPtr("Coast"),
			Players:   []record.Assignment{{Player: "A", Spirit: "River Surges in Sunlight"}},
			Comment:   "close one",
			Won:       true,
		},
		{Date: "2023-04-01", Players: []record.Assignment{}, Won: true},
	}

	if err := output.Write(path, plays); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	for _, fragment := range []string{`"play_id": "101"`, `"play_id": null`, `"level": 3`, `"players": []`, `"won": true`} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, content)
		}
	}
	requireNoTempFiles(t, filepath.Dir(path))

	got, err := output.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 || *got[0].Adversary != "England" || got[1].Level != nil {
		t.Fatalf("unexpected round trip %+v", got)
	}
}

func TestWriteEmptyListIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plays.json")
	if err := output.Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestWriteFailsWhenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plays.json")
	holder := flock.New(output.LockPath(path))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: locked=%v err=%v", locked, err)
	}
	t.Cleanup(func() { _ = holder.Unlock() })

	err = output.Write(path, nil)
	if !errors.Is(err, failure.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, got %v", statErr)
	}
}

func TestWriteRequiresPath(t *testing.T) {
	if err := output.Write("  ", nil); !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestWriteRemovesTempFileWhenRenameFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plays.json")
	// A non-empty directory at the target makes the final rename fail.
	if err := os.MkdirAll(filepath.Join(path, "occupied"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := output.Write(path, nil); err == nil {
		t.Fatal("expected rename onto a directory to fail")
	}
	requireNoTempFiles(t, dir)
}

func requireNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected temp files to be removed, found %v", matches)
	}
}
