package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"spiritlog/internal/failure"
	"spiritlog/internal/record"
)

// LockPath returns the advisory lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// Write encodes plays as an indented JSON array at path. The document is
// written to a temp file and renamed into place while holding an exclusive
// lock, so readers never see a partial file and two runs cannot interleave.
func Write(path string, plays []record.Play) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return failure.Wrap(failure.ErrConfiguration, "output", "write", "output path is empty", nil)
	}
	if plays == nil {
		plays = []record.Play{}
	}

	data, err := json.MarshalIndent(plays, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plays: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(LockPath(path))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return failure.Wrap(failure.ErrConflict, "output", "lock",
			fmt.Sprintf("%s is being written by another run", path), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	return writeAtomic(path, data)
}

// writeAtomic writes data to a temp file beside path and renames it into
// place. The temp file is removed on every failure.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Read decodes a document previously produced by Write.
func Read(path string) ([]record.Play, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plays: %w", err)
	}
	var plays []record.Play
	if err := json.Unmarshal(data, &plays); err != nil {
		return nil, failure.Wrap(failure.ErrMalformed, "output", "decode", path, err)
	}
	return plays, nil
}
