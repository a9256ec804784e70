package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes whole documents by locator.
type Store interface {
	Read(ctx context.Context, loc string) (string, error)
	Write(ctx context.Context, loc string, text string) error
}

// FileStore is a Store over the local filesystem; locators are file paths.
type FileStore struct{}

// Read returns the file's content.
func (FileStore) Read(ctx context.Context, loc string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// Write replaces the file's content atomically: the text is written to a
// temporary file in the same directory, then renamed over the original.
// An existing file keeps its permissions.
func (FileStore) Write(ctx context.Context, loc string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	perm := os.FileMode(0644)
	if info, err := os.Stat(loc); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(loc), "."+filepath.Base(loc)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpName, loc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
