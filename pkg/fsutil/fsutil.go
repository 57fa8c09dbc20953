// Package fsutil reads wiki sources and writes converted output safely.
// Sources are decoded to normalized UTF-8 text; output is written
// atomically and only when its content changes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a file at the time it was read.
type FileInfo struct {
	// Path is the absolute or relative path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// ReadFile reads a file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, info, nil
}

// ReadText reads a source document and decodes it with DecodeText.
func ReadText(ctx context.Context, path string) (string, *FileInfo, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return "", nil, err
	}

	return DecodeText(content), info, nil
}

// ReadExisting returns the content of path, or nil and false when it does
// not exist yet.
func ReadExisting(ctx context.Context, path string) ([]byte, bool, error) {
	content, _, err := ReadFile(ctx, path)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	return content, true, nil
}

// DecodeText converts raw document bytes to text. A UTF-8 or UTF-16 byte
// order mark selects the encoding and is removed; input without one is
// read as UTF-8 with invalid sequences replaced. Line endings are
// normalized to \n.
func DecodeText(content []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	text := strings.ToValidUTF8(string(content), "\uFFFD")
	if decoded, _, err := transform.Bytes(decoder, content); err == nil {
		text = string(decoded)
	}

	if strings.Contains(text, "\r") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}

	return text
}

// ReadAll reads r to the end and decodes it with DecodeText. It is used
// for standard input.
func ReadAll(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return DecodeText(content), nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
