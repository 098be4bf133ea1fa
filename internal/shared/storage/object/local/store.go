package local

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/util"
)

// Store keeps rendered documents on the local filesystem under baseDir.
type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir. Call Init before serving traffic.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the output directory.
func (s *Store) Init() error {
	if strings.TrimSpace(s.baseDir) == "" {
		return errors.New("local store dir is empty")
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("init local store %s: %w", s.baseDir, err)
	}
	return nil
}

// Ping checks that the output directory exists.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return fmt.Errorf("local store %s: %w", s.baseDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local store %s is not a directory", s.baseDir)
	}
	return nil
}

// Save writes r under the owner's hashed namespace with a random prefix.
func (s *Store) Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (string, int64, string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}

	ownerDir := util.HashUserKey(ownerID)
	storageKey := filepath.ToSlash(filepath.Join(ownerDir, randomID()+"_"+name))

	dir := filepath.Join(s.baseDir, ownerDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, "", fmt.Errorf("mkdir: %w", err)
	}

	full := filepath.Join(s.baseDir, filepath.FromSlash(storageKey))
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, "", fmt.Errorf("create file: %w", err)
	}

	written, mimeType, err := writeBody(f, r)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(full)
		return "", 0, "", err
	}
	return storageKey, written, mimeType, nil
}

func writeBody(w io.Writer, r io.Reader) (int64, string, error) {
	head := make([]byte, 512)
	n, readErr := io.ReadFull(r, head)
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return 0, "", fmt.Errorf("read head: %w", readErr)
	}
	head = head[:n]

	written, err := io.Copy(w, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return 0, "", fmt.Errorf("write body: %w", err)
	}
	return written, http.DetectContentType(head), nil
}

// Open returns the stored object, or object.ErrNotFound.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", storageKey, object.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the stored object. A missing object is reported as
// object.ErrNotFound.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", storageKey, object.ErrNotFound)
		}
		return fmt.Errorf("delete %s: %w", storageKey, err)
	}
	return nil
}

func (s *Store) resolve(storageKey string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(storageKey))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", storageKey)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

var _ object.ObjectStore = (*Store)(nil)
