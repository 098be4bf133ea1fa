package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/shared/storage/object"
)

func TestInitCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "pdfs")
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory %s", dir)
	}
	if err := New(" ").Init(); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestSameFileNameGetsDistinctKeys(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()
	payload := []byte("%PDF-1.3\nbody")

	k1, size, mime, err := s.Save(ctx, "user-1", "Ada_modern_20260101000000.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save 1: %v", err)
	}
	k2, _, _, err := s.Save(ctx, "user-1", "Ada_modern_20260101000000.pdf", bytes.NewReader([]byte("%PDF-1.3\nother")))
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("expected distinct keys, got %s twice", k1)
	}
	if size != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), size)
	}
	if mime != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", mime)
	}
	if !strings.HasSuffix(k1, "_Ada_modern_20260101000000.pdf") {
		t.Fatalf("unexpected key %s", k1)
	}

	rc, err := s.Open(ctx, k1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, _ := io.ReadAll(rc)
	rc.Close()
	if !bytes.Equal(got, payload) {
		t.Fatalf("first object was overwritten")
	}
}

func TestDeleteAndMissing(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	key, _, _, err := s.Save(ctx, "user-1", "a.pdf", strings.NewReader("%PDF-1.3"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Open(ctx, key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Open(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestPing(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "pdfs"))
	if err := store.Ping(context.Background()); err == nil {
		t.Fatalf("expected error before Init")
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

type brokenReader struct{ after []byte }

func (b *brokenReader) Read(p []byte) (int, error) {
	if len(b.after) > 0 {
		n := copy(p, b.after)
		b.after = b.after[n:]
		return n, nil
	}
	return 0, errors.New("connection reset")
}

func TestSaveRemovesPartialFileOnReadError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if _, _, _, err := s.Save(context.Background(), "user-1", "a.pdf", &brokenReader{after: bytes.Repeat([]byte("x"), 600)}); err == nil {
		t.Fatalf("expected save error")
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no leftover files, got %v", files)
	}
}
