package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHashUserKey(t *testing.T) {
	id := "google:12345"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName(" Jane/Doe\\CV\t.pdf ")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "Jane_Doe_CV.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
	if got, err := SanitizeFileName("../secret.pdf"); err != nil || got != "._secret.pdf" {
		t.Fatalf("expected flattened traversal, got %q %v", got, err)
	}
	if got, err := SanitizeFileName("John_Smith_Jr.._modern.pdf"); err != nil || got != "John_Smith_Jr._modern.pdf" {
		t.Fatalf("expected collapsed dots, got %q %v", got, err)
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected empty rejected")
	}
	long, err := SanitizeFileName(strings.Repeat("a", 300) + ".pdf")
	if err != nil {
		t.Fatalf("sanitize long: %v", err)
	}
	if len(long) != maxFileNameLen || !strings.HasSuffix(long, ".pdf") {
		t.Fatalf("expected truncated name with extension, got len %d", len(long))
	}
}

func TestSanitizeFileNameCutsOnRuneBoundary(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("日", 70) + "_modern_20240309143005.pdf")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid utf-8, got %q", got)
	}
	if len(got) > maxFileNameLen || !strings.HasSuffix(got, "日.pdf") {
		t.Fatalf("unexpected name %q (len %d)", got, len(got))
	}
}
