package extract

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func renderSample(t *testing.T) render.Document {
	t.Helper()
	doc, err := render.Render(model.Content{
		Name:   "Ada Lovelace",
		Title:  "Analyst",
		Skills: []string{"Mathematics", "Engines"},
	}, render.StyleModern)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return doc
}

func TestPageTextsFromBytesReadsRenderedText(t *testing.T) {
	doc := renderSample(t)

	pages, err := PageTextsFromBytes(context.Background(), doc.Bytes)
	if err != nil {
		t.Fatalf("PageTextsFromBytes: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if !strings.Contains(pages[0], "SKILLS") {
		t.Fatalf("expected SKILLS heading in %q", pages[0])
	}
}

func TestPageTextsFromBytesRejectsNonPDF(t *testing.T) {
	_, err := PageTextsFromBytes(context.Background(), []byte("hello"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}
}

func TestPageTextsFromStore(t *testing.T) {
	doc := renderSample(t)
	store := local.New(t.TempDir())
	ctx := context.Background()

	key, _, _, err := store.Save(ctx, "user-1", doc.FileName, bytes.NewReader(doc.Bytes))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	pages, err := PageTexts(ctx, store, key)
	if err != nil {
		t.Fatalf("PageTexts: %v", err)
	}
	if len(pages) != doc.Pages {
		t.Fatalf("expected %d pages, got %d", doc.Pages, len(pages))
	}
}

func TestPageCount(t *testing.T) {
	doc := renderSample(t)
	n, err := PageCount(doc.Bytes)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 page, got %d", n)
	}
}
