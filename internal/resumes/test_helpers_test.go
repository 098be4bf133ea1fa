package resumes

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

var fixedNow = time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)

func sampleContent() model.Content {
	return model.Content{
		Name:    "Ada Lovelace",
		Title:   "Analyst",
		Contact: model.Contact{Email: "ada@example.com", Phone: "555-0100"},
		Education: []model.EducationEntry{
			{Degree: "BSc Mathematics", School: "University of London", Year: "1835"},
		},
		Experience: []model.ExperienceEntry{
			{Title: "Engineer", Company: "Analytical Engines", Date: "1842", Highlights: []string{"Wrote the first program"}},
		},
		Skills: []string{"Mathematics", "Writing"},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryRepo, *local.Store) {
	t.Helper()
	store := local.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("store init: %v", err)
	}
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:     repo,
		Store:    store,
		Renderer: render.NewWithClock(func() time.Time { return fixedNow }),
		Now:      func() time.Time { return fixedNow },
	}
	return svc, repo, store
}

// failingStore rejects every save.
type failingStore struct {
	object.ObjectStore
}

func (failingStore) Save(context.Context, string, string, io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("disk full")
}

// failingRepo rejects every create.
type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(context.Context, Resume) error {
	return errors.New("connection refused")
}

// countingStore records deletes on top of a real store.
type countingStore struct {
	object.ObjectStore
	deleted []string
}

func (s *countingStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.ObjectStore.Delete(ctx, key)
}

type brokenRenderer struct{}

func (brokenRenderer) Render(model.Content, render.Style) (render.Document, error) {
	return render.Document{}, &render.RenderError{Op: "encode", Err: errors.New("boom")}
}
