package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// Renderer turns resume content into a PDF document.
type Renderer interface {
	Render(content model.Content, style render.Style) (render.Document, error)
}

// Service contains business logic for generated resumes.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Renderer Renderer
	Now      func() time.Time
}

// Generated is the outcome of a generate call. Resume is the zero value when
// Warning is set.
type Generated struct {
	Document render.Document
	Resume   Resume
	Warning  *PersistenceError
}

// Persisted reports whether the document was stored and recorded.
func (g Generated) Persisted() bool { return g.Warning == nil && g.Resume.ID != "" }

// Generate renders content for userID and stores the result. Storage or
// record failures are reported through Generated.Warning so the caller can
// still hand the document to the user.
func (s *Service) Generate(ctx context.Context, userID string, content model.Content, styleName string) (Generated, error) {
	if strings.TrimSpace(userID) == "" {
		return Generated{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Store == nil || s.Renderer == nil {
		return Generated{}, errors.New("missing dependencies")
	}

	if strings.TrimSpace(styleName) == "" {
		styleName = string(render.StyleModern)
	}
	style, ok := render.ParseStyle(styleName)
	if !ok {
		return Generated{}, fmt.Errorf("%w: unknown template style %q", ErrInvalidInput, styleName)
	}
	if err := content.Validate(); err != nil {
		return Generated{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := ctx.Err(); err != nil {
		return Generated{}, err
	}

	start := time.Now()
	doc, err := s.Renderer.Render(content, style)
	if err != nil {
		metrics.IncRenderFailed()
		telemetry.Error("resume.render_failed", map[string]any{
			"user_id": userID,
			"style":   string(style),
			"error":   err,
		})
		return Generated{}, err
	}
	metrics.IncRendered(string(doc.Style))
	metrics.ObserveRender(float64(time.Since(start).Microseconds())/1000.0, doc.Pages)

	out := Generated{Document: doc}

	storageKey, size, _, err := s.Store.Save(ctx, userID, doc.FileName, bytes.NewReader(doc.Bytes))
	if err != nil {
		out.Warning = s.persistFailed(userID, doc, &PersistenceError{Op: "store", Err: err})
		return out, nil
	}

	flat := content.Flatten()
	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          render.DisplayName(content.Name),
		Title:         content.Title,
		Email:         content.Contact.Email,
		Phone:         content.Contact.Phone,
		Location:      content.Contact.Location,
		Link:          content.Contact.Link,
		Education:     flat.Education,
		Experience:    flat.Experience,
		Skills:        flat.Skills,
		TemplateStyle: string(doc.Style),
		FileName:      doc.FileName,
		StorageKey:    storageKey,
		MimeType:      render.MimeType,
		SizeBytes:     size,
		Pages:         doc.Pages,
		CreatedAt:     s.now(),
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), storageKey); delErr != nil {
			telemetry.Warn("resume.orphan_cleanup_failed", map[string]any{
				"user_id":     userID,
				"storage_key": storageKey,
				"error":       delErr,
			})
		}
		out.Warning = s.persistFailed(userID, doc, &PersistenceError{Op: "record", Err: err})
		return out, nil
	}

	telemetry.Info("resume.generated", map[string]any{
		"user_id":    userID,
		"resume_id":  resume.ID,
		"style":      resume.TemplateStyle,
		"pages":      resume.Pages,
		"size_bytes": resume.SizeBytes,
	})
	out.Resume = resume
	return out, nil
}

func (s *Service) persistFailed(userID string, doc render.Document, perr *PersistenceError) *PersistenceError {
	metrics.IncPersistFailed()
	telemetry.Error("resume.persist_failed", map[string]any{
		"user_id":   userID,
		"file_name": doc.FileName,
		"op":        perr.Op,
		"error":     perr.Err,
	})
	return perr
}

// Get returns a resume by ID for a user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	if _, err := uuid.Parse(resumeID); err != nil {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns a page of the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open returns the record and a reader over its stored PDF. The caller
// closes the reader.
func (s *Service) Open(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	body, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Resume{}, nil, fmt.Errorf("%w: stored file missing for resume %s", ErrNotFound, resumeID)
		}
		return Resume{}, nil, err
	}
	return resume, body, nil
}

// Delete removes the stored file and then the record. A file that cannot be
// removed is logged and does not block deleting the record.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, resume.StorageKey); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("resume.file_delete_failed", map[string]any{
			"user_id":     userID,
			"resume_id":   resumeID,
			"storage_key": resume.StorageKey,
			"error":       err,
		})
	}
	return s.Repo.Delete(ctx, userID, resumeID)
}

// Text returns the plain text of each page of a stored resume.
func (s *Service) Text(ctx context.Context, userID, resumeID string) ([]string, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	pages, err := extract.PageTexts(ctx, s.Store, resume.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("%w: stored file missing for resume %s", ErrNotFound, resumeID)
		}
		return nil, err
	}
	return pages, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
