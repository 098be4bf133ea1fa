package render

import (
	"fmt"
	"strings"
	"time"

	"resume-builder/resume/model"
)

// MimeType is the content type of rendered documents.
const MimeType = "application/pdf"

const timestampLayout = "20060102150405"

// Document is a rendered resume plus the name it should be saved under.
type Document struct {
	Bytes     []byte
	FileName  string
	Style     Style
	Pages     int
	CreatedAt time.Time
}

// RenderError reports a drawing or serialization failure.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer turns resume content into PDF documents. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	now func() time.Time
}

// New returns a Renderer that timestamps file names with the wall clock.
func New() *Renderer {
	return &Renderer{now: time.Now}
}

// NewWithClock returns a Renderer using now for file name timestamps.
func NewWithClock(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

// Render lays out content with the given style and serializes it to PDF.
func Render(content model.Content, style Style) (Document, error) {
	return New().Render(content, style)
}

// Render lays out content with the given style and serializes it to PDF.
func (r *Renderer) Render(content model.Content, style Style) (doc Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = Document{}
			err = &RenderError{Op: "layout", Err: fmt.Errorf("%v", rec)}
		}
	}()

	style = normalizeStyle(style)
	laid := Layout(content, ThemeFor(style))

	data, err := Encode(laid)
	if err != nil {
		return Document{}, &RenderError{Op: "encode", Err: err}
	}

	created := r.now()
	return Document{
		Bytes:     data,
		FileName:  FileName(content.Name, style, created),
		Style:     style,
		Pages:     len(laid.Pages),
		CreatedAt: created,
	}, nil
}

// FileName builds "{name}_{style}_{YYYYMMDDHHMMSS}.pdf".
func FileName(name string, style Style, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", SanitizeName(DisplayName(name)), SanitizeName(string(normalizeStyle(style))), at.Format(timestampLayout))
}

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// SanitizeName replaces path-unsafe characters with underscores.
func SanitizeName(name string) string {
	return nameReplacer.Replace(strings.TrimSpace(name))
}

func normalizeStyle(style Style) Style {
	s := Style(strings.ToLower(strings.TrimSpace(string(style))))
	if s == "" {
		return StyleSimple
	}
	return s
}
