package resumes

import (
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const previewWidth = 60

type resumeResponse struct {
	ResumeID      string        `json:"resumeId"`
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	Contact       model.Contact `json:"contact"`
	Education     string        `json:"education"`
	Experience    string        `json:"experience"`
	Skills        string        `json:"skills"`
	TemplateStyle string        `json:"templateStyle"`
	FileName      string        `json:"fileName"`
	MimeType      string        `json:"mimeType"`
	SizeBytes     int64         `json:"sizeBytes"`
	Pages         int           `json:"pages"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type summaryResponse struct {
	ResumeID      string    `json:"resumeId"`
	Name          string    `json:"name"`
	Title         string    `json:"title"`
	TemplateStyle string    `json:"templateStyle"`
	FileName      string    `json:"fileName"`
	Pages         int       `json:"pages"`
	Preview       preview   `json:"preview"`
	CreatedAt     time.Time `json:"createdAt"`
}

type preview struct {
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type templateResponse struct {
	ID     string `json:"id"`
	Header string `json:"header"`
	Accent string `json:"accent"`
	Footer string `json:"footer"`
}

func toResponse(r Resume) resumeResponse {
	return resumeResponse{
		ResumeID: r.ID,
		Name:     r.Name,
		Title:    r.Title,
		Contact: model.Contact{
			Email:    r.Email,
			Phone:    r.Phone,
			Location: r.Location,
			Link:     r.Link,
		},
		Education:     r.Education,
		Experience:    r.Experience,
		Skills:        r.Skills,
		TemplateStyle: r.TemplateStyle,
		FileName:      r.FileName,
		MimeType:      r.MimeType,
		SizeBytes:     r.SizeBytes,
		Pages:         r.Pages,
		CreatedAt:     r.CreatedAt,
	}
}

func toSummary(r Resume) summaryResponse {
	return summaryResponse{
		ResumeID:      r.ID,
		Name:          r.Name,
		Title:         r.Title,
		TemplateStyle: r.TemplateStyle,
		FileName:      r.FileName,
		Pages:         r.Pages,
		Preview: preview{
			Education:  previewLine(r.Education),
			Experience: previewLine(r.Experience),
			Skills:     previewLine(r.Skills),
		},
		CreatedAt: r.CreatedAt,
	}
}

// previewLine keeps the first line of a flattened section, cut to the
// dashboard column width.
func previewLine(s string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return truncate.StringWithTail(first, previewWidth, "...")
}

func templateCatalogue() []templateResponse {
	out := make([]templateResponse, 0, len(render.Styles))
	for _, style := range render.Styles {
		theme := render.ThemeFor(style)
		out = append(out, templateResponse{
			ID:     string(style),
			Header: theme.Header.Hex(),
			Accent: theme.Accent.Hex(),
			Footer: theme.Footer.Hex(),
		})
	}
	return out
}
