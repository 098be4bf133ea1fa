package resumes

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/form"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const (
	maxFormSize = 1 << 20 // 1MB

	// HeaderResumeID carries the stored record id of a generated resume.
	HeaderResumeID = "X-Resume-Id"
	// HeaderResumeWarning is set when a generated resume was not saved.
	HeaderResumeWarning = "X-Resume-Warning"

	persistWarning = "resume generated but not saved to your dashboard"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes that need no login.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.templates)
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.generate)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/view", h.view)
	rg.GET("/resumes/:id/download", h.download)
	rg.GET("/resumes/:id/text", h.text)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, gin.H{
		"default":   form.DefaultStyle,
		"templates": templateCatalogue(),
	})
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)

	content, style, err := readSubmission(c)
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume submission", verr.Problems)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read form", nil)
		return
	}
	c.Set(middleware.StyleKey, style)

	out, err := h.Svc.Generate(c.Request.Context(), userID, content, style)
	if err != nil {
		var rerr *render.RenderError
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.As(err, &rerr):
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate resume", nil)
		}
		return
	}

	if out.Persisted() {
		c.Set(middleware.ResumeIDKey, out.Resume.ID)
		c.Header(HeaderResumeID, out.Resume.ID)
	} else {
		c.Header(HeaderResumeWarning, persistWarning)
	}
	respond.Bytes(c, http.StatusOK, respond.Attachment, out.Document.FileName, render.MimeType, out.Document.Bytes)
}

// readSubmission accepts a JSON body or a url-encoded/multipart form.
func readSubmission(c *gin.Context) (model.Content, string, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch mediaType {
	case "application/json":
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return model.Content{}, "", err
		}
		return form.ParseJSON(body)
	case "multipart/form-data":
		if err := c.Request.ParseMultipartForm(maxFormSize); err != nil {
			return model.Content{}, "", err
		}
	default:
		if err := c.Request.ParseForm(); err != nil {
			return model.Content{}, "", err
		}
	}
	fields := form.FromValues(c.Request.PostForm)
	return fields.Content(), fields.Style(), nil
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	limit, offset = clampPage(limit, offset)

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err, "failed to list resumes")
		return
	}

	resp := make([]summaryResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toSummary(item))
	}
	respond.OK(c, gin.H{
		"items":  resp,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toResponse(resume))
}

func (h *Handler) view(c *gin.Context) {
	h.serve(c, respond.Inline)
}

func (h *Handler) download(c *gin.Context) {
	h.serve(c, respond.Attachment)
}

func (h *Handler) serve(c *gin.Context, disposition respond.Disposition) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, body, err := h.Svc.Open(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to open resume")
		return
	}
	defer body.Close()

	if disposition == respond.Attachment {
		metrics.IncDownloads()
	}
	respond.File(c, disposition, resume.FileName, resume.MimeType, resume.SizeBytes, body)
}

func (h *Handler) text(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	pages, err := h.Svc.Text(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to read resume text")
		return
	}
	respond.OK(c, gin.H{
		"resumeId": resumeID,
		"pages":    pages,
	})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps service errors to responses. Resumes owned by someone else
// are reported as missing.
func (h *Handler) writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
