package respond

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Disposition selects how the browser should present a served file.
type Disposition string

const (
	Inline     Disposition = "inline"
	Attachment Disposition = "attachment"
)

// File streams r with the given content type and disposition. size may be
// negative when unknown.
func File(c *gin.Context, disposition Disposition, fileName, contentType string, size int64, r io.Reader) {
	c.Header("Content-Disposition", mime.FormatMediaType(string(disposition), map[string]string{"filename": fileName}))
	c.Header("Content-Type", contentType)
	c.Header("X-Content-Type-Options", "nosniff")
	if size >= 0 {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, r); err != nil {
		_ = c.Error(fmt.Errorf("stream %s: %w", fileName, err))
	}
}

// Bytes sends an in-memory file.
func Bytes(c *gin.Context, status int, disposition Disposition, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType(string(disposition), map[string]string{"filename": fileName}))
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(status, contentType, data)
}
