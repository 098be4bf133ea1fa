package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := testSigner(t)

	router := gin.New()
	router.Use(RequestID(), Auth(signer), Logging())
	router.GET("/api/v1/resumes/:id", func(c *gin.Context) {
		c.Set(ResumeIDKey, "resume-1")
		c.Set(StyleKey, "modern")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	token, _ := signer.Sign(auth.Claims{Sub: "user-7"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/resume-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	for _, key := range []string{"request_id", "user_id", "resume_id", "style", "duration_ms", "status", "route"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["user_id"] != "user-7" || payload["resume_id"] != "resume-1" {
		t.Fatalf("unexpected ids: %v %v", payload["user_id"], payload["resume_id"])
	}
	if payload["route"] != "/api/v1/resumes/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
}
