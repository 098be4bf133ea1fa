package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	renderFailedTotal  atomic.Uint64
	persistFailedTotal atomic.Uint64
	downloadsTotal     atomic.Uint64

	renderedByStyle = newLabeledCounter()
	renderDuration  = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500})
	renderPages     = newHistogram([]float64{1, 2, 3, 5, 10, 20})
)

// IncRendered counts a successful render for the given style.
func IncRendered(style string) {
	renderedByStyle.Inc(style)
}

// IncRenderFailed counts a render that produced no document.
func IncRenderFailed() {
	renderFailedTotal.Add(1)
}

// IncPersistFailed counts a document that was returned but not stored.
func IncPersistFailed() {
	persistFailedTotal.Add(1)
}

// IncDownloads counts a stored document served to a client.
func IncDownloads() {
	downloadsTotal.Add(1)
}

// ObserveRender records render duration in milliseconds and the page count.
func ObserveRender(durationMs float64, pages int) {
	if durationMs < 0 {
		durationMs = 0
	}
	renderDuration.Observe(durationMs)
	renderPages.Observe(float64(pages))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeLabeledCounter(&buf, "resume_rendered_total", "Resumes rendered", "style", renderedByStyle.Snapshot())
	writeCounter(&buf, "resume_render_failed_total", "Resume renders that failed", renderFailedTotal.Load())
	writeCounter(&buf, "resume_persist_failed_total", "Rendered resumes that could not be stored", persistFailedTotal.Load())
	writeCounter(&buf, "resume_downloads_total", "Stored resumes served", downloadsTotal.Load())
	writeHistogram(&buf, "resume_render_duration_ms", "Render duration in milliseconds", renderDuration.Snapshot())
	writeHistogram(&buf, "resume_render_pages", "Pages per rendered resume", renderPages.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (c *labeledCounter) Inc(label string) {
	c.mu.Lock()
	c.values[label]++
	c.mu.Unlock()
}

func (c *labeledCounter) Snapshot() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe stores per-bucket counts; cumulation happens at write time.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
