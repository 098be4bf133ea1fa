package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 5, 10})
	h.Observe(0.5)
	h.Observe(3)
	h.Observe(50)

	var b strings.Builder
	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
	}
	b.WriteString(formatFloat(snap.sum))

	if cumulative != 2 {
		t.Fatalf("expected 2 observations within buckets, got %d", cumulative)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if b.String() != "53.5" {
		t.Fatalf("unexpected sum %s", b.String())
	}
}

func TestRenderIncludesStyleCounters(t *testing.T) {
	IncRendered("modern")
	IncRendered("modern")
	IncRendered("simple")
	ObserveRender(12, 2)

	out := Render()
	for _, want := range []string{
		`resume_rendered_total{style="modern"}`,
		`resume_rendered_total{style="simple"}`,
		"# TYPE resume_render_duration_ms histogram",
		`resume_render_pages_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
