package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusWithoutProbes(t *testing.T) {
	report := NewService().Status(context.Background())
	if !report.OK || report.Checks != nil {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStatusReportsFailingProbe(t *testing.T) {
	svc := NewService()
	svc.Register("database", func(context.Context) error { return errors.New("connection refused") })
	svc.Register("storage", func(context.Context) error { return nil })
	svc.Register("ignored", nil)

	report := svc.Status(context.Background())
	if report.OK {
		t.Fatalf("expected not ok")
	}
	if report.Checks["database"] != "connection refused" || report.Checks["storage"] != "ok" {
		t.Fatalf("unexpected checks %+v", report.Checks)
	}
	if _, ok := report.Checks["ignored"]; ok {
		t.Fatalf("nil probe should not be registered")
	}
}
