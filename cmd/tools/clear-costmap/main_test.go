package main

import (
	"strings"
	"testing"

	"github.com/ROBOTIS-move/navigation2/internal/httputil"
)

func TestRun_Entire(t *testing.T) {
	m := httputil.NewMockHTTPClient().AddResponse(200, `{"status":"cleared"}`)

	*op = "entire"
	if err := run(m); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	req := m.Request(0)
	if req == nil || !strings.HasSuffix(req.URL.Path, "/clear_entirely") {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRun_Except(t *testing.T) {
	m := httputil.NewMockHTTPClient().AddResponse(200, `{"status":"cleared"}`)

	*op = "except"
	*resetDistance = 2.5
	if err := run(m); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	req := m.Request(0)
	if req == nil || !strings.HasSuffix(req.URL.Path, "/clear_except_region") {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRun_ServerError(t *testing.T) {
	m := httputil.NewMockHTTPClient().AddResponse(503, `{"error":"robot pose unavailable"}`)

	*op = "entire"
	err := run(m)
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected a 503 error, got %v", err)
	}
}

func TestRun_UnknownOp(t *testing.T) {
	*op = "sideways"
	if err := run(httputil.NewMockHTTPClient()); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}
