package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newsletter/pkg/controller"
)

func TestPprofMux_Index(t *testing.T) {
	mux := controller.PprofMux()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Result().StatusCode)
	}
}

func TestPprofMux_Cmdline(t *testing.T) {
	mux := controller.PprofMux()

	req := httptest.NewRequest(http.MethodGet, "/cmdline", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from pprof cmdline, got %d", rec.Result().StatusCode)
	}
}
