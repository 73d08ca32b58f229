package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shinyyama/spool-backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		RepoRoot:      root,
		CatalogDir:    filepath.Join(root, "App", "public"),
		MaxUploadSize: "1K",
		AllowOrigins:  []string{"*"},
		GitSHA:        "abc123",
	}
}

func TestHealth(t *testing.T) {
	s := New(testConfig(t), nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["git_sha"] != "abc123" {
		t.Fatalf("body=%v", body)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestCORSPreflight(t *testing.T) {
	s := New(testConfig(t), nil)
	req := httptest.NewRequest(http.MethodOptions, "/contrib/spool", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin=%q", got)
	}
}

func TestContributeThroughServer(t *testing.T) {
	s := New(testConfig(t), nil)
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("brand", "Prusament")
	_ = w.WriteField("type", "PETG")
	part, _ := w.CreateFormFile("image", "photo.JPG")
	_, _ = part.Write([]byte("PNGDATA"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/contrib/spool", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var res struct {
		ID       string `json:"id"`
		JSONPath string `json:"json_path"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ID != "prusament-petg" || res.JSONPath != "App/public/spools/prusament-petg.json" {
		t.Fatalf("res=%+v", res)
	}
}

func TestBodyLimit(t *testing.T) {
	s := New(testConfig(t), nil)
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("brand", "A")
	_ = w.WriteField("type", "B")
	part, _ := w.CreateFormFile("image", "big.png")
	_, _ = part.Write(bytes.Repeat([]byte("x"), 4096))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/contrib/spool", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d", rec.Code)
	}
}
