package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/doc-convert/pkg/handlers"
	"github.com/JaimeStill/doc-convert/pkg/logging"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
	}{
		{"client error", http.StatusBadRequest, errors.New("No file uploaded")},
		{"server error", http.StatusInternalServerError, errors.New("Error merging PDFs: boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			handlers.RespondError(w, logging.Discard(), tt.status, tt.err)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.err.Error() {
				t.Errorf("body = %q, want %q", body, tt.err.Error())
			}

			if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("Content-Type = %q, want text/plain", ct)
			}
		})
	}
}

func TestRespondFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := os.WriteFile(path, []byte("%PDF-content"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	req := httptest.NewRequest(http.MethodPost, "/convert", nil)
	w := httptest.NewRecorder()

	handlers.RespondFile(w, req, f, "my scan.pdf", "application/pdf")

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="my scan.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "%PDF-content" {
		t.Errorf("body = %q, want file content", body)
	}
}
