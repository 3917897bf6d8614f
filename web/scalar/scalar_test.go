package scalar_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/doc-convert/pkg/module"
	"github.com/JaimeStill/doc-convert/web/scalar"
)

func TestNewModule(t *testing.T) {
	router := module.NewRouter()
	router.Mount(scalar.NewModule("/scalar", "/api/openapi.json"))

	for _, path := range []string{"/scalar", "/scalar/"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			resp := w.Result()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if !strings.Contains(string(body), `data-url="/api/openapi.json"`) {
				t.Error("page does not reference the OpenAPI document")
			}
		})
	}
}

func TestNewModule_UnknownPath(t *testing.T) {
	router := module.NewRouter()
	router.Mount(scalar.NewModule("/scalar", "/api/openapi.json"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scalar/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
