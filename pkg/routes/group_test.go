package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/doc-convert/pkg/openapi"
	"github.com/JaimeStill/doc-convert/pkg/routes"
)

func writer(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestGroup_AddToSpec_InheritsTags(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	group := routes.Group{
		Tags: []string{"Conversions"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/convert", Handler: writer(""), OpenAPI: &openapi.Operation{Summary: "Convert"}},
			{Method: "POST", Pattern: "/hidden", Handler: writer("")},
		},
	}

	group.AddToSpec("/api", spec)

	item := spec.Paths["/api/convert"]
	if item == nil || item.Post == nil {
		t.Fatal("POST /api/convert not added to spec")
	}
	if len(item.Post.Tags) != 1 || item.Post.Tags[0] != "Conversions" {
		t.Errorf("Tags = %v, want [Conversions]", item.Post.Tags)
	}
	if _, ok := spec.Paths["/api/hidden"]; ok {
		t.Error("undocumented route added to spec")
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Test API", "1.0.0")

	routes.Register(mux, "/api", spec,
		routes.Group{
			Prefix: "/docs",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/merge", Handler: writer("merge"), OpenAPI: &openapi.Operation{}},
			},
			Children: []routes.Group{
				{
					Prefix: "/v2",
					Routes: []routes.Route{
						{Method: "GET", Pattern: "/split", Handler: writer("split"), OpenAPI: &openapi.Operation{}},
					},
				},
			},
		},
	)

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodPost, "/docs/merge", http.StatusOK, "merge"},
		{http.MethodGet, "/docs/v2/split", http.StatusOK, "split"},
		{http.MethodGet, "/docs/merge", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}

	if spec.Paths["/api/docs/merge"] == nil {
		t.Error("spec missing /api/docs/merge")
	}
	if spec.Paths["/api/docs/v2/split"] == nil {
		t.Error("spec missing /api/docs/v2/split")
	}
}
