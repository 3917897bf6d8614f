// Package scalar serves the interactive API reference rendered by Scalar.
// The page is embedded at compile time and points at the served OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/doc-convert/pkg/module"
	"github.com/JaimeStill/doc-convert/pkg/routes"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Handler renders the API reference page for the document at specURL.
func Handler(specURL string) http.HandlerFunc {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, struct{ SpecURL string }{specURL}); err != nil {
		panic(err)
	}
	page := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}
}

// Routes returns the route group for the reference page.
func Routes(specURL string) routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: Handler(specURL)},
		},
	}
}

// NewModule mounts the reference page at prefix.
func NewModule(prefix, specURL string) *module.Module {
	mux := http.NewServeMux()
	routes.Register(mux, prefix, nil, Routes(specURL))
	return module.New(prefix, mux)
}
