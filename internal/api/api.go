// Package api assembles the conversion API module: domain systems, routes,
// the OpenAPI document, and the module middleware chain.
package api

import (
	"net/http"

	"github.com/JaimeStill/doc-convert/internal/config"
	"github.com/JaimeStill/doc-convert/internal/infrastructure"
	"github.com/JaimeStill/doc-convert/pkg/middleware"
	"github.com/JaimeStill/doc-convert/pkg/module"
	"github.com/JaimeStill/doc-convert/pkg/openapi"
)

// NewModule creates the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.RateLimit(&cfg.API.RateLimit))

	return m, nil
}
