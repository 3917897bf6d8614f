package main

import (
	"net/http"

	"github.com/JaimeStill/doc-convert/internal/api"
	"github.com/JaimeStill/doc-convert/internal/config"
	"github.com/JaimeStill/doc-convert/internal/infrastructure"
	"github.com/JaimeStill/doc-convert/pkg/module"
	"github.com/JaimeStill/doc-convert/web/scalar"
)

// Modules holds the prefix-mounted handlers of the service.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

// NewModules builds the API module and the API reference module.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Scalar: scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json"),
	}, nil
}

// Mount registers every module with the router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
