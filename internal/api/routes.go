package api

import (
	"net/http"

	"github.com/JaimeStill/doc-convert/internal/config"
	"github.com/JaimeStill/doc-convert/internal/conversions"
	"github.com/JaimeStill/doc-convert/pkg/openapi"
	"github.com/JaimeStill/doc-convert/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	conversionsHandler := conversions.NewHandler(
		domain.Conversions,
		runtime.Storage,
		runtime.MaxUploadSize,
		runtime.Logger,
	)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		conversionsHandler.Routes(),
	)
}
