package api

import (
	"github.com/JaimeStill/doc-convert/internal/config"
	"github.com/JaimeStill/doc-convert/internal/conversions"
	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/internal/images"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Images      *images.Converter
	Documents   documents.System
	Conversions conversions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	imagesSys := images.NewConverter(&cfg.Conversion, runtime.Logger)
	documentsSys := documents.New(runtime.Logger)

	return &Domain{
		Images:      imagesSys,
		Documents:   documentsSys,
		Conversions: conversions.New(imagesSys, documentsSys, runtime.Logger),
	}
}
