// Package routes groups HTTP handlers with their OpenAPI operations and
// registers them on a ServeMux using method-qualified patterns.
package routes

import (
	"net/http"

	"github.com/JaimeStill/doc-convert/pkg/openapi"
)

// Route binds a handler to a method and pattern, with optional API documentation.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds every route of the groups to mux and documents them in spec
// under basePath. The mux patterns omit basePath because modules strip it.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}

// AddToSpec documents the group's routes in spec under basePath.
// Operations without tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(basePath+g.Prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		child.AddToSpec(basePath+g.Prefix, spec)
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, route := range g.Routes {
		path := prefix + route.Pattern
		if path == "" {
			path = "/"
		}
		mux.HandleFunc(route.Method+" "+path, route.Handler)
	}

	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
