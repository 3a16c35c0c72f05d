// Package api holds the OpenAPI description of the gateway's HTTP surface.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// DocName is the key the document is registered under in the swag registry.
const DocName = "bitnob-gateway"

//go:embed openapi.yaml
var openAPISpec []byte

type registeredDoc struct{}

func (registeredDoc) ReadDoc() string {
	return string(openAPISpec)
}

func init() {
	swag.Register(DocName, registeredDoc{})
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return doc, nil
}

// DocHandler serves the registered document as YAML.
func DocHandler(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(DocName)
	if err != nil {
		http.Error(w, "document not registered", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
