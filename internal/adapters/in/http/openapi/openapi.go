// Package openapi embeds the API description, validates it with kin-openapi
// and publishes it to swag so echo-swagger can serve the UI.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var specYAML []byte

// Document is a loaded and validated API description.
type Document struct {
	spec *openapi3.T
	json []byte
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &Document{spec: spec, json: raw}, nil
}

// JSON is the document as served at /openapi.json.
func (d *Document) JSON() []byte {
	return d.json
}

// ReadDoc implements swag.Swagger.
func (d *Document) ReadDoc() string {
	return string(d.json)
}

// HasPath reports whether path is described, e.g. "/orders/{id}".
func (d *Document) HasPath(path string) bool {
	return d.spec.Paths.Value(path) != nil
}

var registerOnce sync.Once

// Register publishes d under swag.Name. swag panics on a second registration,
// so only the first document registered in a process is used.
func Register(d *Document) {
	registerOnce.Do(func() {
		swag.Register(swag.Name, d)
	})
}
