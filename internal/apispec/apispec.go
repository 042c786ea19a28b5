// Package apispec embeds the OpenAPI contract of the HTTP API.
package apispec

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var raw []byte

// Raw returns the contract as written (YAML).
func Raw() []byte {
	return append([]byte(nil), raw...)
}

// Load parses and validates the contract.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}
	return doc, nil
}

// JSON returns the validated contract encoded as JSON.
func JSON(ctx context.Context) ([]byte, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("apispec: encode: %w", err)
	}
	return out, nil
}

// Route is one documented operation.
type Route struct {
	Method      string
	Path        string
	OperationID string
}

// Routes lists the documented operations sorted by path and method.
func Routes(doc *openapi3.T) []Route {
	var out []Route
	if doc == nil || doc.Paths == nil {
		return out
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			out = append(out, Route{Method: method, Path: path, OperationID: op.OperationID})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
