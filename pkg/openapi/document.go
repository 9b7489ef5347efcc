package openapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/registry"
)

// Version is the OpenAPI version emitted by Document.
const Version = "3.0.3"

// ValidationErrorsSchema names the component describing a rejected
// submission.
const ValidationErrorsSchema = "ValidationErrors"

// Info carries document metadata.
type Info struct {
	Title   string
	Version string
	// BasePath prefixes the generated submission paths.
	BasePath string
}

// SubmitPath returns the submission path documented for a schema key.
func (i Info) SubmitPath(key string) string {
	return i.BasePath + "/forms/" + key + "/submit"
}

// Document builds an OpenAPI document covering the schemas registered under
// keys, or every schema when keys is empty.
func Document(reg *registry.Registry, info Info, keys ...string) (*openapi3.T, error) {
	if reg == nil {
		return nil, fmt.Errorf("openapi: registry is required")
	}
	if info.Title == "" {
		info.Title = "formflow"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	if len(keys) == 0 {
		keys = reg.Keys()
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info:    &openapi3.Info{Title: info.Title, Version: info.Version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ValidationErrorsSchema: openapi3.NewSchemaRef("", validationErrors()),
			},
		},
	}

	for _, key := range keys {
		s, err := reg.Get(key)
		if err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		doc.Components.Schemas[s.Key] = openapi3.NewSchemaRef("", Schema(s))

		payload := &openapi3.SchemaRef{Ref: "#/components/schemas/" + s.Key}
		accepted := openapi3.NewObjectSchema().
			WithProperty("schema", openapi3.NewStringSchema()).
			WithPropertyRef("payload", payload)
		rejected := &openapi3.SchemaRef{Ref: "#/components/schemas/" + ValidationErrorsSchema}

		op := &openapi3.Operation{
			OperationID: "submit_" + s.Key,
			Summary:     "Submit " + s.Title,
			Tags:        []string{"forms"},
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(payload),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Accepted payload").WithJSONSchema(accepted),
				}),
				openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Rejected submission").WithJSONSchemaRef(rejected),
				}),
			),
		}
		doc.Paths.Set(info.SubmitPath(s.Key), &openapi3.PathItem{Post: op})
	}
	return doc, nil
}

// Validate checks the document with kin-openapi.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: validate: %w", err)
	}
	return nil
}

func validationErrors() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	out := openapi3.NewObjectSchema().
		WithProperty("schema", openapi3.NewStringSchema()).
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(messages))
	out.Required = []string{"errors"}
	return out
}
