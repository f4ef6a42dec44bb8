// Package apidocs builds the OpenAPI description served at /api-docs from
// the router's ordered route table.
package apidocs

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Endpoint is the documented contract of a single route.
type Endpoint struct {
	Method  string
	Path    string
	Summary string
	// Request and Response name a schema in Schemas; a "[]" suffix means an array of it.
	Request  string
	Response string
	Query    []string
	Success  int
	Errors   []int
}

// Schemas are the named payload shapes endpoints may reference.
func Schemas() openapi3.Schemas {
	item := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithRequired([]string{"id", "name"})

	return openapi3.Schemas{
		"Item": openapi3.NewSchemaRef("", item),
		"User": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("username", openapi3.NewStringSchema()).
			WithProperty("email", openapi3.NewStringSchema()).
			WithProperty("createdAt", openapi3.NewDateTimeSchema()).
			WithRequired([]string{"id", "username", "email", "createdAt"})),
		"NewItem": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema()).
			WithRequired([]string{"name"})),
		"NewUser": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("username", openapi3.NewStringSchema()).
			WithProperty("email", openapi3.NewStringSchema()).
			WithRequired([]string{"username", "email"})),
		"ItemUpdate": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("name", openapi3.NewStringSchema()).
			WithRequired([]string{"id"})),
		"Status": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("status", openapi3.NewStringSchema()).
			WithProperty("timestamp", openapi3.NewDateTimeSchema())),
		"Count": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("count", openapi3.NewIntegerSchema())),
		"Message": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("message", openapi3.NewStringSchema())),
		"BulkResult": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("message", openapi3.NewStringSchema()).
			WithPropertyRef("added", openapi3.NewSchemaRef("", &openapi3.Schema{
				Type:  &openapi3.Types{openapi3.TypeArray},
				Items: openapi3.NewSchemaRef(ref("Item"), item),
			}))),
	}
}

// Build assembles and validates the document for endpoints.
func Build(ctx context.Context, title, version string, endpoints []Endpoint) (*openapi3.T, error) {
	schemas := Schemas()
	doc := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}

	for _, ep := range endpoints {
		path, params := convertPath(ep.Path)
		op := &openapi3.Operation{
			Summary:    ep.Summary,
			Parameters: params,
			Responses:  openapi3.NewResponsesWithCapacity(len(ep.Errors) + 1),
		}
		for _, q := range ep.Query {
			op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
				Value: openapi3.NewQueryParameter(q).WithRequired(true).WithSchema(openapi3.NewStringSchema()),
			})
		}
		if ep.Request != "" {
			body, err := schemaFor(schemas, ep.Request)
			if err != nil {
				return nil, fmt.Errorf("%s %s request: %w", ep.Method, ep.Path, err)
			}
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
			}
		}

		success := ep.Success
		if success == 0 {
			success = http.StatusOK
		}
		resp := openapi3.NewResponse().WithDescription(http.StatusText(success))
		if ep.Response != "" {
			schema, err := schemaFor(schemas, ep.Response)
			if err != nil {
				return nil, fmt.Errorf("%s %s response: %w", ep.Method, ep.Path, err)
			}
			resp = resp.WithJSONSchemaRef(schema)
		}
		op.Responses.Set(strconv.Itoa(success), &openapi3.ResponseRef{Value: resp})

		for _, code := range ep.Errors {
			text := openapi3.NewResponse().
				WithDescription(http.StatusText(code)).
				WithContent(openapi3.Content{"text/plain": openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema())})
			op.Responses.Set(strconv.Itoa(code), &openapi3.ResponseRef{Value: text})
		}

		doc.AddOperation(path, strings.ToUpper(ep.Method), op)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api description: %w", err)
	}
	return doc, nil
}

func ref(name string) string {
	return "#/components/schemas/" + name
}

func schemaFor(schemas openapi3.Schemas, name string) (*openapi3.SchemaRef, error) {
	elem, isArray := strings.CutSuffix(name, "[]")
	named, ok := schemas[elem]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", elem)
	}
	target := openapi3.NewSchemaRef(ref(elem), named.Value)
	if !isArray {
		return target, nil
	}
	return openapi3.NewSchemaRef("", &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: target,
	}), nil
}

// convertPath rewrites ":id" segments to "{id}" and returns them as path parameters.
func convertPath(path string) (string, openapi3.Parameters) {
	segments := strings.Split(path, "/")
	var params openapi3.Parameters
	for i, seg := range segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segments[i] = "{" + name + "}"
			params = append(params, &openapi3.ParameterRef{
				Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewIntegerSchema()),
			})
		}
	}
	return strings.Join(segments, "/"), params
}
