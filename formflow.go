// Package formflow is the top-level entry point: a registry of declarative
// form schemas, sessions that track visibility and validation as values
// change, and renderers for the browser and the terminal.
package formflow

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/schemas"
)

// Schema is a named form definition.
type Schema = schema.Schema

// Field describes one form field.
type Field = model.Field

// Value is a field value: absent, a scalar or a set.
type Value = model.Value

// Values maps field names to values.
type Values = model.Values

// Errors maps field names to ordered messages.
type Errors = model.Errors

// Session owns the state of one form being filled.
type Session = session.Session

// Update is the outcome of a single change.
type Update = session.Update

// Result is the outcome of a submission.
type Result = validation.Result

// RenderOptions describes per-request rendering hints such as the form
// action and the schema switcher links.
type RenderOptions = render.RenderOptions

// Scalar builds a single value.
func Scalar(s string) Value { return model.Scalar(s) }

// Multi builds a set value.
func Multi(items ...string) Value { return model.Multi(items...) }

// DefaultRegistry returns a sealed registry with the built-in employee and
// survey schemas.
func DefaultRegistry() *registry.Registry {
	return schemas.Default()
}

// NewSession opens a session on key, seeding it with values when given.
func NewSession(reg *registry.Registry, key string, values Values) (*Session, error) {
	var opts []session.Option
	if len(values) > 0 {
		opts = append(opts, session.WithValues(values))
	}
	return session.New(reg, key, opts...)
}

// Submit applies values to a fresh session on key and submits it. Values of
// fields that end up hidden never reach the payload.
func Submit(reg *registry.Registry, key string, values Values) (Result, error) {
	sess, err := NewSession(reg, key, values)
	if err != nil {
		return Result{}, err
	}
	return sess.Submit(), nil
}

// RenderHTML renders the current state of sess as an HTML page using the
// embedded templates.
func RenderHTML(ctx context.Context, sess *Session, opts RenderOptions, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.FromSession(sess), opts)
}
