// Package model defines the declarative form model shared by the registry,
// the visibility/validation engine and the renderers. A Field describes one
// input (type, label, options, rule set and an optional visibility condition);
// Value is a tagged variant holding either a scalar string or a set of
// strings, chosen by the field type. Values and Errors are the flat maps keyed
// by field name that flow between the engine and the rendering layer.
package model
