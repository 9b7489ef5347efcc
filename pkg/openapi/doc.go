// Package openapi exports form schemas as OpenAPI 3 documents using
// kin-openapi. Each schema becomes a component describing its accepted
// payload, and a POST operation per form documents the submission endpoint
// served by the HTTP server.
package openapi
