package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formflow/pkg/openapi"
)

type schemaSummary struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Fields int    `json:"fields"`
	URL    string `json:"url"`
}

func (s *Server) listSchemas(c echo.Context) error {
	keys := s.reg.Keys()
	out := make([]schemaSummary, 0, len(keys))
	for _, key := range keys {
		sch, err := s.reg.Get(key)
		if err != nil {
			return httpError(err)
		}
		out = append(out, schemaSummary{Key: key, Title: sch.Title, Fields: len(sch.Fields), URL: formURL(key)})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getSchema(c echo.Context) error {
	sch, err := s.reg.Get(c.Param("key"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sch)
}

func (s *Server) schemaOpenAPI(c echo.Context) error {
	doc, err := openapi.Document(s.reg, s.info, c.Param("key"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) openAPI(c echo.Context) error {
	doc, err := openapi.Document(s.reg, s.info)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}
