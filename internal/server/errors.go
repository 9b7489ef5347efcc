package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/session"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrSchemaNotFound), errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknownField), errors.Is(err, session.ErrValueKind), errors.Is(err, model.ErrUnsupportedValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// httpError converts err into an echo.HTTPError carrying its message.
func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(statusFor(err), err.Error()).SetInternal(err)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = httpError(err).(*echo.HTTPError)
	}
	if he.Code >= http.StatusInternalServerError {
		s.logger.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	message := he.Message
	if text, ok := message.(string); ok {
		message = map[string]string{"message": text}
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, message)
	}
	if err != nil {
		s.logger.Printf("write error response: %v", err)
	}
}
