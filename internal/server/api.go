package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
)

type createRequest struct {
	Schema string       `json:"schema"`
	Values model.Values `json:"values,omitempty"`
}

type changeRequest struct {
	Field string      `json:"field"`
	Value model.Value `json:"value"`
}

type switchRequest struct {
	Schema string `json:"schema"`
}

// submitResponse is the body of both accepted and rejected submissions.
type submitResponse struct {
	Schema  string         `json:"schema"`
	OK      bool           `json:"ok"`
	Payload map[string]any `json:"payload,omitempty"`
	Errors  model.Errors   `json:"errors,omitempty"`
}

func newSubmitResponse(result validation.Result) (int, submitResponse) {
	if result.OK() {
		return http.StatusOK, submitResponse{Schema: result.Schema, OK: true, Payload: result.Data()}
	}
	return http.StatusUnprocessableEntity, submitResponse{Schema: result.Schema, Errors: result.Errors}
}

// submitForm validates a complete value map without keeping a session.
func (s *Server) submitForm(c echo.Context) error {
	var values model.Values
	if err := c.Bind(&values); err != nil {
		return err
	}
	sess, err := session.New(s.reg, c.Param("key"), session.WithValues(values))
	if err != nil {
		return httpError(err)
	}
	result := sess.Submit()
	s.logSubmission("-", result)
	return c.JSON(newSubmitResponse(result))
}

func (s *Server) createSession(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Schema == "" {
		req.Schema = s.defaultKey
	}
	var opts []session.Option
	if len(req.Values) > 0 {
		opts = append(opts, session.WithValues(req.Values))
	}
	sess, err := s.store.Create(req.Schema, opts...)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sess.Snapshot())
}

func (s *Server) lookup(c echo.Context) (*session.Session, error) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		return nil, httpError(err)
	}
	return sess, nil
}

func (s *Server) getSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) deleteSession(c echo.Context) error {
	if _, err := s.lookup(c); err != nil {
		return err
	}
	s.store.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) changeSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	var req changeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Field == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field is required")
	}
	update, err := sess.Change(req.Field, req.Value)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, update)
}

func (s *Server) submitSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	result := sess.Submit()
	s.logSubmission(sess.ID(), result)
	return c.JSON(newSubmitResponse(result))
}

func (s *Server) resetSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	sess.Reset()
	return c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) switchSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	var req switchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := sess.Switch(req.Schema); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess.Snapshot())
}

// viewSession renders the session with a registered renderer, html unless
// the format query parameter names another.
func (s *Server) viewSession(c echo.Context) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	format := c.QueryParam("format")
	if format == "" {
		format = "html"
	}
	view := render.FromSession(sess)
	key := view.Schema.Key
	out, contentType, err := s.renderers.Render(c.Request().Context(), format, view, render.RenderOptions{
		Action:    formURL(key),
		ChangeURL: formURL(key),
	})
	if errors.Is(err, render.ErrUnknownFormat) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, out)
}
