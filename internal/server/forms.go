package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Form actions carried by the hidden _action input.
const (
	actionChange = "change"
	actionSubmit = "submit"
	actionReset  = "reset"
)

func (s *Server) showForm(c echo.Context) error {
	key := c.Param("key")
	sess, err := s.formSession(key, c.QueryParam("session"))
	if err != nil {
		return httpError(err)
	}
	return s.renderForm(c, http.StatusOK, render.FromSession(sess))
}

func (s *Server) postForm(c echo.Context) error {
	key := c.Param("key")
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body").SetInternal(err)
	}
	sess, err := s.formSession(key, form.Get(render.SessionField))
	if err != nil {
		return httpError(err)
	}

	action := formAction(form)
	if action == actionReset {
		sess.Reset()
		return s.renderForm(c, http.StatusOK, render.FromSession(sess))
	}

	if err := applyForm(sess, form); err != nil {
		return httpError(err)
	}
	if action == actionChange {
		return s.renderForm(c, http.StatusOK, render.FromSession(sess))
	}

	result := sess.Submit()
	s.logSubmission(sess.ID(), result)
	status := http.StatusOK
	if !result.OK() {
		status = http.StatusUnprocessableEntity
	}
	return s.renderForm(c, status, render.FromSession(sess).WithResult(result))
}

// formSession resumes the session id when it exists and belongs to key;
// anything else opens a fresh session.
func (s *Server) formSession(key, id string) (*session.Session, error) {
	if id != "" {
		sess, err := s.store.Get(id)
		if err == nil {
			if sess.Schema().Key == key {
				return sess, nil
			}
			if err := sess.Switch(key); err != nil {
				return nil, err
			}
			return sess, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
	}
	return s.store.Create(key)
}

// formAction returns the last posted action so a clicked button wins over
// the hidden default.
func formAction(form url.Values) string {
	actions := form[render.ActionField]
	if len(actions) == 0 {
		return actionSubmit
	}
	switch action := actions[len(actions)-1]; action {
	case actionChange, actionReset:
		return action
	default:
		return actionSubmit
	}
}

// applyForm feeds the posted values of the fields that were rendered (the
// ones visible before the post) through the session in declaration order.
// A field hidden by an earlier change is skipped.
func applyForm(sess *session.Session, form url.Values) error {
	for _, field := range sess.VisibleFields() {
		if !isVisible(sess, field.Name) {
			continue
		}
		value := postedValue(field, form)
		if value.Equal(sess.Value(field.Name)) {
			continue
		}
		if _, err := sess.Change(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// postedValue decodes one field from a form post. Unchecked checkboxes post
// nothing and become an empty set; blank text and placeholder selections
// become absent.
func postedValue(field model.Field, form url.Values) model.Value {
	posted, ok := form[field.Name]
	if field.Type.Multi() {
		items := make([]string, 0, len(posted))
		for _, item := range posted {
			if item != "" {
				items = append(items, item)
			}
		}
		return model.Multi(items...)
	}
	if !ok || len(posted) == 0 || posted[0] == "" {
		return model.Value{}
	}
	return model.Scalar(posted[0])
}

func isVisible(sess *session.Session, name string) bool {
	for _, field := range sess.VisibleFields() {
		if field.Name == name {
			return true
		}
	}
	return false
}

func (s *Server) renderForm(c echo.Context, status int, view render.View) error {
	key := view.Schema.Key
	opts := render.RenderOptions{
		Action:     formURL(key),
		ChangeURL:  formURL(key),
		Schemas:    s.schemaLinks(key),
		ShowSchema: s.showSchema,
	}
	out, contentType, err := s.renderers.Render(c.Request().Context(), html.Name, view, opts)
	if err != nil {
		return err
	}
	return c.Blob(status, contentType, out)
}

func (s *Server) schemaLinks(active string) []render.SchemaLink {
	keys := s.reg.Keys()
	if len(keys) < 2 {
		return nil
	}
	links := make([]render.SchemaLink, 0, len(keys))
	for _, key := range keys {
		sch, err := s.reg.Get(key)
		if err != nil {
			continue
		}
		links = append(links, render.SchemaLink{
			Key:    key,
			Title:  sch.Title,
			URL:    formURL(key),
			Active: key == active,
		})
	}
	return links
}

func (s *Server) logSubmission(id string, result validation.Result) {
	if result.OK() {
		s.logger.Printf("submit %s session=%s accepted (%d fields)", result.Schema, id, len(result.Payload))
		return
	}
	s.logger.Printf("submit %s session=%s rejected (%d errors)", result.Schema, id, result.Errors.Count())
}
