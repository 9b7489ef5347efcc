package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Fill prompts for every visible field of sess in declaration order, then
// submits. Fields revealed by an answer are asked as the walk reaches them.
// A field whose answer carries advisory messages is asked again, up to the
// attempt limit. A rejected submission prints the aggregate messages and,
// once the user confirms, asks only the fields named in them (plus any field
// that became visible) before submitting again.
func (r *Renderer) Fill(ctx context.Context, sess *session.Session) (validation.Result, error) {
	if sess == nil {
		return validation.Result{}, ErrNoSession
	}
	if err := r.info(ctx, r.theme.InfoPrefix+sess.Schema().Title); err != nil {
		return validation.Result{}, err
	}

	var retry map[string]bool
	for round := 1; ; round++ {
		if err := r.walk(ctx, sess, retry); err != nil {
			return validation.Result{}, err
		}

		result := sess.Submit()
		if result.OK() {
			return result, nil
		}
		if err := r.reportErrors(ctx, sess, result.Errors); err != nil {
			return result, err
		}
		if round >= r.maxRounds {
			return result, result.Err()
		}
		again, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Review the fields with errors?",
			Default: true,
		})
		if err != nil {
			return result, err
		}
		if !again {
			return result, result.Err()
		}
		retry = make(map[string]bool, len(result.Errors))
		for _, name := range result.Errors.Fields() {
			retry[name] = true
		}
	}
}

// Run fills sess and renders the outcome.
func (r *Renderer) Run(ctx context.Context, sess *session.Session) ([]byte, validation.Result, error) {
	result, err := r.Fill(ctx, sess)
	var rejected *validation.SubmissionError
	if err != nil && !errors.As(err, &rejected) {
		return nil, result, err
	}
	out, renderErr := r.Render(ctx, render.FromSession(sess).WithResult(result), render.RenderOptions{})
	if renderErr != nil {
		return nil, result, renderErr
	}
	return out, result, err
}

func (r *Renderer) walk(ctx context.Context, sess *session.Session, retry map[string]bool) error {
	before := visibleNames(sess)
	for _, field := range sess.Schema().Fields {
		if !visibleNames(sess)[field.Name] {
			continue
		}
		if retry != nil && before[field.Name] && !retry[field.Name] {
			continue
		}
		if err := r.promptField(ctx, sess, field); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, sess *session.Session, field model.Field) error {
	for attempt := 1; ; attempt++ {
		value, err := r.ask(ctx, field, sess.Value(field.Name))
		if err != nil {
			return err
		}
		update, err := sess.Change(field.Name, value)
		if err != nil {
			return err
		}
		msgs := update.Errors.For(field.Name)
		if len(msgs) == 0 || attempt >= r.maxAttempts {
			return nil
		}
		for _, msg := range msgs {
			if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
	}
}

func (r *Renderer) reportErrors(ctx context.Context, sess *session.Session, errs model.Errors) error {
	s := sess.Schema()
	mapping := render.MapErrors(s, errs)
	for _, field := range s.Fields {
		for _, msg := range mapping.Fields.For(field.Name) {
			if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
	}
	for _, msg := range mapping.Form {
		if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func visibleNames(sess *session.Session) map[string]bool {
	fields := sess.VisibleFields()
	out := make(map[string]bool, len(fields))
	for _, field := range fields {
		out[field.Name] = true
	}
	return out
}
