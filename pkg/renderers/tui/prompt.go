package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func (r *Renderer) ask(ctx context.Context, field model.Field, current model.Value) (model.Value, error) {
	switch field.Type {
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return r.askChoice(ctx, field, current)
	case model.FieldTypeCheckbox:
		return r.askMulti(ctx, field, current)
	default:
		return r.askText(ctx, field, current)
	}
}

func (r *Renderer) askText(ctx context.Context, field model.Field, current model.Value) (model.Value, error) {
	cfg := InputConfig{
		Message: field.DisplayLabel(),
		Default: current.Text(),
		Help:    promptHelp(field),
	}
	if r.inline {
		cfg.Validator = func(answer string) error {
			if msgs := validation.Field(field, textValue(answer)); len(msgs) > 0 {
				return errors.New(msgs[0])
			}
			return nil
		}
	}
	answer, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return model.Value{}, err
	}
	return textValue(answer), nil
}

func (r *Renderer) askChoice(ctx context.Context, field model.Field, current model.Value) (model.Value, error) {
	options := choices(field)
	if len(options) == 0 {
		return model.Value{}, nil
	}
	labels := optionLabels(options)
	cfg := SelectConfig{
		Message:      field.DisplayLabel(),
		Options:      labels,
		DefaultIndex: -1,
		Help:         promptHelp(field),
	}
	if current.Kind() == model.KindScalar {
		cfg.DefaultIndex = indexOf(optionValues(options), current.Text())
	}
	idx, err := r.driver.Select(ctx, cfg)
	if err != nil {
		return model.Value{}, err
	}
	if idx < 0 || idx >= len(options) {
		return model.Value{}, nil
	}
	return model.Scalar(options[idx].Value), nil
}

func (r *Renderer) askMulti(ctx context.Context, field model.Field, current model.Value) (model.Value, error) {
	options := choices(field)
	cfg := SelectConfig{
		Message:  field.DisplayLabel(),
		Options:  optionLabels(options),
		Defaults: indicesOf(optionValues(options), current.Items()),
		Help:     promptHelp(field),
	}
	picked, err := r.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return model.Value{}, err
	}
	values := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			values = append(values, options[idx].Value)
		}
	}
	return model.Multi(values...), nil
}

// choices drops placeholder options (empty value); choosing one is the same
// as answering nothing.
func choices(field model.Field) []model.Option {
	out := make([]model.Option, 0, len(field.Options))
	for _, opt := range field.Options {
		if opt.Value != "" {
			out = append(out, opt)
		}
	}
	return out
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
		if out[i] == "" {
			out[i] = opt.Value
		}
	}
	return out
}

func optionValues(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}

func promptHelp(field model.Field) string {
	if field.Help != "" {
		return field.Help
	}
	return field.Placeholder
}

// textValue maps a blank answer to an absent value.
func textValue(answer string) model.Value {
	if answer == "" {
		return model.Value{}
	}
	return model.Scalar(answer)
}
