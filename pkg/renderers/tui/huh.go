package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type huhDriver struct {
	theme *huh.Theme
	out   io.Writer
}

// NewHuhDriver returns a driver backed by charmbracelet/huh forms. A nil
// theme selects HuhTheme; Info messages go to out (stdout when nil).
func NewHuhDriver(theme *huh.Theme, out io.Writer) PromptDriver {
	if theme == nil {
		theme = HuhTheme()
	}
	if out == nil {
		out = os.Stdout
	}
	return &huhDriver{theme: theme, out: out}
}

// HuhTheme is the default theme for huh prompts.
func HuhTheme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

func (d *huhDriver) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).WithTheme(d.theme).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func (d *huhDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	out := cfg.Default
	input := huh.NewInput().
		Title(cfg.Message).
		Description(cfg.Help).
		Value(&out)
	if cfg.Validator != nil {
		input = input.Validate(cfg.Validator)
	}
	if err := d.run(ctx, input); err != nil {
		return "", err
	}
	return out, nil
}

func (d *huhDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	out := cfg.Default
	confirm := huh.NewConfirm().
		Title(cfg.Message).
		Description(cfg.Help).
		Affirmative("Yes").
		Negative("No").
		Value(&out)
	if err := d.run(ctx, confirm); err != nil {
		return false, err
	}
	return out, nil
}

func (d *huhDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	out := cfg.DefaultIndex
	if out < 0 || out >= len(cfg.Options) {
		out = 0
	}
	sel := huh.NewSelect[int]().
		Title(cfg.Message).
		Description(cfg.Help).
		Options(indexedOptions(cfg.Options)...).
		Value(&out)
	if cfg.PageSize > 0 {
		sel = sel.Height(cfg.PageSize + 2)
	}
	if err := d.run(ctx, sel); err != nil {
		return 0, err
	}
	return out, nil
}

func (d *huhDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	out := append([]int(nil), cfg.Defaults...)
	sel := huh.NewMultiSelect[int]().
		Title(cfg.Message).
		Description(cfg.Help).
		Options(indexedOptions(cfg.Options)...).
		Value(&out)
	if cfg.PageSize > 0 {
		sel = sel.Height(cfg.PageSize + 2)
	}
	if err := d.run(ctx, sel); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *huhDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// indexedOptions keys options by position so duplicate labels stay distinct.
func indexedOptions(labels []string) []huh.Option[int] {
	out := make([]huh.Option[int], len(labels))
	for i, label := range labels {
		if label == "" {
			label = strconv.Itoa(i)
		}
		out[i] = huh.NewOption(label, i)
	}
	return out
}
