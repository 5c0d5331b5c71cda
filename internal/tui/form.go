package tui

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"pullrefresh/internal/config"

	"github.com/charmbracelet/huh"
)

// ConfigForm asks for the settings written by the init command.
type ConfigForm struct {
	input      io.Reader
	accessible bool
}

func NewConfigForm() *ConfigForm {
	return &ConfigForm{}
}

// WithInput reads answers from r in accessible mode, one per line.
func (f *ConfigForm) WithInput(r io.Reader) *ConfigForm {
	f.input = r
	f.accessible = true
	return f
}

// Collect fills cfg from the answers. Current values are offered as defaults.
func (f *ConfigForm) Collect(cfg *config.Config) error {
	command := cfg.Source.Command
	threshold := strconv.FormatFloat(cfg.Refresh.Threshold, 'f', -1, 64)
	pageSize := strconv.Itoa(cfg.Source.PageSize)
	spinnerName := cfg.Animator.Spinner
	footer := cfg.Footer.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Command to show").
				Placeholder(command).
				Value(&command).
				Validate(required("command")),
			huh.NewInput().
				Title("Pull distance to refresh (rows)").
				Value(&threshold).
				Validate(positiveFloat),
			huh.NewInput().
				Title("Lines per page").
				Value(&pageSize).
				Validate(positiveInt),
			huh.NewInput().
				Title("Spinner ("+strings.Join(config.Spinners, ", ")+")").
				Value(&spinnerName).
				Validate(knownSpinner),
			huh.NewConfirm().
				Title("Load more when scrolling past the end?").
				Value(&footer),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if f.input != nil {
		form = form.WithInput(f.input)
	}
	if f.accessible {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	cfg.Source.Command = strings.TrimSpace(command)
	cfg.Refresh.Threshold, _ = strconv.ParseFloat(strings.TrimSpace(threshold), 64)
	cfg.Source.PageSize, _ = strconv.Atoi(strings.TrimSpace(pageSize))
	cfg.Animator.Spinner = strings.TrimSpace(spinnerName)
	cfg.Footer.Enabled = footer

	return cfg.Validate()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func positiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a number greater than zero")
	}
	return nil
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("enter a whole number greater than zero")
	}
	return nil
}

func knownSpinner(s string) error {
	if !slices.Contains(config.Spinners, strings.TrimSpace(s)) {
		return fmt.Errorf("unknown spinner %q", s)
	}
	return nil
}
