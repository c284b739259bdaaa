package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/deft/lang"
)

// Fmt reads deft input, translates it, and renders it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native deft syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native formats input as native deft syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, closeIn, err := input(ctx, f.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", f.Source))
	}
	defer closeIn()

	env, err := lang.ParseReader(ctx, in)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "native"))
	}

	return env.Format(ctx, os.Stdout, f.Indent)
}

// JSON reads input, translates it, and outputs as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, closeIn, err := input(ctx, j.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", j.Source))
	}
	defer closeIn()

	env, err := lang.ParseReader(ctx, in)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	return env.FormatJSON(ctx, os.Stdout, j.Indent)
}

// YAML reads input, translates it, and outputs as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, closeIn, err := input(ctx, y.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", y.Source))
	}
	defer closeIn()

	env, err := lang.ParseReader(ctx, in)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return env.FormatYAML(ctx, os.Stdout, y.Indent)
}
