package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/deft/lang"
)

// Translate parses deft source and writes the resolved constants as an
// ordered JSON object.
type Translate struct {
	Indent int    `       default:"0" help:"Indent width for JSON output"        short:"i"`
	Output string `       default:"-" help:"Output file or '-' for stdout"       short:"o"              type:"path"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the translate command.
func (t *Translate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, closeIn, err := input(ctx, t.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", t.Source))
	}
	defer closeIn()

	env, err := lang.ParseReader(ctx, in)
	if err != nil {
		return ErrTranslate.Wrap(err).
			With(slog.String("source", t.Source))
	}

	out, closeOut, err := output(t.Output)
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", t.Output))
	}
	defer closeOut()

	err = env.FormatJSON(ctx, out, t.Indent)
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", t.Output))
	}

	return nil
}
