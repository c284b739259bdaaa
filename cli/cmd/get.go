package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/deft/lang"
)

// Get retrieves a single resolved constant from a deft source and prints its
// value as JSON.
type Get struct {
	Name   string `arg:""             help:"Constant name to retrieve"                    name:"name"`
	Indent int    `       default:"0" help:"Indent width for JSON output"                 short:"i"`
	Source string `       default:"-" help:"Source input file or '-' for default stdin."  short:"f"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, closeIn, err := input(ctx, g.Source)
	if err != nil {
		return ErrReadSource.Wrap(err).
			With(slog.String("source", g.Source))
	}
	defer closeIn()

	val, err := lang.NewStream(in).GetConstant(ctx, g.Name)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "get"),
				slog.String("constant", g.Name),
			)
	}

	var data []byte
	if g.Indent > 0 {
		data, err = json.MarshalIndent(val, "", strings.Repeat(" ", g.Indent))
	} else {
		data, err = json.Marshal(val)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("constant", g.Name))
	}

	_, err = fmt.Fprintln(os.Stdout, string(data))

	return err
}
