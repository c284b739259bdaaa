package lang

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format writes the environment in native deft syntax to the writer.
// With indent > 0, records are written one field per line with a trailing
// comma for easier editing; with indent 0, everything stays on one line.
// The output parses back to an equivalent environment.
func (env *Environment) Format(
	ctx context.Context,
	w io.Writer,
	indent int,
) error {
	for name, val := range env.All() {
		if _, err := fmt.Fprint(w, "(def ", name, " "); err != nil {
			return err
		}

		if err := formatValue(ctx, val, w, indent, 0); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, ");"); err != nil {
			return err
		}
	}

	return nil
}

// formatValue formats a value based on its type.
func formatValue(
	ctx context.Context,
	v *Value,
	w io.Writer,
	indent, depth int,
) error {
	switch v.Type {
	case TypeInteger:
		_, err := fmt.Fprint(w, strconv.FormatInt(v.Int, 10))

		return err

	case TypeText:
		_, err := fmt.Fprint(w, "'", v.Text, "'")

		return err

	case TypeRecord:
		return formatRecord(ctx, v.Record, w, indent, depth)

	default:
		_, err := fmt.Fprint(w, "<unknown>")

		return err
	}
}

// formatRecord formats a record as a struct literal.
func formatRecord(
	ctx context.Context,
	r *Record,
	w io.Writer,
	indent, depth int,
) error {
	if r.Len() == 0 {
		_, err := fmt.Fprint(w, "struct {}")

		return err
	}

	if _, err := fmt.Fprint(w, "struct {"); err != nil {
		return err
	}

	if indent > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	i := 0

	for name, val := range r.All() {
		pad := " "
		if indent > 0 {
			pad = strings.Repeat(" ", (depth+1)*indent)
		}

		if _, err := fmt.Fprint(w, pad); err != nil {
			return err
		}

		if _, err := fmt.Fprint(w, name, " = "); err != nil {
			return err
		}

		if err := formatValue(ctx, val, w, indent, depth+1); err != nil {
			return err
		}

		if indent > 0 {
			// Always add comma for easier editing
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		} else if i < r.Len()-1 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}

		i++
	}

	if indent > 0 {
		pad := strings.Repeat(" ", depth*indent)
		_, err := fmt.Fprint(w, pad, "}")

		return err
	}

	_, err := fmt.Fprint(w, " }")

	return err
}
