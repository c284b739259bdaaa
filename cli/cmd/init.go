package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/deft/lang"
	"github.com/ardnew/deft/log"
	"github.com/ardnew/deft/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	env := i.buildEnvironment(ctx)

	err = env.Format(ctx, file, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildEnvironment constructs the config constant from current flag values.
// The result holds a single record named by ConfigIdentifier whose fields
// mirror the CLI flags, with hyphens stripped to form valid deft identifiers.
func (i *Init) buildEnvironment(ctx context.Context) *lang.Environment {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	rec := &lang.Record{}

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := i.flagValue(ctx, flag.Name)
		if val != nil {
			rec.Set(strings.ReplaceAll(flag.Name, "-", ""), val)
		}
	}

	env := lang.NewEnvironment()
	env.Define(ConfigIdentifier, lang.NewRecord(rec))

	return env
}

// flagValue returns the deft value for a CLI flag, or nil if unset or not
// representable. The language has no boolean or float types, so those are
// rendered as text.
func (i *Init) flagValue(ctx context.Context, name string) *lang.Value {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return nil
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool:
		return lang.NewText(strconv.FormatBool(v))

	case string:
		if v == "" {
			return nil
		}

		return lang.NewText(v)

	case int:
		return lang.NewInteger(int64(v))

	case int64:
		return lang.NewInteger(v)

	case uint:
		return lang.NewInteger(int64(v))

	case uint64:
		return lang.NewInteger(int64(v))

	case fmt.Stringer:
		if v.String() == "" {
			return nil
		}

		return lang.NewText(v.String())

	default:
		s := fmt.Sprint(v)
		if s == "" || s == "[]" {
			return nil
		}

		return lang.NewText(s)
	}
}
