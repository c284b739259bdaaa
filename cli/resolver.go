package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/deft/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the deft language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The deft structure is converted as follows:
//   - The constant named by name must be a struct; its fields become a flat
//     configuration map
//   - Deft identifiers contain no hyphens, so flag names are matched with
//     hyphens stripped (e.g., flag "log-level" matches field "loglevel")
//   - Integer values are passed to Kong as decimal strings
//   - Text values are passed verbatim; booleans are the texts 'true'/'false'
//   - Nested structs are converted to nested maps
//
// Example deft config file:
//
//	(def config struct {
//	  loglevel = 'debug',
//	  logformat = 'json',
//	  logpretty = 'true',
//	});
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		// Translate the config file (cached after first read)
		env, err := lang.ParseReader(ctx, r)
		if err != nil {
			// Translation error - return empty config
			return config{}, nil
		}

		val, ok := env.Lookup(name)
		if !ok {
			// Constant not found - return empty config
			return config{}, nil
		}

		if val.Type != lang.TypeRecord {
			// Not a struct - return empty config
			return config{}, nil
		}

		return config(recordToMap(val.Record)), nil
	}
}

// config implements [kong.Resolver] for deft language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already translated successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but deft identifiers
	// cannot contain them. Try the verbatim name, then the stripped form.
	name := flag.Name
	strippedName := strings.ReplaceAll(name, "-", "")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strippedName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// recordToMap converts a Record to a native map representation suitable for
// flag resolution.
func recordToMap(rec *lang.Record) map[string]any {
	result := make(map[string]any, rec.Len())

	for name, val := range rec.All() {
		switch val.Type {
		case lang.TypeInteger:
			// Kong requires numbers as strings for parsing
			result[name] = strconv.FormatInt(val.Int, 10)

		case lang.TypeText:
			result[name] = val.Text

		case lang.TypeRecord:
			result[name] = recordToMap(val.Record)
		}
	}

	return result
}
