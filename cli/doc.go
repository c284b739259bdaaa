// Package cli contains the command line interface for deft.
//
// # Usage
//
// The default command translates deft source to JSON:
//
//	deft input.deft
//	cat input.deft | deft
//
// Subcommands cover formatting and retrieval:
//
//	deft fmt native input.deft   # reformat in deft syntax
//	deft fmt yaml input.deft     # render as YAML
//	deft get port -f input.deft  # print one resolved constant
//	deft init                    # write a default config file
//
// Multiple inputs can be concatenated with repeated --source flags; the
// language's last-write-wins rule lets later files override constants from
// earlier ones.
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// config files written in the deft language itself and converts them to Kong
// flag values. Flag names are matched against field identifiers with hyphens
// stripped, since deft identifiers are strictly alphanumeric.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/deft/pprof)
package cli
