package lang

import (
	"context"
	"testing"
	"unicode/utf8"
)

// FuzzLexer tests the lexer with random inputs to find edge cases.
func FuzzLexer(f *testing.F) {
	// Seed corpus with known valid inputs
	f.Add("(def a 1);")
	f.Add("(def s 'text');")
	f.Add("(def r struct { x = 1, y = 'z', });")
	f.Add("REM comment\n")
	f.Add("--[[ block ]]")
	f.Add("-42 +7 0")
	f.Add(".(name).")
	f.Add("''")

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// Lexer should not panic on any input
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("lexer panicked on input %q: %v", input, r)
			}
		}()

		toks, err := NewLexer(input).Tokens()
		if err != nil {
			return
		}

		// A successful scan always ends with a single EOF token.
		if len(toks) == 0 || toks[len(toks)-1].Kind != KindEOF {
			t.Errorf("token sequence not EOF-terminated for %q", input)
		}
	})
}

// FuzzParseString tests the full translation pipeline with random inputs.
func FuzzParseString(f *testing.F) {
	f.Add("(def a 1);")
	f.Add("(def a 1); (def b .(a).);")
	f.Add("(def s struct { x = struct { y = 1 } });")
	f.Add("(def a 1); (def a 2);")
	f.Add("(def e struct {});")
	f.Add("REM only a comment")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", input, r)
			}
		}()

		env, err := ParseString(context.Background(), input)
		if err != nil {
			return
		}

		// Whatever parses must also serialize.
		for _, indent := range []int{0, 2} {
			var sink discard
			if err := env.FormatJSON(context.Background(), &sink, indent); err != nil {
				t.Errorf("marshal failed for %q: %v", input, err)
			}
		}
	})
}

// discard is an io.Writer that swallows all output.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
