package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseString_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  *Value
	}{
		{
			name:  "integer",
			input: "(def answer 42);",
			key:   "answer",
			want:  NewInteger(42),
		},
		{
			name:  "zero",
			input: "(def zero 0);",
			key:   "zero",
			want:  NewInteger(0),
		},
		{
			name:  "negative integer",
			input: "(def delta -7);",
			key:   "delta",
			want:  NewInteger(-7),
		},
		{
			name:  "positive sign",
			input: "(def offset +5);",
			key:   "offset",
			want:  NewInteger(5),
		},
		{
			name:  "text",
			input: "(def host 'localhost');",
			key:   "host",
			want:  NewText("localhost"),
		},
		{
			name:  "empty text",
			input: "(def blank '');",
			key:   "blank",
			want:  NewText(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			got, ok := env.Lookup(tt.key)
			if !ok {
				t.Fatalf("constant %q not defined", tt.key)
			}

			if got.Type != tt.want.Type ||
				got.Int != tt.want.Int ||
				got.Text != tt.want.Text {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseString_Records(t *testing.T) {
	input := `(def server struct {
		host = 'localhost',
		port = 8080,
		tls = struct { enabled = 1 },
	});`

	env, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	val, ok := env.Lookup("server")
	if !ok {
		t.Fatal("constant server not defined")
	}

	if val.Type != TypeRecord {
		t.Fatalf("expected record, got %v", val.Type)
	}

	names := val.Record.Names()
	want := []string{"host", "port", "tls"}

	if len(names) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, names)
	}

	for i := range names {
		if names[i] != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	tls, _ := val.Record.Get("tls")
	if tls.Type != TypeRecord {
		t.Fatalf("expected nested record, got %v", tls.Type)
	}

	enabled, ok := tls.Record.Get("enabled")
	if !ok || enabled.Int != 1 {
		t.Errorf("expected tls.enabled = 1, got %+v", enabled)
	}
}

func TestParseString_EmptyRecord(t *testing.T) {
	env, err := ParseString(context.Background(), "(def empty struct {});")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	val, _ := env.Lookup("empty")
	if val.Type != TypeRecord || val.Record.Len() != 0 {
		t.Errorf("expected empty record, got %+v", val)
	}
}

func TestParseString_Redefinition(t *testing.T) {
	// Last write wins, silently.
	env, err := ParseString(context.Background(), "(def a 1); (def a 2);")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if env.Len() != 1 {
		t.Fatalf("expected 1 constant, got %d", env.Len())
	}

	val, _ := env.Lookup("a")
	if val.Int != 2 {
		t.Errorf("expected a = 2, got %d", val.Int)
	}
}

func TestParseString_References(t *testing.T) {
	input := `
		(def base 100);
		(def copy .(base).);
		(def wrapped struct { inner = .(base). });
	`

	env, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	cp, _ := env.Lookup("copy")
	if cp.Int != 100 {
		t.Errorf("expected copy = 100, got %d", cp.Int)
	}

	wrapped, _ := env.Lookup("wrapped")

	inner, ok := wrapped.Record.Get("inner")
	if !ok || inner.Int != 100 {
		t.Errorf("expected wrapped.inner = 100, got %+v", inner)
	}
}

func TestParseString_ReferenceIsCopy(t *testing.T) {
	// Substitution copies the value at reference time. Redefining the
	// source afterward must not change constants already translated.
	input := `
		(def a struct { x = 1 });
		(def b .(a).);
		(def a struct { x = 2 });
	`

	env, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, _ := env.Lookup("b")

	x, _ := b.Record.Get("x")
	if x.Int != 1 {
		t.Errorf("expected b.x = 1 after redefining a, got %d", x.Int)
	}

	a, _ := env.Lookup("a")

	x, _ = a.Record.Get("x")
	if x.Int != 2 {
		t.Errorf("expected a.x = 2, got %d", x.Int)
	}
}

func TestParseString_ForwardReference(t *testing.T) {
	// "later" is defined after the reference, which is an error: names
	// resolve against statements already processed.
	input := "(def early .(later).);\n(def later 1);"

	_, err := ParseString(context.Background(), input)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}

	if pe.Msg != `undefined constant "later"` {
		t.Errorf("unexpected message %q", pe.Msg)
	}

	// The error points at the identifier inside the reference.
	if pe.Pos != 13 {
		t.Errorf("expected position 13, got %d", pe.Pos)
	}
}

func TestParseString_GrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "missing def keyword",
			input:   "(x 1);",
			wantMsg: `expected keyword, got identifier "x"`,
		},
		{
			name:    "missing semicolon",
			input:   "(def a 1)",
			wantMsg: `expected symbol, got end of input`,
		},
		{
			name:    "missing closing paren",
			input:   "(def a 1;",
			wantMsg: `expected ")", got symbol ";"`,
		},
		{
			name:    "keyword as value",
			input:   "(def a def);",
			wantMsg: `expected a value (number, text, struct, or reference), got keyword "def"`,
		},
		{
			name:    "bare statement body",
			input:   "def a 1;",
			wantMsg: `expected symbol, got keyword "def"`,
		},
		{
			name:    "missing field value",
			input:   "(def a struct { x = });",
			wantMsg: `expected a value (number, text, struct, or reference), got symbol "}"`,
		},
		{
			name:    "missing field separator",
			input:   "(def a struct { x = 1 y = 2 });",
			wantMsg: `expected symbol, got identifier "y"`,
		},
		{
			name:    "unclosed reference",
			input:   "(def a .(b);",
			wantMsg: `expected ".", got symbol ";"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			pe := &ParseError{}
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}

			if pe.Msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, pe.Msg)
			}
		})
	}
}

func TestParseString_NumberOutOfRange(t *testing.T) {
	_, err := ParseString(context.Background(),
		"(def big 99999999999999999999);")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}

	if !strings.Contains(pe.Msg, "out of range") {
		t.Errorf("unexpected message %q", pe.Msg)
	}
}

func TestParseString_MaxDepth(t *testing.T) {
	var sb strings.Builder

	sb.WriteString("(def deep ")
	for range 5 {
		sb.WriteString("struct { x = ")
	}
	sb.WriteString("1")
	for range 5 {
		sb.WriteString(" }")
	}
	sb.WriteString(");")

	input := sb.String()

	if _, err := ParseString(context.Background(), input); err != nil {
		t.Fatalf("parse error within default depth: %v", err)
	}

	_, err := ParseString(context.Background(), input, WithMaxDepth(3))
	if err == nil {
		t.Fatal("expected depth error, got nil")
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}

	if pe.Msg != "maximum record depth exceeded (3)" {
		t.Errorf("unexpected message %q", pe.Msg)
	}
}

func TestParseString_OrderPreserved(t *testing.T) {
	env, err := ParseString(context.Background(),
		"(def z 1); (def a 2); (def m 3);")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	names := env.Names()
	want := []string{"z", "a", "m"}

	for i := range want {
		if names[i] != want[i] {
			t.Errorf("constant %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestParseString_CommentsBetweenStatements(t *testing.T) {
	input := `
		REM first section
		(def a 1);
		--[[ a block of
		     commentary ]]
		(def b 2); REM trailing
	`

	env, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if env.Len() != 2 {
		t.Errorf("expected 2 constants, got %d", env.Len())
	}
}

func TestParseError_SourceSnippet(t *testing.T) {
	_, err := ParseString(context.Background(), "(def b .(missing).);")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	msg := err.Error()
	if !strings.Contains(msg, "line 1, column 10") {
		t.Errorf("expected line/column in message, got %q", msg)
	}

	if !strings.Contains(msg, "^") {
		t.Errorf("expected caret marker in message, got %q", msg)
	}
}
