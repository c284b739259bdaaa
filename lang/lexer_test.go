package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Token{{Kind: KindEOF, Pos: 0}},
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  []Token{{Kind: KindEOF, Pos: 4}},
		},
		{
			name:  "symbols",
			input: "{}()=,;.",
			want: []Token{
				{Kind: KindSymbol, Lit: "{", Pos: 0},
				{Kind: KindSymbol, Lit: "}", Pos: 1},
				{Kind: KindSymbol, Lit: "(", Pos: 2},
				{Kind: KindSymbol, Lit: ")", Pos: 3},
				{Kind: KindSymbol, Lit: "=", Pos: 4},
				{Kind: KindSymbol, Lit: ",", Pos: 5},
				{Kind: KindSymbol, Lit: ";", Pos: 6},
				{Kind: KindSymbol, Lit: ".", Pos: 7},
				{Kind: KindEOF, Pos: 8},
			},
		},
		{
			name:  "keywords and identifiers",
			input: "def struct define structural",
			want: []Token{
				{Kind: KindKeyword, Lit: "def", Pos: 0},
				{Kind: KindKeyword, Lit: "struct", Pos: 4},
				{Kind: KindIdentifier, Lit: "define", Pos: 11},
				{Kind: KindIdentifier, Lit: "structural", Pos: 18},
				{Kind: KindEOF, Pos: 28},
			},
		},
		{
			name:  "numbers",
			input: "0 42 -7 +5",
			want: []Token{
				{Kind: KindNumber, Lit: "0", Pos: 0},
				{Kind: KindNumber, Lit: "42", Pos: 2},
				{Kind: KindNumber, Lit: "-7", Pos: 5},
				{Kind: KindNumber, Lit: "+5", Pos: 8},
				{Kind: KindEOF, Pos: 10},
			},
		},
		{
			name:  "text literal",
			input: "'hello world'",
			want: []Token{
				{Kind: KindText, Lit: "hello world", Pos: 0},
				{Kind: KindEOF, Pos: 13},
			},
		},
		{
			name:  "empty text literal",
			input: "''",
			want: []Token{
				{Kind: KindText, Lit: "", Pos: 0},
				{Kind: KindEOF, Pos: 2},
			},
		},
		{
			name:  "text with backslash kept verbatim",
			input: `'a\nb'`,
			want: []Token{
				{Kind: KindText, Lit: `a\nb`, Pos: 0},
				{Kind: KindEOF, Pos: 6},
			},
		},
		{
			name:  "full statement",
			input: "(def answer 42);",
			want: []Token{
				{Kind: KindSymbol, Lit: "(", Pos: 0},
				{Kind: KindKeyword, Lit: "def", Pos: 1},
				{Kind: KindIdentifier, Lit: "answer", Pos: 5},
				{Kind: KindNumber, Lit: "42", Pos: 12},
				{Kind: KindSymbol, Lit: ")", Pos: 14},
				{Kind: KindSymbol, Lit: ";", Pos: 15},
				{Kind: KindEOF, Pos: 16},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLexer(tt.input).Tokens()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v",
					len(tt.want), len(got), got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %+v, got %+v",
						i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestLexer_LineComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string // expected token literals, excluding EOF
	}{
		{
			name:  "comment at start of input",
			input: "REM ignore this\nx",
			want:  []string{"x"},
		},
		{
			name:  "comment after whitespace",
			input: "x REM trailing comment\ny",
			want:  []string{"x", "y"},
		},
		{
			name:  "comment after semicolon",
			input: ";REM no space needed\nx",
			want:  []string{";", "x"},
		},
		{
			name:  "comment after closing brace",
			input: "}REM comment\nx",
			want:  []string{"}", "x"},
		},
		{
			name:  "not a comment after equals sign",
			input: "x=REM\ny",
			want:  []string{"x", "=", "REM", "y"},
		},
		{
			name:  "comment runs to end of input",
			input: "x REM no trailing newline",
			want:  []string{"x"},
		},
		{
			name:  "longer word starting with the marker",
			input: "x REMARK still a comment\ny",
			want:  []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := NewLexer(tt.input).Tokens()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got []string
			for _, tok := range toks {
				if tok.Kind != KindEOF {
					got = append(got, tok.Lit)
				}
			}

			if len(got) != len(tt.want) {
				t.Fatalf("expected literals %v, got %v", tt.want, got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("literal %d: expected %q, got %q",
						i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestLexer_BlockComments(t *testing.T) {
	toks, err := NewLexer("x --[[ skip\nme ]] y").Tokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}

	if toks[0].Lit != "x" || toks[1].Lit != "y" {
		t.Errorf("expected x and y, got %v", toks)
	}
}

func TestLexer_BlockCommentsDoNotNest(t *testing.T) {
	// The first terminator closes the comment; the rest is source text.
	toks, err := NewLexer("--[[ a --[[ b ]] x").Tokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(toks) != 2 || toks[0].Lit != "x" {
		t.Fatalf("expected single token x, got %v", toks)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		wantPos int
	}{
		{
			name:    "unterminated block comment",
			input:   "x --[[ never closed",
			wantMsg: "unterminated block comment",
			wantPos: 2,
		},
		{
			name:    "unterminated text literal",
			input:   "(def s 'oops",
			wantMsg: "unterminated text literal",
			wantPos: 7,
		},
		{
			name:    "newline in text literal",
			input:   "'line\nbreak'",
			wantMsg: "unterminated text literal (newline in body)",
			wantPos: 0,
		},
		{
			name:    "leading zero",
			input:   "007",
			wantMsg: `bad number format "007"`,
			wantPos: 0,
		},
		{
			name:    "leading zero with sign",
			input:   "-01",
			wantMsg: `bad number format "-01"`,
			wantPos: 0,
		},
		{
			name:    "sign without digit",
			input:   "-x",
			wantMsg: "expected digit after sign",
			wantPos: 0,
		},
		{
			name:    "double sign",
			input:   "--5",
			wantMsg: "expected digit after sign",
			wantPos: 0,
		},
		{
			name:    "sign at end of input",
			input:   "+",
			wantMsg: "expected digit after sign",
			wantPos: 0,
		},
		{
			name:    "unknown character",
			input:   "x @ y",
			wantMsg: "unknown character '@'",
			wantPos: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokens()
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			le := &LexError{}
			if !errors.As(err, &le) {
				t.Fatalf("expected *LexError, got %T: %v", err, err)
			}

			if le.Msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, le.Msg)
			}

			if le.Pos != tt.wantPos {
				t.Errorf("expected position %d, got %d", tt.wantPos, le.Pos)
			}
		})
	}
}

func TestLexer_ZeroIsValid(t *testing.T) {
	toks, err := NewLexer("0").Tokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if toks[0].Kind != KindNumber || toks[0].Lit != "0" {
		t.Errorf("expected number 0, got %v", toks[0])
	}
}

func TestLexError_SourceSnippet(t *testing.T) {
	input := "(def x 'oops"

	_, err := NewLexer(input).Tokens()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	le := &LexError{}
	if !errors.As(err, &le) {
		t.Fatalf("expected *LexError, got %T", err)
	}

	le.Source = input

	msg := le.Error()
	if !strings.Contains(msg, "line 1, column 8") {
		t.Errorf("expected line/column in message, got %q", msg)
	}

	if !strings.Contains(msg, "^") {
		t.Errorf("expected caret marker in message, got %q", msg)
	}
}
