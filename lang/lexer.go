package lang

import (
	"strconv"
	"unicode"
)

// lineComment begins a comment running to end of line, but only when the
// immediately preceding character is whitespace, start of input, or one of
// the delimiter characters in boundaryChars.
const lineComment = "REM"

// blockComment delimits a non-nesting multi-line comment.
const (
	blockCommentOpen  = "--[["
	blockCommentClose = "]]"
)

// boundaryChars is the exact set of delimiters that permit a line comment to
// start after them. The set is a quirk of the language and is deliberately
// not generalized; note that '=' is absent.
const boundaryChars = "{}();,."

// symbolChars is the set of single-character symbol tokens.
const symbolChars = "{}()=,;."

// Lexer converts deft source text into a flat token slice.
//
// The full token sequence is materialized before parsing begins; there is no
// streaming between the lexer and the parser. Positions are zero-based rune
// offsets into the source.
type Lexer struct {
	src []rune
	pos int
}

// NewLexer creates a Lexer over the given source text.
func NewLexer(input string) *Lexer {
	return &Lexer{src: []rune(input)}
}

// Tokens scans the entire input and returns its token sequence terminated by
// a single EOF token positioned at the input length. The first malformed
// element aborts the scan with a *LexError; no partial sequence is returned.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token

	if err := l.skip(); err != nil {
		return nil, err
	}

	for l.pos < len(l.src) {
		var (
			tok Token
			err error
		)

		ch := l.src[l.pos]
		pos := l.pos

		switch {
		case unicode.IsLetter(ch):
			lit := l.takeWhile(isAlnum)
			tok = Token{Kind: lookupIdent(lit), Lit: lit, Pos: pos}

		case ch == '+' || ch == '-' || isDigit(ch):
			tok, err = l.number(pos)

		case ch == '\'':
			tok, err = l.text(pos)

		case isSymbol(ch):
			l.pos++
			tok = Token{Kind: KindSymbol, Lit: string(ch), Pos: pos}

		default:
			err = &LexError{
				Msg: "unknown character " + strconv.QuoteRune(ch),
				Pos: pos,
			}
		}

		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if err := l.skip(); err != nil {
			return nil, err
		}
	}

	return append(toks, Token{Kind: KindEOF, Pos: len(l.src)}), nil
}

// skip consumes whitespace and comments between tokens.
func (l *Lexer) skip() error {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		if unicode.IsSpace(ch) {
			l.pos++

			continue
		}

		// Line comment: runs to end of line (exclusive), and only starts
		// after a boundary character or whitespace or at start of input.
		if l.hasPrefix(lineComment) && l.boundaryBefore() {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}

			continue
		}

		// Block comment: not nested, the first terminator ends it.
		if l.hasPrefix(blockCommentOpen) {
			start := l.pos
			l.pos += len(blockCommentOpen)

			end := l.find(blockCommentClose)
			if end < 0 {
				return &LexError{Msg: "unterminated block comment", Pos: start}
			}

			l.pos = end + len(blockCommentClose)

			continue
		}

		break
	}

	return nil
}

// number scans an integer literal with an optional single leading sign.
func (l *Lexer) number(pos int) (Token, error) {
	var sign string

	if ch := l.src[l.pos]; ch == '+' || ch == '-' {
		sign = string(ch)
		l.pos++

		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			return Token{}, &LexError{Msg: "expected digit after sign", Pos: pos}
		}
	}

	digits := l.takeWhile(isDigit)

	// "0" is valid; any longer numeral must not start with zero.
	if len(digits) > 1 && digits[0] == '0' {
		return Token{}, &LexError{
			Msg: "bad number format " + strconv.Quote(sign+digits),
			Pos: pos,
		}
	}

	return Token{Kind: KindNumber, Lit: sign + digits, Pos: pos}, nil
}

// text scans a single-quoted text literal. The body is copied verbatim with
// no escape processing; a literal newline or end of input inside the body is
// an error.
func (l *Lexer) text(pos int) (Token, error) {
	l.pos++ // opening quote
	start := l.pos

	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		if l.src[l.pos] == '\n' {
			return Token{}, &LexError{
				Msg: "unterminated text literal (newline in body)",
				Pos: pos,
			}
		}

		l.pos++
	}

	if l.pos >= len(l.src) {
		return Token{}, &LexError{Msg: "unterminated text literal", Pos: pos}
	}

	lit := string(l.src[start:l.pos])
	l.pos++ // closing quote

	return Token{Kind: KindText, Lit: lit, Pos: pos}, nil
}

// takeWhile consumes and returns the maximal run of characters satisfying
// the predicate, starting at the current position.
func (l *Lexer) takeWhile(pred func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.src) && pred(l.src[l.pos]) {
		l.pos++
	}

	return string(l.src[start:l.pos])
}

// hasPrefix reports whether the source at the current position starts with s.
func (l *Lexer) hasPrefix(s string) bool {
	r := []rune(s)
	if l.pos+len(r) > len(l.src) {
		return false
	}

	for i, c := range r {
		if l.src[l.pos+i] != c {
			return false
		}
	}

	return true
}

// find returns the index of the first occurrence of s at or after the
// current position, or -1 if not found.
func (l *Lexer) find(s string) int {
	r := []rune(s)

	for i := l.pos; i+len(r) <= len(l.src); i++ {
		match := true

		for j, c := range r {
			if l.src[i+j] != c {
				match = false

				break
			}
		}

		if match {
			return i
		}
	}

	return -1
}

// boundaryBefore reports whether a line comment may start at the current
// position: at start of input, or after whitespace or a boundary character.
func (l *Lexer) boundaryBefore() bool {
	if l.pos == 0 {
		return true
	}

	prev := l.src[l.pos-1]
	if unicode.IsSpace(prev) {
		return true
	}

	for _, c := range boundaryChars {
		if prev == c {
			return true
		}
	}

	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isSymbol(ch rune) bool {
	for _, c := range symbolChars {
		if ch == c {
			return true
		}
	}

	return false
}
