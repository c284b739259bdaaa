package lang

import "strconv"

// Kind identifies the lexical class of a scanned token.
type Kind int

const (
	// KindEOF marks the end of the token stream. A single EOF token,
	// positioned at the input length, terminates every scan.
	KindEOF Kind = iota

	// KindIdentifier is a letter followed by zero or more letters or
	// digits, excluding the reserved words.
	KindIdentifier

	// KindKeyword is an identifier matching one of the reserved words
	// "def" or "struct".
	KindKeyword

	// KindNumber is a signed decimal integer literal.
	KindNumber

	// KindText is the body of a single-quoted text literal, copied
	// verbatim with no escape processing.
	KindText

	// KindSymbol is one of the single-character tokens { } ( ) = , ; .
	KindSymbol
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIdentifier:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of deft source text.
//
// Pos is the zero-based rune offset of the token's first character in the
// source. It exists only for error reporting; the grammar never consults it.
type Token struct {
	Kind Kind
	Lit  string
	Pos  int
}

// String renders the token for use in error messages.
func (t Token) String() string {
	if t.Kind == KindEOF {
		return t.Kind.String()
	}

	return t.Kind.String() + " " + strconv.Quote(t.Lit)
}

// keywords holds the reserved words of the language.
var keywords = map[string]struct{}{
	"def":    {},
	"struct": {},
}

// lookupIdent classifies a scanned word as keyword or identifier.
func lookupIdent(lit string) Kind {
	if _, ok := keywords[lit]; ok {
		return KindKeyword
	}

	return KindIdentifier
}
