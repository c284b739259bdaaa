package lang

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/deft/log"
)

// DefaultMaxDepth is the default maximum nesting depth for records.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// Option configures parser behavior.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth for records.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser is the fused parser and resolver.
//
// It consumes the token sequence by recursive descent with single-token
// lookahead, evaluating each value eagerly as its syntax is consumed and
// resolving references against the environment built so far. There is no
// AST and no deferred evaluation stage: a grammar rule returns a fully
// resolved Value directly.
type Parser struct {
	toks     []Token
	pos      int
	env      *Environment
	depth    int
	maxDepth int
	logger   log.Logger
}

// NewParser creates a parser over the given token sequence.
func NewParser(toks []Token, opts ...Option) *Parser {
	p := &Parser{
		toks:     toks,
		env:      NewEnvironment(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ParseString translates deft source text into its resolved environment.
// The first lexical or grammatical error aborts the whole translation; the
// returned error carries the source so its message can point at the offense.
func ParseString(
	ctx context.Context,
	input string,
	opts ...Option,
) (*Environment, error) {
	toks, err := NewLexer(input).Tokens()
	if err != nil {
		attachSource(err, input)

		return nil, err
	}

	p := NewParser(toks, opts...)

	p.logger.TraceContext(
		ctx,
		"lexer complete",
		slog.Int("token_count", len(toks)),
		slog.Int("source_length", len(input)),
	)

	env, err := p.Program(ctx)
	if err != nil {
		attachSource(err, input)

		return nil, err
	}

	return env, nil
}

// Program consumes statements until end of input and returns the final
// environment.
//
//	Program := Statement* EOF
func (p *Parser) Program(ctx context.Context) (*Environment, error) {
	for p.peek().Kind != KindEOF {
		if err := p.statement(ctx); err != nil {
			return nil, err
		}
	}

	p.logger.TraceContext(
		ctx,
		"program parsed",
		slog.Int("constant_count", p.env.Len()),
	)

	return p.env, nil
}

// statement parses one constant definition and binds its eagerly evaluated
// value into the environment.
//
//	Statement := '(' 'def' Identifier Value ')' ';'
func (p *Parser) statement(ctx context.Context) error {
	if _, err := p.eat(KindSymbol, "("); err != nil {
		return err
	}

	if _, err := p.eat(KindKeyword, "def"); err != nil {
		return err
	}

	name, err := p.eat(KindIdentifier, "")
	if err != nil {
		return err
	}

	val, err := p.value(ctx)
	if err != nil {
		return err
	}

	if _, err := p.eat(KindSymbol, ")"); err != nil {
		return err
	}

	if _, err := p.eat(KindSymbol, ";"); err != nil {
		return err
	}

	// Last write wins; no uniqueness constraint is enforced.
	p.env.Define(name.Lit, val)

	p.logger.TraceContext(
		ctx,
		"constant defined",
		slog.String("name", name.Lit),
		slog.String("type", val.Type.String()),
	)

	return nil
}

// value parses any value expression. The syntactic class is determined by a
// single token of lookahead; there is no backtracking.
//
//	Value := Number | Text | Struct | ConstRef
func (p *Parser) value(ctx context.Context) (*Value, error) {
	tok := p.peek()

	switch {
	case tok.Kind == KindNumber:
		p.next()

		n, err := strconv.ParseInt(tok.Lit, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Msg: "number out of range " + strconv.Quote(tok.Lit),
				Pos: tok.Pos,
			}
		}

		return NewInteger(n), nil

	case tok.Kind == KindText:
		p.next()

		return NewText(tok.Lit), nil

	case tok.Kind == KindKeyword && tok.Lit == "struct":
		return p.record(ctx)

	case tok.Kind == KindSymbol && tok.Lit == ".":
		return p.reference(ctx)

	default:
		return nil, &ParseError{
			Msg: "expected a value (number, text, struct, or reference), got " +
				tok.String(),
			Pos: tok.Pos,
		}
	}
}

// record parses a struct literal. An empty field list and a trailing comma
// are both permitted; field order is preserved as written.
//
//	Struct := 'struct' '{' [ Field (',' Field)* [','] ] '}'
//	Field  := Identifier '=' Value
func (p *Parser) record(ctx context.Context) (*Value, error) {
	open, err := p.eat(KindKeyword, "struct")
	if err != nil {
		return nil, err
	}

	if p.depth >= p.maxDepth {
		return nil, &ParseError{
			Msg: "maximum record depth exceeded (" +
				strconv.Itoa(p.maxDepth) + ")",
			Pos: open.Pos,
		}
	}

	p.depth++
	defer func() { p.depth-- }()

	if _, err := p.eat(KindSymbol, "{"); err != nil {
		return nil, err
	}

	rec := &Record{}

	if tok := p.peek(); tok.Kind == KindSymbol && tok.Lit == "}" {
		p.next()

		return NewRecord(rec), nil
	}

	for {
		key, err := p.eat(KindIdentifier, "")
		if err != nil {
			return nil, err
		}

		if _, err := p.eat(KindSymbol, "="); err != nil {
			return nil, err
		}

		val, err := p.value(ctx)
		if err != nil {
			return nil, err
		}

		rec.Set(key.Lit, val)

		tok := p.peek()
		if tok.Kind == KindSymbol && tok.Lit == "," {
			p.next()

			// Trailing comma before closing brace.
			if tok := p.peek(); tok.Kind == KindSymbol && tok.Lit == "}" {
				break
			}

			continue
		}

		break
	}

	if _, err := p.eat(KindSymbol, "}"); err != nil {
		return nil, err
	}

	return NewRecord(rec), nil
}

// reference parses a constant reference and substitutes the already-resolved
// value of the named constant. The substitution is a structural copy, never
// an alias, so later redefinition of the referenced name cannot retroactively
// affect earlier substitutions.
//
//	ConstRef := '.' '(' Identifier ')' '.'
func (p *Parser) reference(ctx context.Context) (*Value, error) {
	if _, err := p.eat(KindSymbol, "."); err != nil {
		return nil, err
	}

	if _, err := p.eat(KindSymbol, "("); err != nil {
		return nil, err
	}

	name, err := p.eat(KindIdentifier, "")
	if err != nil {
		return nil, err
	}

	if _, err := p.eat(KindSymbol, ")"); err != nil {
		return nil, err
	}

	if _, err := p.eat(KindSymbol, "."); err != nil {
		return nil, err
	}

	val, ok := p.env.Lookup(name.Lit)
	if !ok {
		return nil, &ParseError{
			Msg: "undefined constant " + strconv.Quote(name.Lit),
			Pos: name.Pos,
		}
	}

	p.logger.TraceContext(
		ctx,
		"reference resolved",
		slog.String("name", name.Lit),
		slog.String("type", val.Type.String()),
	)

	return val.Clone(), nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.toks) {
		// The lexer always terminates the sequence with EOF, so this is
		// reachable only through misuse of the parser API.
		return Token{Kind: KindEOF, Pos: len(p.toks)}
	}

	return p.toks[p.pos]
}

// next consumes and returns the current token.
func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}

	return tok
}

// eat consumes the current token after checking it against the expected kind
// and, when lit is non-empty, the expected literal.
func (p *Parser) eat(kind Kind, lit string) (Token, error) {
	tok := p.peek()

	if tok.Kind != kind {
		return Token{}, &ParseError{
			Msg: "expected " + kind.String() + ", got " + tok.String(),
			Pos: tok.Pos,
		}
	}

	if lit != "" && tok.Lit != lit {
		return Token{}, &ParseError{
			Msg: "expected " + strconv.Quote(lit) + ", got " + tok.String(),
			Pos: tok.Pos,
		}
	}

	return p.next(), nil
}
