// Package lang implements the deft configuration language: a small
// declarative notation for named constants, translated into an ordered
// name/value mapping.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Statement* EOF
//	Statement   → '(' 'def' Identifier Value ')' ';'
//	Value       → Number | Text | Record | Reference
//	Number      → ['+'|'-'] Digits        (no leading zeros)
//	Text        → '\'' <chars> '\''       (no escapes, single line)
//	Record      → 'struct' '{' (Field (',' Field)* ','?)? '}'
//	Field       → Identifier '=' Value
//	Reference   → '.' '(' Identifier ')' '.'
//
// Translation is a single fused pass: statements are parsed and resolved in
// order, so a reference names a constant defined earlier in the same input.
// There is no AST and no separate evaluation phase. Substituting a reference
// copies the referenced value structurally; later redefinition of the source
// constant does not affect constants already translated.
//
// # Example
//
//	REM server settings
//	(def port 8080);
//	(def host 'localhost');
//	(def server struct {
//	  addr = .(host).,
//	  port = .(port).,
//	});
//
//	--[[ redefinition replaces the earlier value ]]
//	(def port 9090);
//
// Comments come in two forms. A REM line comment runs to end of line and is
// recognized only when preceded by whitespace, start of input, or one of the
// characters "{}();,.". A block comment opens with "--[[" and closes at the
// first "]]"; block comments do not nest.
//
// # Output
//
// The resolved [Environment] preserves first-definition order and serializes
// to JSON via [Environment.FormatJSON], to YAML via [Environment.FormatYAML],
// or back to deft notation via [Environment.Format].
package lang
