package cssvalue

// TokenKind identifies the kind of a grammar token.
type TokenKind int

const (
	// TokenKeyword is a bare identifier, or one of the punctuation marks
	// ("/", ",", "(", ")") that classify as string literals.
	TokenKeyword TokenKind = iota
	// TokenString is the inner text of a single-quoted literal.
	TokenString
	// TokenTypeRef is the inner text of an angle-bracket reference,
	// including the quotes of an embedded property name.
	TokenTypeRef
	// TokenFunctionStart is a keyword immediately followed by "(". Text is
	// the function name.
	TokenFunctionStart
	// TokenCombinator is "&&", "||" or "|".
	TokenCombinator
	// TokenBracketOpen and TokenBracketClose delimit a group.
	TokenBracketOpen
	TokenBracketClose
	// TokenMultiplier is one of "*", "+", "#", "?", "!".
	TokenMultiplier
	// TokenRange is a verbatim curly-brace range, e.g. "{2,4}".
	TokenRange
)

// Token is a lexical unit of a value definition. Tokens are transient: the
// assembler consumes them while building the grammar tree.
type Token struct {
	Kind TokenKind
	Text string
}
