package cssvalue

import "fmt"

// ErrorCode classifies grammar parse failures.
type ErrorCode string

const (
	CodeUnexpectedCharacter     ErrorCode = "unexpected-character"
	CodeUnterminatedToken       ErrorCode = "unterminated-token"
	CodeUnrecognizedToken       ErrorCode = "unrecognized-token"
	CodeMalformedMultiplier     ErrorCode = "malformed-multiplier"
	CodeInvalidMultiplier       ErrorCode = "invalid-multiplier"
	CodeUnterminatedFunction    ErrorCode = "unterminated-function"
	CodeUnterminatedBracket     ErrorCode = "unterminated-bracket-group"
	CodeUnterminatedCombinator  ErrorCode = "unterminated-combinator"
	CodeEmptyGrammar            ErrorCode = "empty-grammar"
)

// Error describes why a value grammar failed to parse. Parse never returns a
// partial tree; any malformed input surfaces as an *Error.
type Error struct {
	Code      ErrorCode `json:"code"`
	Offending string    `json:"offending,omitempty"` // substring or character at fault
	Input     string    `json:"input"`               // the full grammar text
	State     string    `json:"state,omitempty"`     // tokenizer state at failure, empty for assembler errors
}

func (e *Error) Error() string {
	if e.Offending == "" {
		return fmt.Sprintf("css value grammar: %s in %q", e.Code, e.Input)
	}
	return fmt.Sprintf("css value grammar: %s at %q in %q", e.Code, e.Offending, e.Input)
}

func newError(code ErrorCode, offending, input string) *Error {
	return &Error{Code: code, Offending: offending, Input: input}
}
