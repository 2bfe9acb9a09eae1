package cssvalue

import (
	"strings"
	"unicode"
)

// tokenizer state machine states.
type tokenizerState int

const (
	stateNew tokenizerState = iota
	stateKeyword
	stateQuote
	stateTypeRefOpen
	stateTypeRefQuote
	stateTypeRefClose
	stateCurly
	stateAmpersand
	statePipe
)

func (s tokenizerState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateKeyword:
		return "keyword"
	case stateQuote:
		return "quote"
	case stateTypeRefOpen:
		return "type-ref-open"
	case stateTypeRefQuote:
		return "type-ref-quote"
	case stateTypeRefClose:
		return "type-ref-close"
	case stateCurly:
		return "curly"
	case stateAmpersand:
		return "ampersand"
	case statePipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// Characters that terminate a keyword lexeme. The terminating character is
// reprocessed from the boundary state.
const keywordBoundary = "'<>{&|[]*+#?!/,)"

func isKeywordBoundary(ch rune) bool {
	return unicode.IsSpace(ch) || strings.ContainsRune(keywordBoundary, ch)
}

func stateError(code ErrorCode, offending, input string, state tokenizerState) *Error {
	return &Error{Code: code, Offending: offending, Input: input, State: state.String()}
}

// Tokenize splits a value definition into a flat token sequence. Whitespace
// is a token boundary everywhere except inside quotes, type references and
// curly ranges.
func Tokenize(input string) ([]Token, error) {
	var (
		toks  []Token
		buf   strings.Builder
		state = stateNew
		runes = []rune(input)
	)

	emit := func(kind TokenKind) {
		toks = append(toks, Token{Kind: kind, Text: buf.String()})
		buf.Reset()
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch state {
		case stateNew:
			switch {
			case unicode.IsSpace(ch):
				// boundary
			case ch == '\'':
				state = stateQuote
			case ch == '<':
				state = stateTypeRefOpen
			case ch == '{':
				buf.WriteRune(ch)
				state = stateCurly
			case ch == '&':
				state = stateAmpersand
			case ch == '|':
				state = statePipe
			case ch == '[':
				toks = append(toks, Token{Kind: TokenBracketOpen, Text: "["})
			case ch == ']':
				toks = append(toks, Token{Kind: TokenBracketClose, Text: "]"})
			case ch == '*' || ch == '+' || ch == '#' || ch == '?' || ch == '!':
				toks = append(toks, Token{Kind: TokenMultiplier, Text: string(ch)})
			case ch == '/' || ch == ',' || ch == '(' || ch == ')':
				toks = append(toks, Token{Kind: TokenKeyword, Text: string(ch)})
			case ch == '>' || ch == '}':
				return nil, stateError(CodeUnexpectedCharacter, string(ch), input, state)
			default:
				buf.WriteRune(ch)
				state = stateKeyword
			}

		case stateKeyword:
			switch {
			case ch == '(':
				// "(" glues to the preceding bare keyword.
				emit(TokenFunctionStart)
				state = stateNew
			case isKeywordBoundary(ch):
				emit(TokenKeyword)
				state = stateNew
				i-- // reprocess from the boundary state
			default:
				buf.WriteRune(ch)
			}

		case stateQuote:
			if ch == '\'' {
				emit(TokenString)
				state = stateNew
			} else {
				buf.WriteRune(ch)
			}

		case stateTypeRefOpen:
			switch ch {
			case '>':
				emit(TokenTypeRef)
				state = stateNew
			case '\'':
				buf.WriteRune(ch)
				state = stateTypeRefQuote
			case '<':
				return nil, stateError(CodeUnexpectedCharacter, string(ch), input, state)
			default:
				buf.WriteRune(ch)
			}

		case stateTypeRefQuote:
			buf.WriteRune(ch)
			if ch == '\'' {
				state = stateTypeRefClose
			}

		case stateTypeRefClose:
			if ch != '>' {
				return nil, stateError(CodeUnexpectedCharacter, string(ch), input, state)
			}
			emit(TokenTypeRef)
			state = stateNew

		case stateCurly:
			buf.WriteRune(ch)
			if ch == '}' {
				emit(TokenRange)
				state = stateNew
			}

		case stateAmpersand:
			if ch != '&' {
				return nil, stateError(CodeUnexpectedCharacter, "&"+string(ch), input, state)
			}
			toks = append(toks, Token{Kind: TokenCombinator, Text: "&&"})
			state = stateNew

		case statePipe:
			if ch == '|' {
				toks = append(toks, Token{Kind: TokenCombinator, Text: "||"})
				state = stateNew
			} else {
				toks = append(toks, Token{Kind: TokenCombinator, Text: "|"})
				state = stateNew
				i--
			}
		}
	}

	switch state {
	case stateNew:
	case stateKeyword:
		emit(TokenKeyword)
	case stateAmpersand, statePipe:
		return nil, stateError(CodeUnterminatedCombinator, "", input, state)
	default:
		return nil, stateError(CodeUnterminatedToken, buf.String(), input, state)
	}
	return toks, nil
}
