package idl

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError is returned when a WebIDL fragment does not parse. It carries
// the position and source line so callers can report it verbatim.
type SyntaxError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Snippet string `json:"snippet,omitempty"`
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("webidl: line %d col %d: %s", e.Line, e.Col, e.Message)
}

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkNumber
	tkString
	tkPunct
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// lex splits a WebIDL fragment into tokens, skipping whitespace and both
// comment forms. Strings keep their surrounding quotes off; the text is the
// literal content (WebIDL strings have no escapes).
func lex(src string) ([]token, error) {
	var (
		toks  []token
		runes = []rune(src)
		line  = 1
		col   = 1
	)

	fail := func(l, c int, msg string) error {
		return &SyntaxError{Line: l, Col: c, Message: msg, Snippet: sourceLine(src, l)}
	}

	for i := 0; i < len(runes); {
		ch := runes[i]
		startLine, startCol := line, col

		advance := func(n int) {
			for k := 0; k < n; k++ {
				if runes[i] == '\n' {
					line++
					col = 1
				} else {
					col++
				}
				i++
			}
		}

		switch {
		case unicode.IsSpace(ch):
			advance(1)

		case ch == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				advance(1)
			}

		case ch == '/' && i+1 < len(runes) && runes[i+1] == '*':
			advance(2)
			for {
				if i >= len(runes) {
					return nil, fail(startLine, startCol, "unterminated comment")
				}
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					advance(2)
					break
				}
				advance(1)
			}

		case ch == '"':
			advance(1)
			var sb strings.Builder
			for {
				if i >= len(runes) {
					return nil, fail(startLine, startCol, "unterminated string literal")
				}
				if runes[i] == '"' {
					advance(1)
					break
				}
				sb.WriteRune(runes[i])
				advance(1)
			}
			toks = append(toks, token{tkString, sb.String(), startLine, startCol})

		case isIdentStart(ch) || (ch == '-' && i+1 < len(runes) && isIdentStart(runes[i+1])):
			var sb strings.Builder
			sb.WriteRune(ch)
			advance(1)
			for i < len(runes) && isIdentPart(runes[i]) {
				sb.WriteRune(runes[i])
				advance(1)
			}
			toks = append(toks, token{tkIdent, sb.String(), startLine, startCol})

		case unicode.IsDigit(ch) || (ch == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			var sb strings.Builder
			sb.WriteRune(ch)
			advance(1)
			for i < len(runes) && (isIdentPart(runes[i]) || runes[i] == '.' ||
				((runes[i] == '+' || runes[i] == '-') && (runes[i-1] == 'e' || runes[i-1] == 'E'))) {
				sb.WriteRune(runes[i])
				advance(1)
			}
			toks = append(toks, token{tkNumber, sb.String(), startLine, startCol})

		case ch == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.':
			advance(3)
			toks = append(toks, token{tkPunct, "...", startLine, startCol})

		case strings.ContainsRune("{}();:,=<>?*[].", ch):
			advance(1)
			toks = append(toks, token{tkPunct, string(ch), startLine, startCol})

		default:
			return nil, fail(startLine, startCol, fmt.Sprintf("unexpected character %q", string(ch)))
		}
	}

	toks = append(toks, token{tkEOF, "", line, col})
	return toks, nil
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || ch == '-' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line >= 1 && line <= len(lines) {
		return strings.TrimSpace(lines[line-1])
	}
	return ""
}
