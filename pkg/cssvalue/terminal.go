package cssvalue

import "strings"

// primitives is the fixed set of basic types recognized inside angle
// brackets. Anything else in angle brackets is a valuespace: a production
// defined elsewhere and resolved by a downstream consumer. Built once;
// never mutated.
var primitives = map[string]bool{
	"angle":                true,
	"angle-percentage":     true,
	"an-plus-b":            true,
	"color":                true,
	"custom-ident":         true,
	"dashed-ident":         true,
	"declaration-value":    true,
	"dimension":            true,
	"flex":                 true,
	"frequency":            true,
	"frequency-percentage": true,
	"ident":                true,
	"image":                true,
	"integer":              true,
	"length":               true,
	"length-percentage":    true,
	"number":               true,
	"number-percentage":    true,
	"percentage":           true,
	"position":             true,
	"ratio":                true,
	"resolution":           true,
	"string":               true,
	"time":                 true,
	"time-percentage":      true,
	"url":                  true,
	"zero":                 true,
}

// punctuation literals that read as plain text in a value definition.
var literalPunctuation = map[string]bool{"/": true, ",": true, "(": true, ")": true}

// classifyTerminal maps a non-structural token to a grammar leaf.
func classifyTerminal(tok Token, input string) (*Node, error) {
	switch tok.Kind {
	case TokenString:
		return &Node{Type: TypeString, Value: tok.Text}, nil

	case TokenKeyword:
		if literalPunctuation[tok.Text] {
			return &Node{Type: TypeString, Value: tok.Text}, nil
		}
		return &Node{Type: TypeKeyword, Name: tok.Text}, nil

	case TokenTypeRef:
		name := tok.Text
		if strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") && len(name) >= 2 {
			return &Node{Type: TypePropertyRef, Name: strings.Trim(name, "'")}, nil
		}
		if primitives[name] {
			return &Node{Type: TypePrimitive, Name: name}, nil
		}
		return &Node{Type: TypeValueSpace, Name: name}, nil
	}
	return nil, newError(CodeUnrecognizedToken, tok.Text, input)
}
