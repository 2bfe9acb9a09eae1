package cssvalue

import (
	"strconv"
	"strings"
)

// frag is a slot in the partially assembled grammar: either a still
// structural token or an already resolved node. Exactly one field is set.
type frag struct {
	tok  *Token
	node *Node
}

func tokenFrag(t Token) frag { return frag{tok: &t} }
func nodeFrag(n *Node) frag  { return frag{node: n} }

func (f frag) isToken(kind TokenKind) bool {
	return f.tok != nil && f.tok.Kind == kind
}

func (f frag) isCloseParen() bool {
	return f.node != nil && f.node.Type == TypeString && f.node.Value == ")"
}

// classify turns terminals into leaf nodes, leaving structural tokens
// (combinators, brackets, function starts, multipliers, ranges) in place.
func classify(toks []Token, input string) ([]frag, error) {
	frags := make([]frag, 0, len(toks))
	for _, tok := range toks {
		switch tok.Kind {
		case TokenCombinator, TokenBracketOpen, TokenBracketClose,
			TokenFunctionStart, TokenMultiplier, TokenRange:
			frags = append(frags, tokenFrag(tok))
		default:
			n, err := classifyTerminal(tok, input)
			if err != nil {
				return nil, err
			}
			frags = append(frags, nodeFrag(n))
		}
	}
	return frags, nil
}

// parseRange decodes a verbatim "{m}", "{m,}" or "{m,n}" range token.
func parseRange(text, input string) (min *int, max *int, err error) {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}")
	lo, hi, hasComma := body, "", false
	if i := strings.IndexByte(body, ','); i >= 0 {
		lo, hi, hasComma = body[:i], body[i+1:], true
	}
	m, aerr := strconv.Atoi(strings.TrimSpace(lo))
	if aerr != nil || m < 0 {
		return nil, nil, newError(CodeMalformedMultiplier, text, input)
	}
	min = intp(m)
	switch {
	case !hasComma:
		max = intp(m)
	case strings.TrimSpace(hi) == "":
		// {m,} keeps the upper bound open
	default:
		n, aerr := strconv.Atoi(strings.TrimSpace(hi))
		if aerr != nil || n < m {
			return nil, nil, newError(CodeMalformedMultiplier, text, input)
		}
		max = intp(n)
	}
	return min, max, nil
}

// repetition wraps n as a repeatable sequence. A bounds-less sequence is
// reused in place rather than nested.
func repetition(n *Node) *Node {
	if n.Type == TypeSequence && n.MinItems == nil && n.MaxItems == nil && n.Separator == "" {
		return n
	}
	return &Node{Type: TypeSequence, Items: []*Node{n}}
}

// applyMultiplier applies a multiplier or range token to a node. group is
// true when the node came out of a bracket group.
func applyMultiplier(n *Node, tok Token, group bool, input string) (*Node, error) {
	if tok.Kind == TokenRange {
		min, max, err := parseRange(tok.Text, input)
		if err != nil {
			return nil, err
		}
		r := repetition(n)
		r.MinItems, r.MaxItems = min, max
		return r, nil
	}

	switch tok.Text {
	case "*":
		r := repetition(n)
		r.MinItems = intp(0)
		return r, nil
	case "+":
		r := repetition(n)
		r.MinItems = intp(1)
		return r, nil
	case "#":
		r := repetition(n)
		r.MinItems = intp(1)
		r.Separator = ","
		return r, nil
	case "?":
		if group {
			r := repetition(n)
			r.MinItems, r.MaxItems = intp(0), intp(1)
			return r, nil
		}
		n.Optional = true
		return n, nil
	case "!":
		if !group {
			return nil, newError(CodeInvalidMultiplier, tok.Text, input)
		}
		r := repetition(n)
		r.MinItems = intp(1)
		return r, nil
	}
	return nil, newError(CodeMalformedMultiplier, tok.Text, input)
}

// applyMultipliers resolves multipliers that follow an already classified
// terminal, left to right. A multiplier trailing a "]" is left for the
// bracket pass, which owns group multiplier semantics.
func applyMultipliers(frags []frag, input string) ([]frag, error) {
	out := make([]frag, 0, len(frags))
	for _, f := range frags {
		if !f.isToken(TokenMultiplier) && !f.isToken(TokenRange) {
			out = append(out, f)
			continue
		}
		if len(out) == 0 {
			return nil, newError(CodeMalformedMultiplier, f.tok.Text, input)
		}
		prev := out[len(out)-1]
		if prev.node == nil {
			if prev.isToken(TokenBracketClose) {
				out = append(out, f)
				continue
			}
			return nil, newError(CodeMalformedMultiplier, f.tok.Text, input)
		}
		n, err := applyMultiplier(prev.node, *f.tok, false, input)
		if err != nil {
			return nil, err
		}
		out[len(out)-1] = nodeFrag(n)
	}
	return out, nil
}

// resolveFunctions collapses each function-start marker and its argument
// span, up to the nearest close-paren, into a single function node.
// Arguments are a flat span in the supported grammar subset.
func resolveFunctions(frags []frag, input string) ([]frag, error) {
	for {
		start := -1
		for i, f := range frags {
			if f.isToken(TokenFunctionStart) {
				start = i
				break
			}
		}
		if start < 0 {
			return frags, nil
		}
		end := -1
		for j := start + 1; j < len(frags); j++ {
			if frags[j].isCloseParen() {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, newError(CodeUnterminatedFunction, frags[start].tok.Text, input)
		}

		fn := &Node{Type: TypeFunction, Name: frags[start].tok.Text}
		if end > start+1 {
			args, err := resolveCombinators(frags[start+1:end], input)
			if err != nil {
				return nil, err
			}
			fn.Arguments = args
		}
		frags = splice(frags, start, end+1, nodeFrag(fn))
	}
}

// resolveBrackets repeatedly collapses the innermost bracket group,
// applying any trailing multiplier to the group as a whole.
func resolveBrackets(frags []frag, input string) ([]frag, error) {
	for {
		open := -1
		for i, f := range frags {
			if f.isToken(TokenBracketOpen) {
				open = i
			}
		}
		if open < 0 {
			// any leftover "]" has no opening bracket
			for _, f := range frags {
				if f.isToken(TokenBracketClose) {
					return nil, newError(CodeUnterminatedBracket, "]", input)
				}
			}
			return frags, nil
		}
		closing := -1
		for j := open + 1; j < len(frags); j++ {
			if frags[j].isToken(TokenBracketClose) {
				closing = j
				break
			}
		}
		if closing < 0 {
			return nil, newError(CodeUnterminatedBracket, "[", input)
		}

		n, err := resolveCombinators(frags[open+1:closing], input)
		if err != nil {
			return nil, err
		}

		end := closing + 1
		if end < len(frags) && (frags[end].isToken(TokenMultiplier) || frags[end].isToken(TokenRange)) {
			n, err = applyMultiplier(n, *frags[end].tok, true, input)
			if err != nil {
				return nil, err
			}
			end++
		} else if n.Type == TypeSequence && n.MinItems == nil && n.MaxItems == nil {
			// an unmultiplied group occurs exactly once
			n.MinItems, n.MaxItems = intp(1), intp(1)
		}
		frags = splice(frags, open, end, nodeFrag(n))
	}
}

// combinator precedence, loosest binding first: the loosest operator splits
// the outermost, so "a && b || c" groups as anyof(allof(a,b), c).
var combinatorLevels = []struct {
	sym string
	typ NodeType
}{
	{"|", TypeOneOf},
	{"||", TypeAnyOf},
	{"&&", TypeAllOf},
}

// resolveCombinators reduces a fully resolved flat span to a single node by
// splitting on combinator symbols in precedence order.
func resolveCombinators(frags []frag, input string) (*Node, error) {
	return splitCombinators(frags, 0, input)
}

func splitCombinators(frags []frag, level int, input string) (*Node, error) {
	if level == len(combinatorLevels) {
		items := make([]*Node, 0, len(frags))
		for _, f := range frags {
			if f.node == nil {
				if f.isToken(TokenBracketClose) {
					return nil, newError(CodeUnterminatedBracket, "]", input)
				}
				return nil, newError(CodeUnrecognizedToken, f.tok.Text, input)
			}
			items = append(items, f.node)
		}
		switch len(items) {
		case 0:
			return nil, newError(CodeEmptyGrammar, "", input)
		case 1:
			return items[0], nil
		}
		return &Node{Type: TypeSequence, Items: items}, nil
	}

	lvl := combinatorLevels[level]
	var segments [][]frag
	start := 0
	for i, f := range frags {
		if f.isToken(TokenCombinator) && f.tok.Text == lvl.sym {
			segments = append(segments, frags[start:i])
			start = i + 1
		}
	}
	if len(segments) == 0 {
		return splitCombinators(frags, level+1, input)
	}
	segments = append(segments, frags[start:])

	items := make([]*Node, 0, len(segments))
	for _, seg := range segments {
		if len(seg) == 0 {
			return nil, newError(CodeUnterminatedCombinator, lvl.sym, input)
		}
		n, err := splitCombinators(seg, level+1, input)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return &Node{Type: lvl.typ, Items: items}, nil
}

func splice(frags []frag, from, to int, repl frag) []frag {
	out := make([]frag, 0, len(frags)-(to-from)+1)
	out = append(out, frags[:from]...)
	out = append(out, repl)
	out = append(out, frags[to:]...)
	return out
}
