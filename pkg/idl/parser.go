package idl

import (
	"fmt"
	"strings"
)

// Parse parses a WebIDL fragment. There is no error recovery: the first
// syntax error aborts the parse and is returned as a *SyntaxError.
//
// Parse is pure and safe for concurrent use.
func Parse(src string) (*File, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	file := &File{}
	for !p.at(tkEOF, "") {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		file.Definitions = append(file.Definitions, def)
	}
	return file, nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) advance() { p.pos++ }

func (p *parser) peek(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// at reports whether the current token has the given kind and, when text is
// non-empty, that exact text.
func (p *parser) at(kind tokenKind, text string) bool {
	t := p.cur()
	return t.kind == kind && (text == "" || t.text == text)
}

func (p *parser) accept(kind tokenKind, text string) bool {
	if p.at(kind, text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) fail(format string, args ...interface{}) error {
	t := p.cur()
	return &SyntaxError{
		Line:    t.line,
		Col:     t.col,
		Message: fmt.Sprintf(format, args...),
		Snippet: sourceLine(p.src, t.line),
	}
}

func (p *parser) expect(kind tokenKind, text string) (token, error) {
	if !p.at(kind, text) {
		want := text
		if want == "" {
			want = map[tokenKind]string{tkIdent: "identifier", tkString: "string", tkNumber: "number"}[kind]
		}
		return token{}, p.fail("expected %q, found %q", want, p.cur().text)
	}
	t := p.cur()
	p.advance()
	return t, nil
}

func (p *parser) ident() (string, error) {
	t, err := p.expect(tkIdent, "")
	if err != nil {
		return "", err
	}
	return t.text, nil
}

// parseDefinition parses one top-level definition.
func (p *parser) parseDefinition() (*Definition, error) {
	attrs, err := p.parseExtAttrs()
	if err != nil {
		return nil, err
	}

	partial := p.accept(tkIdent, "partial")

	switch {
	case p.at(tkIdent, "interface"):
		p.advance()
		kind := KindInterface
		if p.accept(tkIdent, "mixin") {
			kind = KindInterfaceMixin
		}
		return p.parseContainer(kind, partial, attrs)

	case p.at(tkIdent, "dictionary"):
		p.advance()
		return p.parseContainer(KindDictionary, partial, attrs)

	case p.at(tkIdent, "namespace"):
		p.advance()
		return p.parseContainer(KindNamespace, partial, attrs)

	case p.at(tkIdent, "callback"):
		p.advance()
		if p.accept(tkIdent, "interface") {
			return p.parseContainer(KindCallbackInterface, partial, attrs)
		}
		return p.parseCallback(attrs)

	case p.at(tkIdent, "enum"):
		p.advance()
		return p.parseEnum(attrs)

	case p.at(tkIdent, "typedef"):
		p.advance()
		return p.parseTypedef(attrs)

	case p.cur().kind == tkIdent &&
		(p.peek(1).text == "includes" || p.peek(1).text == "implements"):
		return p.parseIncludes()
	}

	return nil, p.fail("unexpected %q at top level", p.cur().text)
}

// parseContainer parses the common name/inheritance/members shape shared by
// interfaces, mixins, dictionaries, namespaces and callback interfaces.
func (p *parser) parseContainer(kind Kind, partial bool, attrs []*ExtAttr) (*Definition, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	def := &Definition{Kind: kind, Name: name, Partial: partial, ExtAttrs: attrs}

	if p.accept(tkPunct, ":") {
		if def.Inheritance, err = p.ident(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tkPunct, "{"); err != nil {
		return nil, err
	}
	for !p.at(tkPunct, "}") {
		m, err := p.parseMember(kind)
		if err != nil {
			return nil, err
		}
		def.Members = append(def.Members, m)
	}
	p.advance() // }
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *parser) parseCallback(attrs []*ExtAttr) (*Definition, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tkPunct, "="); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return &Definition{Kind: KindCallback, Name: name, ExtAttrs: attrs, Type: ret, Arguments: args}, nil
}

func (p *parser) parseEnum(attrs []*ExtAttr) (*Definition, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	def := &Definition{Kind: KindEnum, Name: name, ExtAttrs: attrs}
	if _, err := p.expect(tkPunct, "{"); err != nil {
		return nil, err
	}
	for !p.at(tkPunct, "}") {
		t, err := p.expect(tkString, "")
		if err != nil {
			return nil, err
		}
		def.Members = append(def.Members, &Definition{Kind: KindEnumValue, Value: t.text})
		if !p.accept(tkPunct, ",") {
			break
		}
	}
	if _, err := p.expect(tkPunct, "}"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *parser) parseTypedef(attrs []*ExtAttr) (*Definition, error) {
	// type-level extended attributes, e.g. typedef [Clamp] octet N, are
	// parsed and attached alongside the definition's own
	if p.at(tkPunct, "[") {
		typeAttrs, err := p.parseExtAttrs()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, typeAttrs...)
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return &Definition{Kind: KindTypedef, Name: name, ExtAttrs: attrs, Type: t}, nil
}

func (p *parser) parseIncludes() (*Definition, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	p.advance() // includes | implements
	target, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return &Definition{Kind: KindIncludes, Name: name, Target: target}, nil
}

// parseMember parses one member of a container definition.
func (p *parser) parseMember(container Kind) (*Definition, error) {
	attrs, err := p.parseExtAttrs()
	if err != nil {
		return nil, err
	}

	if container == KindDictionary {
		return p.parseField(attrs)
	}

	m := &Definition{ExtAttrs: attrs}
	for {
		switch {
		case p.at(tkIdent, "static"):
			p.advance()
			m.Static = true
			continue
		case p.at(tkIdent, "readonly"):
			p.advance()
			m.Readonly = true
			continue
		case p.at(tkIdent, "inherit"):
			p.advance()
			continue
		case p.at(tkIdent, "stringifier"):
			p.advance()
			m.Stringifier = true
			if p.at(tkPunct, ";") {
				p.advance()
				m.Kind = KindOperation
				return m, nil
			}
			continue
		case p.at(tkIdent, "getter"), p.at(tkIdent, "setter"),
			p.at(tkIdent, "deleter"), p.at(tkIdent, "legacycaller"):
			m.Special = p.cur().text
			p.advance()
			continue
		case p.at(tkIdent, "async"):
			p.advance()
			continue
		}
		break
	}

	switch {
	case p.at(tkIdent, "const"):
		p.advance()
		m.Kind = KindConst
		if m.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		if m.Name, err = p.ident(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tkPunct, "="); err != nil {
			return nil, err
		}
		if m.Value, err = p.constValue(); err != nil {
			return nil, err
		}

	case p.at(tkIdent, "attribute"):
		p.advance()
		m.Kind = KindAttribute
		if m.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		if m.Name, err = p.attributeName(); err != nil {
			return nil, err
		}

	case p.at(tkIdent, "iterable"), p.at(tkIdent, "maplike"), p.at(tkIdent, "setlike"):
		switch p.cur().text {
		case "iterable":
			m.Kind = KindIterable
		case "maplike":
			m.Kind = KindMaplike
		default:
			m.Kind = KindSetlike
		}
		p.advance()
		if m.ValueTypes, err = p.parseTypeParams(); err != nil {
			return nil, err
		}

	case p.at(tkIdent, "constructor") && p.peek(1).text == "(":
		p.advance()
		m.Kind = KindConstructor
		m.Name = "constructor"
		if m.Arguments, err = p.parseArgList(); err != nil {
			return nil, err
		}

	default:
		m.Kind = KindOperation
		if m.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		if p.cur().kind == tkIdent {
			m.Name = p.cur().text
			p.advance()
		}
		if m.Arguments, err = p.parseArgList(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return m, nil
}

// attributeName accepts the few keywords that double as attribute names.
func (p *parser) attributeName() (string, error) {
	if p.cur().kind == tkIdent {
		name := p.cur().text
		p.advance()
		return name, nil
	}
	return "", p.fail("expected attribute name, found %q", p.cur().text)
}

func (p *parser) parseField(attrs []*ExtAttr) (*Definition, error) {
	m := &Definition{Kind: KindField, ExtAttrs: attrs}
	if p.accept(tkIdent, "required") {
		m.Required = true
	}
	var err error
	if m.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	if m.Name, err = p.ident(); err != nil {
		return nil, err
	}
	if p.accept(tkPunct, "=") {
		if m.Value, err = p.constValue(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tkPunct, ";"); err != nil {
		return nil, err
	}
	return m, nil
}

// constValue consumes a default or const literal up to the next ";" or ","
// or ")" and returns its raw text.
func (p *parser) constValue() (string, error) {
	var parts []string
	depth := 0
	for {
		t := p.cur()
		if t.kind == tkEOF {
			return "", p.fail("unterminated value")
		}
		if depth == 0 && t.kind == tkPunct && (t.text == ";" || t.text == "," || t.text == ")") {
			break
		}
		if t.kind == tkPunct && (t.text == "[" || t.text == "{") {
			depth++
		}
		if t.kind == tkPunct && (t.text == "]" || t.text == "}") {
			depth--
		}
		if t.kind == tkString {
			parts = append(parts, `"`+t.text+`"`)
		} else {
			parts = append(parts, t.text)
		}
		p.advance()
	}
	if len(parts) == 0 {
		return "", p.fail("expected value, found %q", p.cur().text)
	}
	return strings.Join(parts, " "), nil
}

// integer type names span multiple identifier tokens.
func (p *parser) typeName() (string, error) {
	name, err := p.ident()
	if err != nil {
		return "", err
	}
	switch name {
	case "unsigned":
		rest, err := p.typeName()
		if err != nil {
			return "", err
		}
		return "unsigned " + rest, nil
	case "unrestricted":
		rest, err := p.ident()
		if err != nil {
			return "", err
		}
		return "unrestricted " + rest, nil
	case "long":
		if p.accept(tkIdent, "long") {
			return "long long", nil
		}
	}
	return name, nil
}

var genericTypes = map[string]bool{
	"sequence":        true,
	"FrozenArray":     true,
	"ObservableArray": true,
	"Promise":         true,
	"record":          true,
}

// parseType parses a type expression: unions, generics, nullability.
func (p *parser) parseType() (*Type, error) {
	if p.accept(tkPunct, "(") {
		t := &Type{Union: true}
		for {
			member, err := p.parseType()
			if err != nil {
				return nil, err
			}
			t.Types = append(t.Types, member)
			if !p.accept(tkIdent, "or") {
				break
			}
		}
		if _, err := p.expect(tkPunct, ")"); err != nil {
			return nil, err
		}
		t.Nullable = p.accept(tkPunct, "?")
		return t, nil
	}

	name, err := p.typeName()
	if err != nil {
		return nil, err
	}
	t := &Type{Name: name}
	if genericTypes[name] && p.at(tkPunct, "<") {
		if t.Types, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	t.Nullable = p.accept(tkPunct, "?")
	return t, nil
}

// parseTypeParams parses "<T>" or "<K, V>".
func (p *parser) parseTypeParams() ([]*Type, error) {
	if _, err := p.expect(tkPunct, "<"); err != nil {
		return nil, err
	}
	var params []*Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
		if !p.accept(tkPunct, ",") {
			break
		}
	}
	if _, err := p.expect(tkPunct, ">"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseArgList parses "( arg, ... )".
func (p *parser) parseArgList() ([]*Argument, error) {
	if _, err := p.expect(tkPunct, "("); err != nil {
		return nil, err
	}
	var args []*Argument
	for !p.at(tkPunct, ")") {
		if p.at(tkPunct, "[") {
			// argument-level extended attributes carry no analyzer
			// meaning; parse and drop
			if _, err := p.parseExtAttrs(); err != nil {
				return nil, err
			}
		}
		arg := &Argument{}
		arg.Optional = p.accept(tkIdent, "optional")
		var err error
		if arg.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		arg.Variadic = p.accept(tkPunct, "...")
		if arg.Name, err = p.ident(); err != nil {
			return nil, err
		}
		if p.accept(tkPunct, "=") {
			if arg.Default, err = p.constValue(); err != nil {
				return nil, err
			}
		}
		args = append(args, arg)
		if !p.accept(tkPunct, ",") {
			break
		}
	}
	if _, err := p.expect(tkPunct, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseExtAttrs parses a leading "[...]" extended attribute list, returning
// nil when the next token opens no list.
func (p *parser) parseExtAttrs() ([]*ExtAttr, error) {
	if !p.accept(tkPunct, "[") {
		return nil, nil
	}
	var attrs []*ExtAttr
	for {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		attr := &ExtAttr{Name: name}

		if p.accept(tkPunct, "=") {
			switch {
			case p.accept(tkPunct, "("):
				for !p.at(tkPunct, ")") {
					id, err := p.rhsValue()
					if err != nil {
						return nil, err
					}
					attr.RHS = append(attr.RHS, id)
					if !p.accept(tkPunct, ",") {
						break
					}
				}
				if _, err := p.expect(tkPunct, ")"); err != nil {
					return nil, err
				}
			default:
				id, err := p.rhsValue()
				if err != nil {
					return nil, err
				}
				attr.RHS = []string{id}
				if p.at(tkPunct, "(") {
					// [NamedConstructor=Name(args)]
					if attr.Arguments, err = p.parseArgList(); err != nil {
						return nil, err
					}
				}
			}
		} else if p.at(tkPunct, "(") {
			// [Constructor(args)]
			if attr.Arguments, err = p.parseArgList(); err != nil {
				return nil, err
			}
		}

		attrs = append(attrs, attr)
		if !p.accept(tkPunct, ",") {
			break
		}
	}
	if _, err := p.expect(tkPunct, "]"); err != nil {
		return nil, err
	}
	return attrs, nil
}

// rhsValue accepts an identifier, string or the "*" wildcard on the right
// of an extended attribute.
func (p *parser) rhsValue() (string, error) {
	t := p.cur()
	switch {
	case t.kind == tkIdent, t.kind == tkString, t.kind == tkNumber:
		p.advance()
		return t.text, nil
	case t.kind == tkPunct && t.text == "*":
		p.advance()
		return "*", nil
	}
	return "", p.fail("expected extended attribute value, found %q", t.text)
}
