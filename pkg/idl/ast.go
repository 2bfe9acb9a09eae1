// Package idl parses WebIDL fragments into an abstract syntax tree.
//
// The tree is a kind-tagged union over the constructs web specs use:
// interfaces, mixins, dictionaries, namespaces, callbacks, enums, typedefs,
// includes statements and their members. The semantic layer (pkg/idlanalyzer)
// couples only to this shape.
package idl

// Kind identifies the construct an AST node represents.
type Kind string

const (
	KindInterface         Kind = "interface"
	KindInterfaceMixin    Kind = "interface mixin"
	KindCallbackInterface Kind = "callback interface"
	KindDictionary        Kind = "dictionary"
	KindNamespace         Kind = "namespace"
	KindCallback          Kind = "callback"
	KindEnum              Kind = "enum"
	KindEnumValue         Kind = "enum-value"
	KindTypedef           Kind = "typedef"
	KindOperation         Kind = "operation"
	KindConstructor       Kind = "constructor"
	KindAttribute         Kind = "attribute"
	KindConst             Kind = "const"
	KindField             Kind = "field"
	KindIncludes          Kind = "includes"
	KindIterable          Kind = "iterable"
	KindMaplike           Kind = "maplike"
	KindSetlike           Kind = "setlike"
)

// File is the root of a parsed WebIDL fragment.
type File struct {
	Definitions []*Definition `json:"definitions"`
}

// Definition is a single construct: a top-level definition or a member of
// one. Which fields carry meaning depends on Kind; members themselves use
// the same node shape, kind-tagged.
type Definition struct {
	Kind        Kind          `json:"kind"`
	Name        string        `json:"name,omitempty"`
	Partial     bool          `json:"partial,omitempty"`
	Inheritance string        `json:"inheritance,omitempty"`
	Members     []*Definition `json:"members,omitempty"`
	ExtAttrs    []*ExtAttr    `json:"ext_attrs,omitempty"`

	// Type is the declared type of an attribute, const or dictionary
	// field, the aliased type of a typedef, or the return type of an
	// operation or callback.
	Type *Type `json:"idl_type,omitempty"`

	// ValueTypes holds the declared element types of iterable, maplike and
	// setlike declarations (one or two entries).
	ValueTypes []*Type `json:"value_types,omitempty"`

	// Arguments of an operation, constructor or callback.
	Arguments []*Argument `json:"arguments,omitempty"`

	// Target of an includes statement: Name includes Target.
	Target string `json:"target,omitempty"`

	// Value is the literal of an enum value (unquoted), or the default of
	// a const or dictionary field.
	Value string `json:"value,omitempty"`

	Readonly    bool   `json:"readonly,omitempty"`
	Static      bool   `json:"static,omitempty"`
	Stringifier bool   `json:"stringifier,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Special     string `json:"special,omitempty"` // getter, setter, deleter, legacycaller
}

// Type is a WebIDL type expression. A leaf type has Name set and no Types.
// A union has Union set with its alternatives in Types. A generic such as
// sequence<T>, FrozenArray<T>, Promise<T> or record<K, V> has the wrapper in
// Name and its parameters in Types.
type Type struct {
	Name     string  `json:"name,omitempty"`
	Types    []*Type `json:"types,omitempty"`
	Union    bool    `json:"union,omitempty"`
	Nullable bool    `json:"nullable,omitempty"`
}

// Leaf reports whether t is a bare type name.
func (t *Type) Leaf() bool { return !t.Union && len(t.Types) == 0 }

// ExtAttr is one extended attribute, e.g. [Exposed=(Window,Worker)] or
// [NamedConstructor=Image(optional DOMString src)].
type ExtAttr struct {
	Name string `json:"name"`

	// RHS holds the right-hand identifier(s): one entry for [A=B], several
	// for [A=(B,C)]. Nil when the attribute has no right-hand side.
	RHS []string `json:"rhs,omitempty"`

	// Arguments holds the argument list of [Constructor(...)] or
	// [NamedConstructor=Name(...)].
	Arguments []*Argument `json:"arguments,omitempty"`
}

// Argument is a single operation or constructor argument.
type Argument struct {
	Name     string `json:"name"`
	Type     *Type  `json:"idl_type"`
	Optional bool   `json:"optional,omitempty"`
	Variadic bool   `json:"variadic,omitempty"`
	Default  string `json:"default,omitempty"`
}
