// Package cssvalue parses CSS value definition syntax (the grammar notation
// used by spec property tables, e.g. "<length-percentage> | auto" or
// "[ <integer> ]{1,4}") into a structured grammar tree with explicit
// combinator and multiplier semantics.
package cssvalue

// NodeType identifies the kind of a grammar node.
type NodeType string

const (
	TypeKeyword     NodeType = "keyword"     // bare identifier, e.g. auto
	TypePrimitive   NodeType = "primitive"   // well-known basic type, e.g. <length>
	TypeValueSpace  NodeType = "valuespace"  // named production defined elsewhere, e.g. <line-names>
	TypePropertyRef NodeType = "propertyref" // reference to another property's grammar, e.g. <'grid-area'>
	TypeString      NodeType = "string"      // literal text, e.g. '/' or ','
	TypeFunction    NodeType = "function"    // functional notation, e.g. minmax(...)
	TypeSequence    NodeType = "sequence"    // ordered items, possibly repeated
	TypeAllOf       NodeType = "allof"       // && combination
	TypeAnyOf       NodeType = "anyof"       // || combination
	TypeOneOf       NodeType = "oneof"       // | combination
)

// Node is a node in a parsed value grammar tree. Which fields are meaningful
// depends on Type. The tree is immutable once returned by Parse and holds no
// back-references.
type Node struct {
	Type NodeType `json:"type"`

	// Name holds the identifier for keyword, primitive, valuespace,
	// propertyref and function nodes.
	Name string `json:"name,omitempty"`

	// Value holds the text of a string literal.
	Value string `json:"value,omitempty"`

	// Arguments holds the argument grammar of a function node. Nil for a
	// zero-argument notation such as counter-less "element()".
	Arguments *Node `json:"arguments,omitempty"`

	// Items holds child nodes for sequence, allof, anyof and oneof nodes.
	Items []*Node `json:"items,omitempty"`

	// MinItems and MaxItems bound how many times a sequence repeats. Nil
	// means unconstrained on that side (a sequence produced by combinator
	// splitting carries neither).
	MinItems *int `json:"min_items,omitempty"`
	MaxItems *int `json:"max_items,omitempty"`

	// Separator is the literal placed between repetitions, "," for the #
	// multiplier.
	Separator string `json:"separator,omitempty"`

	// Optional marks a single node suffixed with ?.
	Optional bool `json:"optional,omitempty"`
}

func intp(n int) *int { return &n }
