package cssvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kw(name string) *Node        { return &Node{Type: TypeKeyword, Name: name} }
func prim(name string) *Node      { return &Node{Type: TypePrimitive, Name: name} }
func lit(text string) *Node       { return &Node{Type: TypeString, Value: text} }
func seq(items ...*Node) *Node    { return &Node{Type: TypeSequence, Items: items} }
func oneOf(items ...*Node) *Node  { return &Node{Type: TypeOneOf, Items: items} }
func anyOf(items ...*Node) *Node  { return &Node{Type: TypeAnyOf, Items: items} }
func allOf(items ...*Node) *Node  { return &Node{Type: TypeAllOf, Items: items} }

func mustParse(t *testing.T, text string) *Node {
	t.Helper()
	n, err := Parse(text)
	require.NoError(t, err, "Parse(%q)", text)
	return n
}

func TestParse_Terminals(t *testing.T) {
	assert.Equal(t, kw("auto"), mustParse(t, "auto"))
	assert.Equal(t, prim("length-percentage"), mustParse(t, "<length-percentage>"))
	assert.Equal(t, &Node{Type: TypeValueSpace, Name: "line-names"}, mustParse(t, "<line-names>"))
	assert.Equal(t, &Node{Type: TypePropertyRef, Name: "grid-area"}, mustParse(t, "<'grid-area'>"))
	assert.Equal(t, lit("important"), mustParse(t, "'important'"))
}

func TestParse_CombinatorPrecedence(t *testing.T) {
	// && binds tighter than ||, which binds tighter than |
	got := mustParse(t, "a && b || c")
	assert.Equal(t, anyOf(allOf(kw("a"), kw("b")), kw("c")), got)

	got = mustParse(t, "a || b | c")
	assert.Equal(t, oneOf(anyOf(kw("a"), kw("b")), kw("c")), got)

	got = mustParse(t, "a | b | c")
	assert.Equal(t, oneOf(kw("a"), kw("b"), kw("c")), got)

	got = mustParse(t, "a b && c d")
	assert.Equal(t, allOf(seq(kw("a"), kw("b")), seq(kw("c"), kw("d"))), got)
}

func TestParse_Sequence(t *testing.T) {
	got := mustParse(t, "center <length>")
	assert.Equal(t, seq(kw("center"), prim("length")), got)
}

func TestParse_Multipliers(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		got := mustParse(t, "<integer>{2,4}")
		want := seq(prim("integer"))
		want.MinItems, want.MaxItems = intp(2), intp(4)
		assert.Equal(t, want, got)
	})

	t.Run("exact", func(t *testing.T) {
		got := mustParse(t, "<length>{2}")
		want := seq(prim("length"))
		want.MinItems, want.MaxItems = intp(2), intp(2)
		assert.Equal(t, want, got)
	})

	t.Run("at least", func(t *testing.T) {
		got := mustParse(t, "<length>{2,}")
		want := seq(prim("length"))
		want.MinItems = intp(2)
		assert.Equal(t, want, got)
	})

	t.Run("star", func(t *testing.T) {
		got := mustParse(t, "foo*")
		want := seq(kw("foo"))
		want.MinItems = intp(0)
		assert.Equal(t, want, got)
	})

	t.Run("plus", func(t *testing.T) {
		got := mustParse(t, "foo+")
		want := seq(kw("foo"))
		want.MinItems = intp(1)
		assert.Equal(t, want, got)
	})

	t.Run("hash adds comma separator", func(t *testing.T) {
		got := mustParse(t, "<length>#")
		want := seq(prim("length"))
		want.MinItems = intp(1)
		want.Separator = ","
		assert.Equal(t, want, got)
	})

	t.Run("question marks a single node optional", func(t *testing.T) {
		got := mustParse(t, "foo?")
		want := kw("foo")
		want.Optional = true
		assert.Equal(t, want, got)
	})

	t.Run("question on a group bounds the repetition", func(t *testing.T) {
		got := mustParse(t, "[ a b ]?")
		want := seq(kw("a"), kw("b"))
		want.MinItems, want.MaxItems = intp(0), intp(1)
		assert.Equal(t, want, got)
	})

	t.Run("bang requires a group", func(t *testing.T) {
		got := mustParse(t, "[ a b ]!")
		want := seq(kw("a"), kw("b"))
		want.MinItems = intp(1)
		assert.Equal(t, want, got)

		_, err := Parse("a!")
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, CodeInvalidMultiplier, perr.Code)
	})
}

func TestParse_BracketGroups(t *testing.T) {
	t.Run("nested group", func(t *testing.T) {
		got := mustParse(t, "[ a [ b | c ] ]")
		want := seq(kw("a"), oneOf(kw("b"), kw("c")))
		want.MinItems, want.MaxItems = intp(1), intp(1)
		assert.Equal(t, want, got)
	})

	t.Run("group multiplier applies to whole group", func(t *testing.T) {
		got := mustParse(t, "[ <integer> ]{1,4}")
		want := seq(prim("integer"))
		want.MinItems, want.MaxItems = intp(1), intp(4)
		assert.Equal(t, want, got)
	})

	t.Run("single-item group collapses", func(t *testing.T) {
		got := mustParse(t, "[ auto ]")
		assert.Equal(t, kw("auto"), got)
	})
}

func TestParse_Functions(t *testing.T) {
	got := mustParse(t, "fit-content( <length-percentage> )")
	assert.Equal(t, &Node{
		Type:      TypeFunction,
		Name:      "fit-content",
		Arguments: prim("length-percentage"),
	}, got)

	got = mustParse(t, "rect( <length>, <length> )")
	assert.Equal(t, &Node{
		Type:      TypeFunction,
		Name:      "rect",
		Arguments: seq(prim("length"), lit(","), prim("length")),
	}, got)

	got = mustParse(t, "minmax( <length> | auto )")
	assert.Equal(t, &Node{
		Type:      TypeFunction,
		Name:      "minmax",
		Arguments: oneOf(prim("length"), kw("auto")),
	}, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  ErrorCode
	}{
		{"[ a", CodeUnterminatedBracket},
		{"a ]", CodeUnterminatedBracket},
		{"<foo", CodeUnterminatedToken},
		{"'unterminated", CodeUnterminatedToken},
		{"fit-content( <length>", CodeUnterminatedFunction},
		{"?a", CodeMalformedMultiplier},
		{"<integer>{x}", CodeMalformedMultiplier},
		{"<integer>{4,2}", CodeMalformedMultiplier},
		{"a | | b", CodeUnterminatedCombinator},
		{"", CodeEmptyGrammar},
		{"   ", CodeEmptyGrammar},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			assert.Nil(t, n)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code)
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	const text = "[ <'grid-template-rows'> / <'grid-template-columns'> ]? | <length>#"
	first := mustParse(t, text)
	second := mustParse(t, text)
	assert.Equal(t, first, second)
}
