package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *Definition {
	t.Helper()
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Definitions, 1)
	return file.Definitions[0]
}

func TestParse_Interface(t *testing.T) {
	def := parseOne(t, `
		interface Node : EventTarget {
			readonly attribute DOMString nodeName;
			Node cloneNode(optional boolean deep = false);
			const unsigned short ELEMENT_NODE = 1;
		};`)

	assert.Equal(t, KindInterface, def.Kind)
	assert.Equal(t, "Node", def.Name)
	assert.Equal(t, "EventTarget", def.Inheritance)
	assert.False(t, def.Partial)
	require.Len(t, def.Members, 3)

	attr := def.Members[0]
	assert.Equal(t, KindAttribute, attr.Kind)
	assert.Equal(t, "nodeName", attr.Name)
	assert.True(t, attr.Readonly)
	assert.Equal(t, "DOMString", attr.Type.Name)

	op := def.Members[1]
	assert.Equal(t, KindOperation, op.Kind)
	assert.Equal(t, "cloneNode", op.Name)
	assert.Equal(t, "Node", op.Type.Name)
	require.Len(t, op.Arguments, 1)
	assert.True(t, op.Arguments[0].Optional)
	assert.Equal(t, "false", op.Arguments[0].Default)

	c := def.Members[2]
	assert.Equal(t, KindConst, c.Kind)
	assert.Equal(t, "unsigned short", c.Type.Name)
	assert.Equal(t, "1", c.Value)
}

func TestParse_PartialAndMixin(t *testing.T) {
	file, err := Parse(`
		partial interface Window { attribute DOMString name; };
		interface mixin WindowOrWorkerGlobalScope { undefined queueMicrotask(VoidFunction callback); };
		Window includes WindowOrWorkerGlobalScope;`)
	require.NoError(t, err)
	require.Len(t, file.Definitions, 3)

	assert.True(t, file.Definitions[0].Partial)
	assert.Equal(t, KindInterface, file.Definitions[0].Kind)

	assert.Equal(t, KindInterfaceMixin, file.Definitions[1].Kind)

	inc := file.Definitions[2]
	assert.Equal(t, KindIncludes, inc.Kind)
	assert.Equal(t, "Window", inc.Name)
	assert.Equal(t, "WindowOrWorkerGlobalScope", inc.Target)
}

func TestParse_LegacyImplements(t *testing.T) {
	def := parseOne(t, "Window implements ECMA262Globals;")
	assert.Equal(t, KindIncludes, def.Kind)
	assert.Equal(t, "ECMA262Globals", def.Target)
}

func TestParse_DictionaryEnumTypedefCallback(t *testing.T) {
	file, err := Parse(`
		dictionary EventInit {
			boolean bubbles = false;
			required DOMString type;
		};
		enum ScrollBehavior { "auto", "instant", "smooth" };
		typedef (Int8Array or Uint8Array) ArrayBufferView;
		callback EventHandler = undefined (Event event);`)
	require.NoError(t, err)
	require.Len(t, file.Definitions, 4)

	dict := file.Definitions[0]
	assert.Equal(t, KindDictionary, dict.Kind)
	require.Len(t, dict.Members, 2)
	assert.Equal(t, KindField, dict.Members[0].Kind)
	assert.Equal(t, "false", dict.Members[0].Value)
	assert.True(t, dict.Members[1].Required)

	enum := file.Definitions[1]
	assert.Equal(t, KindEnum, enum.Kind)
	require.Len(t, enum.Members, 3)
	assert.Equal(t, KindEnumValue, enum.Members[0].Kind)
	assert.Equal(t, "auto", enum.Members[0].Value)

	td := file.Definitions[2]
	assert.Equal(t, KindTypedef, td.Kind)
	assert.True(t, td.Type.Union)
	require.Len(t, td.Type.Types, 2)
	assert.Equal(t, "Int8Array", td.Type.Types[0].Name)

	cb := file.Definitions[3]
	assert.Equal(t, KindCallback, cb.Kind)
	assert.Equal(t, "undefined", cb.Type.Name)
	require.Len(t, cb.Arguments, 1)
	assert.Equal(t, "Event", cb.Arguments[0].Type.Name)
}

func TestParse_GenericsAndNullable(t *testing.T) {
	def := parseOne(t, `
		interface HistoryEntry {
			Promise<sequence<DOMString>> keys();
			attribute record<DOMString, any> state;
			attribute Node? parent;
		};`)

	keys := def.Members[0]
	require.Equal(t, "Promise", keys.Type.Name)
	require.Len(t, keys.Type.Types, 1)
	assert.Equal(t, "sequence", keys.Type.Types[0].Name)
	assert.Equal(t, "DOMString", keys.Type.Types[0].Types[0].Name)

	state := def.Members[1]
	assert.Equal(t, "record", state.Type.Name)
	require.Len(t, state.Type.Types, 2)

	parent := def.Members[2]
	assert.True(t, parent.Type.Nullable)
}

func TestParse_IterableMaplikeSetlike(t *testing.T) {
	file, err := Parse(`
		interface A { iterable<DOMString>; };
		interface B { readonly maplike<DOMString, Blob>; };
		interface C { setlike<Node>; };`)
	require.NoError(t, err)

	it := file.Definitions[0].Members[0]
	assert.Equal(t, KindIterable, it.Kind)
	require.Len(t, it.ValueTypes, 1)

	ml := file.Definitions[1].Members[0]
	assert.Equal(t, KindMaplike, ml.Kind)
	assert.True(t, ml.Readonly)
	require.Len(t, ml.ValueTypes, 2)

	sl := file.Definitions[2].Members[0]
	assert.Equal(t, KindSetlike, sl.Kind)
}

func TestParse_ExtendedAttributes(t *testing.T) {
	def := parseOne(t, `
		[Exposed=(Window,Worker), Constructor(DOMString type), NamedConstructor=Image(optional unsigned long width)]
		interface HTMLImageElement { };`)

	require.Len(t, def.ExtAttrs, 3)

	exposed := def.ExtAttrs[0]
	assert.Equal(t, "Exposed", exposed.Name)
	assert.Equal(t, []string{"Window", "Worker"}, exposed.RHS)

	ctor := def.ExtAttrs[1]
	assert.Equal(t, "Constructor", ctor.Name)
	require.Len(t, ctor.Arguments, 1)
	assert.Equal(t, "DOMString", ctor.Arguments[0].Type.Name)

	named := def.ExtAttrs[2]
	assert.Equal(t, "NamedConstructor", named.Name)
	assert.Equal(t, []string{"Image"}, named.RHS)
	require.Len(t, named.Arguments, 1)
	assert.Equal(t, "unsigned long", named.Arguments[0].Type.Name)
}

func TestParse_StringifierAndSpecials(t *testing.T) {
	def := parseOne(t, `
		interface DOMTokenList {
			stringifier;
			getter DOMString? item(unsigned long index);
			static Blob create();
		};`)

	s := def.Members[0]
	assert.Equal(t, KindOperation, s.Kind)
	assert.True(t, s.Stringifier)
	assert.Nil(t, s.Type)

	g := def.Members[1]
	assert.Equal(t, "getter", g.Special)
	assert.True(t, g.Type.Nullable)

	st := def.Members[2]
	assert.True(t, st.Static)
}

func TestParse_ConstructorMember(t *testing.T) {
	def := parseOne(t, `
		interface Event {
			constructor(DOMString type, optional EventInit eventInitDict = {});
		};`)
	ctor := def.Members[0]
	assert.Equal(t, KindConstructor, ctor.Kind)
	require.Len(t, ctor.Arguments, 2)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []string{
		"interface {",
		"interface Foo { attribute; };",
		`enum E { "a" `,
		"frob Foo;",
		"interface Foo : { };",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.NotZero(t, serr.Line)
			assert.NotEmpty(t, serr.Message)
		})
	}
}

func TestParse_CommentsIgnored(t *testing.T) {
	def := parseOne(t, `
		// a line comment
		interface /* inline */ Foo {
			/* member comment */
			attribute DOMString bar;
		};`)
	assert.Equal(t, "Foo", def.Name)
	require.Len(t, def.Members, 1)
}
