package idlanalyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) *Report {
	t.Helper()
	report, err := Analyze(src)
	require.NoError(t, err)
	return report
}

func TestAnalyze_Dependencies(t *testing.T) {
	report := analyze(t, `
		interface Event { };
		interface EventTarget {
			undefined dispatchEvent(Event event);
			attribute EventHandler onerror;
		};`)

	assert.Contains(t, report.IDLNames, "Event")
	assert.Contains(t, report.IDLNames, "EventTarget")
	assert.ElementsMatch(t, []string{"Event", "EventHandler"}, report.Dependencies["EventTarget"])
	assert.Equal(t, []string{"EventHandler"}, report.ExternalDependencies)
}

func TestAnalyze_ExternalNeverOverlapsLocal(t *testing.T) {
	// Node is referenced before it is defined; it must not stay external
	report := analyze(t, `
		interface Document { Node adoptNode(Node node); };
		interface Node { };`)

	assert.Contains(t, report.IDLNames, "Node")
	assert.NotContains(t, report.ExternalDependencies, "Node")
	for _, ext := range report.ExternalDependencies {
		assert.NotContains(t, report.IDLNames, ext)
	}
}

func TestAnalyze_PartialExclusion(t *testing.T) {
	report := analyze(t, `partial interface Foo { attribute DOMString bar; };`)

	assert.NotContains(t, report.IDLNames, "Foo")
	require.Len(t, report.IDLExtendedNames["Foo"], 1)
	// the partial links back to its base name
	assert.Contains(t, report.Dependencies["Foo"], "Foo")
}

func TestAnalyze_DuplicateNameKeepsFirst(t *testing.T) {
	report := analyze(t, `
		interface Foo { attribute DOMString first; };
		interface Foo { attribute DOMString second; };`)

	require.Contains(t, report.IDLNames, "Foo")
	require.Len(t, report.IDLNames["Foo"].Members, 1)
	assert.Equal(t, "first", report.IDLNames["Foo"].Members[0].Name)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "Foo", report.Diagnostics[0].Name)
}

func TestAnalyze_ExposureDefault(t *testing.T) {
	report := analyze(t, `interface Widget { };`)

	assert.Equal(t, []string{"Widget"}, report.Exposure.Functions["Window"])
	assert.Empty(t, report.Exposure.Constructors)
	assert.Empty(t, report.Exposure.Objects)
	assert.False(t, report.ReallyDependsOnWindow,
		"default exposure alone must not count as a window dependency")
}

func TestAnalyze_PrimaryGlobalRewrite(t *testing.T) {
	report := analyze(t, `
		[PrimaryGlobal=MyGlobal] interface X { };
		interface Y { };`)

	assert.ElementsMatch(t, []string{"X", "Y"}, report.Exposure.Functions["MyGlobal"])
	assert.NotContains(t, report.Exposure.Functions, "Window")
	// the context name itself became a known IDL name
	assert.Contains(t, report.IDLNames, "MyGlobal")
}

func TestAnalyze_ExposedContexts(t *testing.T) {
	report := analyze(t, `
		[Exposed=(Window,Worker)] interface Performance { };`)

	assert.Equal(t, []string{"Performance"}, report.Exposure.Functions["Window"])
	assert.Equal(t, []string{"Performance"}, report.Exposure.Functions["Worker"])
	// contexts are recorded as dependencies of the interface
	assert.ElementsMatch(t, []string{"Window", "Worker"}, report.Dependencies["Performance"])
}

func TestAnalyze_ExposureOnlyOnInterfacesAndNamespaces(t *testing.T) {
	report := analyze(t, `
		[Exposed=Window] dictionary Options { long depth; };
		[Exposed=Worker] callback interface Listener { undefined handle(); };
		[Exposed=Worker] namespace Console { undefined log(DOMString msg); };`)

	// dictionaries and callback interfaces never pick up context edges
	assert.Empty(t, report.Dependencies["Options"])
	assert.Empty(t, report.Dependencies["Listener"])
	// namespaces do
	assert.Equal(t, []string{"Worker"}, report.Dependencies["Console"])
	// none of these are interfaces, so no visibility bucket is filed
	assert.Empty(t, report.Exposure.Functions)
	assert.Empty(t, report.Exposure.Constructors)
}

func TestAnalyze_Constructors(t *testing.T) {
	report := analyze(t, `
		[Constructor(DOMString type)] interface Event { };
		[NamedConstructor=Image(optional unsigned long width)] interface HTMLImageElement { };
		interface ModernEvent { constructor(DOMString type); };`)

	assert.Contains(t, report.Exposure.Constructors["Window"], "Event")
	assert.Contains(t, report.Exposure.Constructors["Window"], "Image")
	assert.Contains(t, report.Exposure.Constructors["Window"], "ModernEvent")
	assert.NotContains(t, report.Exposure.Functions["Window"], "Event")
}

func TestAnalyze_NoInterfaceObject(t *testing.T) {
	report := analyze(t, `[NoInterfaceObject] interface Hidden { };`)
	assert.Empty(t, report.Exposure.Functions)
}

func TestAnalyze_ReallyDependsOnWindow(t *testing.T) {
	t.Run("set by includes target", func(t *testing.T) {
		report := analyze(t, `Foo includes window;`)
		assert.True(t, report.ReallyDependsOnWindow)
	})

	t.Run("set by member type", func(t *testing.T) {
		report := analyze(t, `interface Foo { attribute Window owner; };`)
		assert.True(t, report.ReallyDependsOnWindow)
	})

	t.Run("set by inheritance", func(t *testing.T) {
		report := analyze(t, `interface Foo : Window { };`)
		assert.True(t, report.ReallyDependsOnWindow)
	})

	t.Run("not set by plain exposure", func(t *testing.T) {
		report := analyze(t, `interface Foo { attribute DOMString bar; };`)
		assert.False(t, report.ReallyDependsOnWindow)
	})
}

func TestAnalyze_EnumValues(t *testing.T) {
	report := analyze(t, `enum Mode { "open", "closed", "" };`)

	assert.Contains(t, report.IDLNames, "Mode")
	assert.Contains(t, report.IDLNames, `"open"`)
	assert.Contains(t, report.IDLNames, "open")
	assert.Contains(t, report.IDLNames, `""`)
	// dependency entries exist even for leaves
	assert.Empty(t, report.Dependencies["open"])
	assert.Contains(t, report.Dependencies, "open")
}

func TestAnalyze_TypedefAndCallback(t *testing.T) {
	report := analyze(t, `
		typedef (Node or DOMString) NodeOrString;
		callback Handler = undefined (Event event, sequence<Node> nodes);`)

	assert.Contains(t, report.Dependencies["NodeOrString"], "Node")
	assert.NotContains(t, report.Dependencies["NodeOrString"], "DOMString")
	assert.ElementsMatch(t, []string{"Event", "Node"}, report.Dependencies["Handler"])
}

func TestAnalyze_IterableMaplike(t *testing.T) {
	report := analyze(t, `
		interface FontFaceSet { setlike<FontFace>; };
		interface Headers { iterable<ByteString, ByteString>; };`)

	assert.Equal(t, []string{"FontFace"}, report.Dependencies["FontFaceSet"])
	assert.Empty(t, report.Dependencies["Headers"], "built-in element types are not dependencies")
}

func TestAnalyze_StringifierSkipped(t *testing.T) {
	report := analyze(t, `
		interface URLSearchParams { stringifier; };`)
	assert.Empty(t, report.Dependencies["URLSearchParams"])
}

func TestAnalyze_SyntaxErrorPassthrough(t *testing.T) {
	_, err := Analyze("interface {")
	require.Error(t, err)
}

func TestAnalyze_Idempotent(t *testing.T) {
	const src = `
		[Exposed=Window] interface A : B { attribute C c; };
		partial interface A { };
		enum E { "x" };`
	first := analyze(t, src)
	second := analyze(t, src)
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t,
		"interface F { attribute FrozenArray<DOMString> names; };",
		Normalize("interface F { attribute DOMString[] names; };"))

	normalized := Normalize("interface G { serializer = { attribute }; };")
	assert.Contains(t, normalized, "[Default] object toJSON();")

	assert.True(t, UsesObsoleteSyntax("interface F { attribute DOMString[] names; };"))
	assert.False(t, UsesObsoleteSyntax("interface F { attribute DOMString name; };"))
}

func TestNormalize_RewrittenTextParses(t *testing.T) {
	report := analyze(t, "interface F { attribute DOMString[] names; };")
	attr := report.IDLNames["F"].Members[0]
	require.Equal(t, "FrozenArray", attr.Type.Name)
	require.Len(t, attr.Type.Types, 1)
	assert.Equal(t, "DOMString", attr.Type.Types[0].Name)
}
