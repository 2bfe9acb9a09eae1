package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = `<!doctype html>
<html><body>
<pre class="idl">interface Widget { };</pre>
<div class="example">
  <pre class="idl">interface IgnoredExample { };</pre>
</div>
<div class="note">
  <pre class="webidl">interface IgnoredNote { };</pre>
</div>
<script type="text/plain-idl">partial interface Widget { attribute DOMString label; };</script>
<table class="propdef">
  <tr><th>Name:</th><td>margin-top, margin-bottom</td></tr>
  <tr><th>Value:</th><td>&lt;length-percentage&gt; |
      auto</td></tr>
</table>
<table class="descdef">
  <tr><th>Name:</th><td>src</td></tr>
  <tr><th>Value:</th><td>&lt;url&gt;#</td></tr>
</table>
<div class="example">
  <table class="propdef">
    <tr><th>Name:</th><td>ignored</td></tr>
    <tr><th>Value:</th><td>none</td></tr>
  </table>
</div>
</body></html>`

func loadSample(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := Load(strings.NewReader(sampleSpec))
	require.NoError(t, err)
	return doc
}

func TestIDLBlocks(t *testing.T) {
	doc := loadSample(t)
	idl := IDLBlocks(doc)

	assert.Contains(t, idl, "interface Widget { };")
	assert.Contains(t, idl, "partial interface Widget")
	assert.NotContains(t, idl, "IgnoredExample")
	assert.NotContains(t, idl, "IgnoredNote")
	// blocks are joined with a blank line in document order
	assert.Less(t, strings.Index(idl, "interface Widget"), strings.Index(idl, "partial interface"))
}

func TestProperties(t *testing.T) {
	doc := loadSample(t)
	props := Properties(doc)

	require.Len(t, props, 3)
	assert.Equal(t, Property{Name: "margin-top", Value: "<length-percentage> | auto"}, props[0])
	assert.Equal(t, Property{Name: "margin-bottom", Value: "<length-percentage> | auto"}, props[1])
	assert.Equal(t, Property{Name: "src", Value: "<url>#"}, props[2])
}

func TestProperties_DfnFallback(t *testing.T) {
	doc, err := Load(strings.NewReader(`<!doctype html>
<html><body>
<table class="propdef">
  <tr><th>Name:</th><td>gap</td></tr>
  <tr><th>Value:</th><td>normal | &lt;length&gt;</td></tr>
</table>
<dl>
  <dt><dfn data-dfn-type="property">row-gap</dfn></dt>
  <dd>&lt;length-percentage&gt; |
      normal</dd>
</dl>
<p>Also the <dfn data-dfn-type="property">column-gap</dfn> property.</p>
<p>The <dfn data-dfn-type="property">gap</dfn> shorthand, defined above.</p>
<div class="example">
  <dfn data-dfn-type="property">ignored</dfn>
</div>
</body></html>`))
	require.NoError(t, err)

	props := Properties(doc)
	require.Len(t, props, 3)
	// table rows come first, dfn fallbacks follow in document order
	assert.Equal(t, Property{Name: "gap", Value: "normal | <length>"}, props[0])
	assert.Equal(t, Property{Name: "row-gap", Value: "<length-percentage> | normal"}, props[1])
	// a dfn outside a definition list keeps the name with no grammar text
	assert.Equal(t, Property{Name: "column-gap", Value: ""}, props[2])
}

func TestIDLBlocks_Empty(t *testing.T) {
	doc, err := Load(strings.NewReader("<html><body><p>no idl here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, IDLBlocks(doc))
	assert.Empty(t, Properties(doc))
}
