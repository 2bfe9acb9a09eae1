package scanner

import (
	"strings"
)

// Kind classifies a discovered input file by what the pipeline should do
// with it.
type Kind string

const (
	// KindHTML is a saved spec page; IDL blocks and propdef tables are
	// pulled out of it before analysis.
	KindHTML Kind = "html"
	// KindIDL is a raw WebIDL fragment.
	KindIDL Kind = "idl"
	// KindCSSGrammar is a file of "property: value definition" lines.
	KindCSSGrammar Kind = "css-grammar"
)

// kindMap maps file extensions to input kinds.
var kindMap = map[string]Kind{
	".html":    KindHTML,
	".htm":     KindHTML,
	".xhtml":   KindHTML,
	".idl":     KindIDL,
	".webidl":  KindIDL,
	".grammar": KindCSSGrammar,
	".vds":     KindCSSGrammar,
}

// DetectKind returns the input kind for a given file extension.
// Returns empty string if the extension is not recognized.
func DetectKind(ext string) Kind {
	ext = strings.ToLower(ext)

	if kind, ok := kindMap[ext]; ok {
		return kind
	}

	return ""
}
