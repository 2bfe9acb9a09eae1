package idlanalyzer

import "regexp"

// Legacy WebIDL constructs still found in older specs, rewritten to their
// modern equivalents before parsing.
var (
	legacyArrayRe      = regexp.MustCompile(`attribute +([^ ;]+)\[\]`)
	legacySerializerRe = regexp.MustCompile(`serializer\s*=\s*\{[^}]*\}\s*;?`)
)

// Normalize rewrites legacy "attribute T[]" declarations to
// "attribute FrozenArray<T>" and legacy serializer blocks to
// "[Default] object toJSON();".
func Normalize(idlText string) string {
	out := legacyArrayRe.ReplaceAllString(idlText, "attribute FrozenArray<$1>")
	out = legacySerializerRe.ReplaceAllString(out, "[Default] object toJSON();")
	return out
}

// UsesObsoleteSyntax reports whether normalization would change the text,
// i.e. the spec still uses obsolete WebIDL constructs.
func UsesObsoleteSyntax(idlText string) bool {
	return Normalize(idlText) != idlText
}
