package idlanalyzer

// builtinTypes are primitive scalars, string types, buffer types and other
// well-known names that never count as dependencies. Built once at program
// start; never mutated.
var builtinTypes = map[string]bool{
	"any":                  true,
	"bigint":               true,
	"boolean":              true,
	"byte":                 true,
	"octet":                true,
	"short":                true,
	"unsigned short":       true,
	"long":                 true,
	"unsigned long":        true,
	"long long":            true,
	"unsigned long long":   true,
	"float":                true,
	"unrestricted float":   true,
	"double":               true,
	"unrestricted double":  true,
	"undefined":            true,
	"void":                 true,
	"object":               true,
	"symbol":               true,
	"DOMString":            true,
	"ByteString":           true,
	"USVString":            true,
	"CSSOMString":          true,
	"DOMException":         true,
	"DOMTimeStamp":         true,
	"Function":             true,
	"VoidFunction":         true,
	"ArrayBuffer":          true,
	"SharedArrayBuffer":    true,
	"ArrayBufferView":      true,
	"BufferSource":         true,
	"DataView":             true,
	"Int8Array":            true,
	"Int16Array":           true,
	"Int32Array":           true,
	"Uint8Array":           true,
	"Uint16Array":          true,
	"Uint32Array":          true,
	"Uint8ClampedArray":    true,
	"BigInt64Array":        true,
	"BigUint64Array":       true,
	"Float32Array":         true,
	"Float64Array":         true,
}

// generic wrapper names recurse into their parameters but are not
// themselves dependencies.
var genericWrappers = map[string]bool{
	"sequence":        true,
	"FrozenArray":     true,
	"ObservableArray": true,
	"Promise":         true,
	"record":          true,
}
