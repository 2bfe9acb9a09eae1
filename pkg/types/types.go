// Package types defines the combined extract structures shared by the CLI,
// the cache and the batch pipeline.
package types

import (
	"github.com/w3c/specfacts/pkg/cssvalue"
	"github.com/w3c/specfacts/pkg/idlanalyzer"
)

// ExtractError records a non-fatal failure for one input within a spec,
// such as a single property grammar that did not parse.
type ExtractError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// PropertyGrammar pairs a CSS property (or descriptor) name with its raw
// value definition text and the parsed grammar tree.
type PropertyGrammar struct {
	Name    string         `json:"name"`
	Value   string         `json:"value"`
	Grammar *cssvalue.Node `json:"grammar,omitempty"`
}

// SpecExtract is the unit of output for one spec: everything the analyzers
// produced from its IDL blocks and property tables. It is what the cache
// stores and the batch command writes out.
type SpecExtract struct {
	// Spec is the input path (or a caller-chosen identifier) this
	// extract came from.
	Spec string `json:"spec"`

	IDL *idlanalyzer.Report       `json:"idl,omitempty"`
	CSS map[string]*cssvalue.Node `json:"css,omitempty"`

	// Properties keeps the raw grammar text alongside the parsed trees
	// in document order, including entries whose grammar failed to
	// parse.
	Properties []PropertyGrammar `json:"properties,omitempty"`

	// Obsolete is set when the IDL relied on syntax that had to be
	// rewritten before parsing.
	Obsolete bool `json:"obsolete,omitempty"`

	Errors []ExtractError `json:"errors,omitempty"`
}

// HasFacts reports whether the extract carries any analyzer output at all.
func (e *SpecExtract) HasFacts() bool {
	return e.IDL != nil || len(e.CSS) > 0
}
