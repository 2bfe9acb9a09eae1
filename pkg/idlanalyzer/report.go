// Package idlanalyzer computes the semantic report for one specification's
// WebIDL: the dependency graph between IDL names, which interfaces are
// reachable from which JavaScript global contexts, and which referenced
// names the spec does not itself define.
package idlanalyzer

import (
	"fmt"

	"github.com/w3c/specfacts/pkg/idl"
)

// Report is the result of analyzing one spec's WebIDL. It is built fresh
// per Analyze call, holds no references into caller state and is not
// mutated after being returned.
type Report struct {
	// Dependencies maps each defining IDL name to the ordered set of names
	// it references via member types, inheritance, includes targets or
	// exposure contexts.
	Dependencies map[string][]string `json:"dependencies"`

	// IDLNames maps each non-partial top-level definition to its node.
	// First occurrence wins; duplicates are dropped with a diagnostic.
	IDLNames map[string]*idl.Definition `json:"idl_names"`

	// IDLExtendedNames maps a name to the partial definitions extending it.
	IDLExtendedNames map[string][]*idl.Definition `json:"idl_extended_names"`

	// ExternalDependencies lists names referenced but not defined locally.
	// It never contains a key of IDLNames.
	ExternalDependencies []string `json:"external_dependencies"`

	// Exposure records which interfaces are reachable in which global
	// contexts.
	Exposure ExposureMap `json:"exposure"`

	// ReallyDependsOnWindow is true only when the window global appears as
	// a genuine type, inheritance or includes dependency, not merely as a
	// default exposure context.
	ReallyDependsOnWindow bool `json:"really_depends_on_window"`

	// Diagnostics records non-fatal semantic issues: duplicate top-level
	// names and unrecognized construct kinds. They degrade the report but
	// never abort the run.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ExposureMap holds, per global context name (Window, a worker global, or a
// custom primary global), the ordered interface names visible there. The
// objects bucket is carried for downstream compatibility and currently
// stays empty.
type ExposureMap struct {
	Constructors map[string][]string `json:"constructors"`
	Functions    map[string][]string `json:"functions"`
	Objects      map[string][]string `json:"objects"`
}

// Diagnostic is a non-fatal finding from an analyzer run.
type Diagnostic struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Name == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Name, d.Message)
}

func newReport() *Report {
	return &Report{
		Dependencies:         map[string][]string{},
		IDLNames:             map[string]*idl.Definition{},
		IDLExtendedNames:     map[string][]*idl.Definition{},
		ExternalDependencies: []string{},
		Exposure: ExposureMap{
			Constructors: map[string][]string{},
			Functions:    map[string][]string{},
			Objects:      map[string][]string{},
		},
	}
}
