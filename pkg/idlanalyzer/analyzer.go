package idlanalyzer

import (
	"fmt"

	"github.com/w3c/specfacts/pkg/idl"
)

// Analyze parses and analyzes one specification's WebIDL. A grammar-level
// failure surfaces as the parser's *idl.SyntaxError; semantic issues never
// abort the run and are collected on Report.Diagnostics instead.
//
// Analyze is pure: separate invocations share no state and may run
// concurrently.
func Analyze(idlText string) (*Report, error) {
	file, err := idl.Parse(Normalize(idlText))
	if err != nil {
		return nil, err
	}
	return AnalyzeFile(file), nil
}

// AnalyzeFile analyzes an already parsed WebIDL fragment. Definitions are
// walked in source order, so duplicate-name resolution is deterministic:
// the first occurrence wins.
func AnalyzeFile(file *idl.File) *Report {
	a := &analyzer{report: newReport()}
	for _, def := range file.Definitions {
		a.process(def)
	}
	a.finalize()
	return a.report
}

// analyzer accumulates one run's state. A fresh analyzer is used per input.
type analyzer struct {
	report *Report

	// primaryGlobal is the explicit [PrimaryGlobal] name once seen; empty
	// until then. The final rewrite pass falls back to "Window".
	primaryGlobal string
}

func (a *analyzer) process(def *idl.Definition) {
	switch def.Kind {
	case idl.KindInterface, idl.KindInterfaceMixin, idl.KindCallbackInterface,
		idl.KindDictionary, idl.KindNamespace:
		a.processContainer(def)

	case idl.KindEnum:
		a.processEnum(def)

	case idl.KindTypedef:
		if a.register(def.Name, def) {
			a.resolveType(def.Type, def.Name)
		}

	case idl.KindCallback:
		if a.register(def.Name, def) {
			a.resolveType(def.Type, def.Name)
			for _, arg := range def.Arguments {
				a.resolveType(arg.Type, def.Name)
			}
		}

	case idl.KindIncludes:
		a.addDependency(def.Name, def.Target)
		if isWindowName(def.Target) {
			a.report.ReallyDependsOnWindow = true
		}

	default:
		a.diag(def.Name, fmt.Sprintf("unrecognized definition kind %q, skipped", def.Kind))
	}
}

func (a *analyzer) processContainer(def *idl.Definition) {
	name := def.Name
	if def.Partial {
		a.report.IDLExtendedNames[name] = append(a.report.IDLExtendedNames[name], def)
		// link the partial back to the base definition
		a.addDependency(name, name)
	} else {
		if !a.register(name, def) {
			return
		}
		if def.Inheritance != "" {
			a.addDependency(name, def.Inheritance)
			if isWindowName(def.Inheritance) {
				a.report.ReallyDependsOnWindow = true
			}
		}
		switch def.Kind {
		case idl.KindInterface, idl.KindInterfaceMixin, idl.KindNamespace:
			a.resolveExposure(def)
		}
	}
	a.walkMembers(name, def.Members)
}

func (a *analyzer) processEnum(def *idl.Definition) {
	if !a.register(def.Name, def) {
		return
	}
	for _, v := range def.Members {
		if v.Kind != idl.KindEnumValue {
			a.diag(def.Name, fmt.Sprintf("unexpected %q member in enum", v.Kind))
			continue
		}
		// enum values are dependency-free leaves, findable under both
		// their quoted and unquoted spelling; the empty string has no
		// unquoted variant
		a.registerAlias(`"`+v.Value+`"`, v)
		if v.Value != "" {
			a.registerAlias(v.Value, v)
		}
	}
}

// walkMembers feeds each member through the type resolver, owner being the
// enclosing definition's name.
func (a *analyzer) walkMembers(owner string, members []*idl.Definition) {
	for _, m := range members {
		switch m.Kind {
		case idl.KindAttribute, idl.KindConst, idl.KindField:
			a.resolveType(m.Type, owner)

		case idl.KindOperation:
			if m.Stringifier && m.Type == nil {
				continue // no type to resolve
			}
			a.resolveType(m.Type, owner)
			for _, arg := range m.Arguments {
				a.resolveType(arg.Type, owner)
			}

		case idl.KindConstructor:
			for _, arg := range m.Arguments {
				a.resolveType(arg.Type, owner)
			}

		case idl.KindIterable, idl.KindMaplike, idl.KindSetlike:
			for _, t := range m.ValueTypes {
				a.resolveType(t, owner)
			}

		case idl.KindEnumValue:
			// handled by processEnum

		default:
			a.diag(owner, fmt.Sprintf("unrecognized member kind %q, skipped", m.Kind))
		}
	}
}

// resolveType records the dependencies a type expression introduces for
// owner. Unions, sequences and other generics recurse down to leaf names;
// built-ins never count.
func (a *analyzer) resolveType(t *idl.Type, owner string) {
	if t == nil {
		return
	}
	for _, sub := range t.Types {
		a.resolveType(sub, owner)
	}
	name := t.Name
	if name == "" {
		return
	}
	if isWindowName(name) {
		a.report.ReallyDependsOnWindow = true
	}
	if builtinTypes[name] || genericWrappers[name] {
		return
	}
	a.addDependency(owner, name)
}

// register records a non-partial top-level definition. The first occurrence
// of a name wins; later occurrences are dropped with a diagnostic, never
// merged. Returns false for a dropped duplicate.
func (a *analyzer) register(name string, def *idl.Definition) bool {
	if _, dup := a.report.IDLNames[name]; dup {
		a.diag(name, "duplicate definition, keeping the first")
		return false
	}
	a.report.IDLNames[name] = def
	if _, ok := a.report.Dependencies[name]; !ok {
		a.report.Dependencies[name] = []string{}
	}
	a.dropExternal(name)
	return true
}

// registerAlias records an additional lookup name (enum value spellings,
// global context names) without duplicate diagnostics: the first entry
// stays.
func (a *analyzer) registerAlias(name string, def *idl.Definition) {
	if _, ok := a.report.IDLNames[name]; ok {
		return
	}
	a.report.IDLNames[name] = def
	if _, ok := a.report.Dependencies[name]; !ok {
		a.report.Dependencies[name] = []string{}
	}
	a.dropExternal(name)
}

func (a *analyzer) addDependency(owner, dep string) {
	deps := a.report.Dependencies[owner]
	if !containsString(deps, dep) {
		a.report.Dependencies[owner] = append(deps, dep)
	}
	if _, local := a.report.IDLNames[dep]; !local {
		if !containsString(a.report.ExternalDependencies, dep) {
			a.report.ExternalDependencies = append(a.report.ExternalDependencies, dep)
		}
	}
}

// dropExternal maintains the invariant that externals never overlap locally
// defined names: a name referenced before its definition moves out of the
// external set the moment it is registered.
func (a *analyzer) dropExternal(name string) {
	ext := a.report.ExternalDependencies
	for i, e := range ext {
		if e == name {
			a.report.ExternalDependencies = append(ext[:i], ext[i+1:]...)
			return
		}
	}
}

func (a *analyzer) diag(name, msg string) {
	a.report.Diagnostics = append(a.report.Diagnostics, Diagnostic{Name: name, Message: msg})
}

func isWindowName(name string) bool {
	return name == "window" || name == "Window"
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
