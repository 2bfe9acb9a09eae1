package idlanalyzer

import "github.com/w3c/specfacts/pkg/idl"

// primaryGlobalPlaceholder files interfaces whose exposure context is the
// spec's primary global before that global's real name is known. The final
// rewrite pass replaces it and it never appears in a returned report.
const primaryGlobalPlaceholder = "\x00primary-global"

// resolveExposure interprets the exposure-related extended attributes of a
// non-partial interface, mixin or namespace.
func (a *analyzer) resolveExposure(def *idl.Definition) {
	name := def.Name

	var (
		exposed    []string
		namedCtors []string
		hasCtor    bool
		noIface    bool
	)

	for _, ea := range def.ExtAttrs {
		switch ea.Name {
		case "PrimaryGlobal":
			pg := name
			if len(ea.RHS) > 0 {
				pg = ea.RHS[0]
			}
			a.primaryGlobal = pg
			a.registerContexts(ea.RHS, def)

		case "Global":
			a.registerContexts(ea.RHS, def)

		case "Exposed":
			for _, ctx := range ea.RHS {
				exposed = append(exposed, ctx)
				// the context itself becomes a dependency of the
				// exposed interface
				a.addDependency(name, ctx)
			}

		case "Constructor":
			hasCtor = true
			for _, arg := range ea.Arguments {
				a.resolveType(arg.Type, name)
			}

		case "NamedConstructor":
			if len(ea.RHS) > 0 {
				namedCtors = append(namedCtors, ea.RHS[0])
			}
			for _, arg := range ea.Arguments {
				a.resolveType(arg.Type, name)
			}

		case "NoInterfaceObject":
			noIface = true
		}
	}

	for _, m := range def.Members {
		if m.Kind == idl.KindConstructor {
			hasCtor = true
		}
	}

	// visibility buckets apply to interfaces proper
	if def.Kind != idl.KindInterface {
		return
	}
	if len(exposed) == 0 {
		exposed = []string{primaryGlobalPlaceholder}
	}
	if hasCtor {
		addExposure(a.report.Exposure.Constructors, exposed, name)
	}
	for _, nc := range namedCtors {
		addExposure(a.report.Exposure.Constructors, exposed, nc)
	}
	if !hasCtor && len(namedCtors) == 0 && !noIface {
		addExposure(a.report.Exposure.Functions, exposed, name)
	}
}

// registerContexts makes each global context name declared by [Global] or
// [PrimaryGlobal] a known IDL name pointing back at the declaring
// interface. An empty rhs means the interface's own name is the context.
func (a *analyzer) registerContexts(rhs []string, def *idl.Definition) {
	ctxs := rhs
	if len(ctxs) == 0 {
		ctxs = []string{def.Name}
	}
	for _, ctx := range ctxs {
		a.registerAlias(ctx, def)
	}
}

func addExposure(bucket map[string][]string, contexts []string, ifaceName string) {
	for _, ctx := range contexts {
		if !containsString(bucket[ctx], ifaceName) {
			bucket[ctx] = append(bucket[ctx], ifaceName)
		}
	}
}

// finalize runs the deferred primary-global rewrite: entries filed under
// the placeholder context move to the true primary global, which is the
// explicit [PrimaryGlobal] interface's name or the literal "Window".
func (a *analyzer) finalize() {
	pg := a.primaryGlobal
	if pg == "" {
		pg = "Window"
	}
	for _, bucket := range []map[string][]string{
		a.report.Exposure.Constructors,
		a.report.Exposure.Functions,
		a.report.Exposure.Objects,
	} {
		pending, ok := bucket[primaryGlobalPlaceholder]
		if !ok {
			continue
		}
		delete(bucket, primaryGlobalPlaceholder)
		for _, name := range pending {
			if !containsString(bucket[pg], name) {
				bucket[pg] = append(bucket[pg], name)
			}
		}
	}
}
