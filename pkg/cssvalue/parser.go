package cssvalue

// Parse parses a CSS value definition into a grammar tree. It never returns
// a partial tree: any malformed input yields a nil node and an *Error.
//
// Parse is a pure function with no package state and is safe to call from
// multiple goroutines.
func Parse(grammarText string) (*Node, error) {
	toks, err := Tokenize(grammarText)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, newError(CodeEmptyGrammar, "", grammarText)
	}

	frags, err := classify(toks, grammarText)
	if err != nil {
		return nil, err
	}
	if frags, err = applyMultipliers(frags, grammarText); err != nil {
		return nil, err
	}
	if frags, err = resolveFunctions(frags, grammarText); err != nil {
		return nil, err
	}
	if frags, err = resolveBrackets(frags, grammarText); err != nil {
		return nil, err
	}
	root, err := resolveCombinators(frags, grammarText)
	if err != nil {
		return nil, err
	}

	// unwrap a size-one root sequence to its sole child
	if root.Type == TypeSequence && len(root.Items) == 1 &&
		root.MinItems == nil && root.MaxItems == nil && root.Separator == "" {
		root = root.Items[0]
	}
	return root, nil
}
