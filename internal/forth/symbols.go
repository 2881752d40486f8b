package forth

// variables maps names to global slot indices, handed out in registration
// order starting at 0.
type variables struct {
	names   []string
	indices map[string]int
}

func (vars variables) name(index int) string {
	if index >= 0 && index < len(vars.names) {
		return vars.names[index]
	}
	return ""
}

func (vars variables) lookup(name string) (int, bool) {
	index, ok := vars.indices[name]
	return index, ok
}

// define returns the slot for name, assigning the next free one if needed;
// it fails once limit slots are taken.
func (vars *variables) define(name string, limit int) (index int, err error) {
	if index, ok := vars.indices[name]; ok {
		return index, nil
	}
	index = len(vars.names)
	if index >= limit {
		return -1, &Error{Kind: ErrVariableOverflow, Extra: name}
	}
	if vars.indices == nil {
		vars.indices = make(map[string]int)
	}
	vars.names = append(vars.names, name)
	vars.indices[name] = index
	return index, nil
}
