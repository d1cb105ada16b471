package service

// NamedInput is an inline tag or ingredient descriptor submitted with a
// recipe write.
type NamedInput struct {
	Name string
}

// reconcileNames is the pure core of the nested-relationship resolver.
// It collapses duplicate desired names (keeping first-appearance order) and
// splits the result into names already present in existing and names that
// still need a record. Name matching is exact and case-sensitive.
func reconcileNames(desired []string, existing map[string]struct{}) (ordered, missing []string) {
	seen := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
		if _, ok := existing[name]; !ok {
			missing = append(missing, name)
		}
	}
	return ordered, missing
}

func inputNames(inputs []NamedInput) []string {
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		names = append(names, in.Name)
	}
	return names
}
