package entities

import "strings"

// ValidationErrors collects every problem found with an input so callers
// can display all of them at once instead of failing on the first.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// HasErrors reports whether any problem was collected.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}
