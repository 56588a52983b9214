package interfaces

import (
	"fmt"
	"sort"
	"strings"
)

// DeletionBlockedError is returned when a resource is still referenced, for
// example a creative named in the scope of a DCO rule.
type DeletionBlockedError struct {
	Resource   string
	References map[string]int64
}

func (e *DeletionBlockedError) Error() string {
	keys := make([]string, 0, len(e.References))
	for k := range e.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, e.References[k])
	}
	return fmt.Sprintf("deletion of %s blocked by references: %s", e.Resource, strings.Join(parts, ", "))
}
