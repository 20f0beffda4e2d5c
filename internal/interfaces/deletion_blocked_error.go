package interfaces

import (
	"fmt"
	"sort"
	"strings"
)

// DeletionBlockedError is returned when a record cannot be deleted because
// other records still depend on it.
type DeletionBlockedError struct {
	Resource   string
	References map[string]int64
}

func (e *DeletionBlockedError) Error() string {
	if len(e.References) == 0 {
		return e.Resource + " deletion blocked"
	}
	keys := make([]string, 0, len(e.References))
	for k := range e.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", e.References[k], strings.ReplaceAll(k, "_", " ")))
	}
	return fmt.Sprintf("%s deletion blocked by %s", e.Resource, strings.Join(parts, ", "))
}

// InvalidReferenceError reports a foreign key that points at no record.
type InvalidReferenceError struct {
	Field string
	ID    int
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Field, e.ID)
}
