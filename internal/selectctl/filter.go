package selectctl

import (
	"fmt"
	"strings"
)

// Filter returns the items whose projected text contains search,
// ignoring case, in their original order. An empty search returns items
// unchanged. itemToString may be nil.
func Filter[T any](items []T, search string, itemToString func(T) string) []T {
	if search == "" {
		return items
	}
	if itemToString == nil {
		itemToString = defaultItemToString[T]
	}

	needle := strings.ToLower(search)
	matches := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(itemToString(item)), needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

func defaultItemToString[T any](item T) string {
	return fmt.Sprint(item)
}
