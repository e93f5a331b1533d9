package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const keySeparator = ":"

// EntityKey is the point-lookup key, e.g. "book:<id>".
func EntityKey(entity, id string) string {
	return entity + keySeparator + id
}

// ListKey is the list-query key "<entity>s:<filter>...:<page>:<pageSize>".
// Filters must be passed in a fixed order per entity; each value is
// query-escaped so a separator inside a value cannot collide with another query.
func ListKey(entity string, page, pageSize int, filters ...string) string {
	parts := make([]string, 0, len(filters)+3)
	parts = append(parts, entity+"s")
	for _, f := range filters {
		parts = append(parts, url.QueryEscape(f))
	}
	parts = append(parts, strconv.Itoa(page), strconv.Itoa(pageSize))
	return strings.Join(parts, keySeparator)
}
