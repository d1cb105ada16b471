package handler

import (
	"strconv"
	"strings"
)

// parseIDList parses a comma-separated id list query value ("1,5,12").
// Blank and non-numeric entries are skipped rather than failing the request.
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// truthy reports whether a query value should count as true. Accepts the
// usual bool spellings plus any non-zero integer; absent or unparsable
// values are false.
func truthy(raw string) bool {
	if raw == "" {
		return false
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0
	}
	return false
}
