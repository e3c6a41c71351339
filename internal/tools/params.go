package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIDList parses a comma-separated id list ("1,2,3"). Whitespace
// around entries is tolerated; anything non-numeric, non-positive, or
// an empty list is a validation error.
func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("id list must not be empty")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("id list contains an empty entry")
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		if id <= 0 {
			return nil, fmt.Errorf("id must be positive, got %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// clampPageSize applies the default and the configured ceiling.
func (s *Server) clampPageSize(requested int) int {
	if requested <= 0 {
		return s.cfg.PageSizeLimit
	}
	if requested > s.cfg.PageSizeLimit {
		return s.cfg.PageSizeLimit
	}
	return requested
}

// optionalInt returns a pointer when the argument was supplied with a
// positive value, nil otherwise.
func optionalInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
