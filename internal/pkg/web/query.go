package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Page is a validated limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset from the query, applying def when limit is absent
// and rejecting values outside [1, maxLimit] and negative offsets.
func ParsePage(q url.Values, def, maxLimit int) (Page, map[string]string) {
	page := Page{Limit: def}
	errs := make(map[string]string)

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			errs["limit"] = fmt.Sprintf("limit must be between 1 and %d", maxLimit)
		} else {
			page.Limit = n
		}
	}

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs["offset"] = "offset must be a non-negative integer"
		} else {
			page.Offset = n
		}
	}

	if len(errs) > 0 {
		return page, errs
	}
	return page, nil
}

// SplitList splits a comma-separated query value, dropping blanks.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseTime accepts RFC 3339 timestamps or plain dates (2006-01-02).
func ParseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
