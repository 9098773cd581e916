// Package skill normalizes skill tags shared by jobs and candidate profiles.
package skill

import (
	"slices"
	"strings"
)

// Normalize lowercases and trims each skill, drops blanks and duplicates, and sorts the result.
func Normalize(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.Join(strings.Fields(s), " "))
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Intersect returns the skills present in both sorted, normalized lists.
func Intersect(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
