package skill_test

import (
	"slices"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/pkg/skill"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"case and spaces", []string{" Go ", "POSTGRES", "machine   learning"}, []string{"go", "machine learning", "postgres"}},
		{"duplicates and blanks", []string{"go", "Go", "", "  ", "sql"}, []string{"go", "sql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := skill.Normalize(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	got := skill.Intersect([]string{"aws", "go", "sql"}, []string{"docker", "go", "sql"})
	if want := []string{"go", "sql"}; !slices.Equal(got, want) {
		t.Errorf("Intersect() = %q, want: %q", got, want)
	}

	if got := skill.Intersect(nil, []string{"go"}); len(got) != 0 {
		t.Errorf("Intersect(nil) = %q, want empty", got)
	}
}
