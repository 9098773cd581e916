package candidate

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/ferdiebergado/hireloop/internal/pkg/skill"
)

const (
	weightSkills     = 0.6
	weightExperience = 0.2
	weightLocation   = 0.1
	weightText       = 0.1

	// experience beyond twice the minimum earns no extra score.
	experienceCap = 2.0
)

// Criteria is what a search ranks candidates against. Skills must be normalized.
type Criteria struct {
	Text          string
	Skills        []string
	Location      string
	MinExperience int
}

type Match struct {
	Candidate     Candidate
	Score         float64
	MatchedSkills []string
}

// Rank scores every candidate against c and orders the matches best first.
// Equal scores are ordered by matched skill count, then most recently updated, then id.
func Rank(candidates []Candidate, c Criteria) []Match {
	terms := strings.Fields(strings.ToLower(c.Text))
	location := strings.ToLower(strings.TrimSpace(c.Location))

	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		matched := skill.Intersect(skill.Normalize(cand.Skills), c.Skills)
		if matched == nil {
			matched = []string{}
		}

		score := weightSkills*skillScore(len(matched), len(c.Skills)) +
			weightExperience*experienceScore(cand.YearsExperience, c.MinExperience) +
			weightLocation*locationScore(cand.Location, location) +
			weightText*textScore(cand.FullName+" "+cand.Headline, terms)

		matches = append(matches, Match{
			Candidate:     cand,
			Score:         round4(score),
			MatchedSkills: matched,
		})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(len(b.MatchedSkills), len(a.MatchedSkills)); c != 0 {
			return c
		}
		if c := b.Candidate.UpdatedAt.Compare(a.Candidate.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Candidate.ID, b.Candidate.ID)
	})

	return matches
}

func skillScore(matched, wanted int) float64 {
	if wanted == 0 {
		return 0
	}
	return float64(matched) / float64(wanted)
}

func experienceScore(years, minYears int) float64 {
	ratio := float64(years) / float64(max(minYears, 1))
	return min(ratio, experienceCap) / experienceCap
}

func locationScore(candidateLocation, wanted string) float64 {
	if wanted == "" {
		return 1
	}
	if strings.Contains(strings.ToLower(candidateLocation), wanted) {
		return 1
	}
	return 0
}

func textScore(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 1
	}

	text = strings.ToLower(text)
	var found int
	for _, term := range terms {
		if strings.Contains(text, term) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
