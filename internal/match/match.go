// Package match scores career catalog entries against a user profile.
// Scoring is a pure function of the entry tags and the profile lists.
package match

import (
	"sort"
	"strings"

	"github.com/pathwise/pathwise/internal/models"
)

// Career is one catalog entry.
type Career struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// Scored pairs an entry with its score for one profile.
type Scored struct {
	Career Career `json:"career"`
	Score  int    `json:"score"`
}

// Score counts the entry tags present in the profile's skills or
// interests, case-insensitive. Custom skill/interest entries count too.
func Score(c Career, p models.UserProfile) int {
	have := make(map[string]bool, len(p.Skills)+len(p.Interests)+2)
	for _, s := range p.Skills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}
	for _, s := range p.Interests {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}
	if p.CustomSkill != "" {
		have[strings.ToLower(strings.TrimSpace(p.CustomSkill))] = true
	}
	if p.CustomInterest != "" {
		have[strings.ToLower(strings.TrimSpace(p.CustomInterest))] = true
	}
	score := 0
	for _, tag := range c.Tags {
		if have[strings.ToLower(strings.TrimSpace(tag))] {
			score++
		}
	}
	return score
}

// Rank returns the catalog sorted by descending score. Ties keep catalog
// order so results are stable between identical calls.
func Rank(catalog []Career, p models.UserProfile) []Scored {
	out := make([]Scored, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, Scored{Career: c, Score: Score(c, p)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
