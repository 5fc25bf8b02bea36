// Copyright Crestline Operations Inc., 2026. All rights reserved.

package intelligence

import (
	"strings"
	"time"

	"github.com/crestline/opsbrain/pkg/types"
)

// Scoring weights for the additive point system. Tag hits outweigh
// free-text hits because tags represent curated signal.
const (
	exactMatchPoints = 10
	tokenHitPoints   = 2
	tagHitPoints     = 4
	deptMatchPoints  = 5

	recencyWindowDays = 7
	recencyMaxBonus   = 3
)

// Score computes the relevance of item to query under an optional
// department filter. Higher is more relevant. The result is the sum of:
//
//   - +10 when the full lowercase query appears in the item's composite
//     text (title, content, and tags joined by whitespace);
//   - +2 per query token (lowercase word longer than 2 characters) found
//     as a substring of the composite text;
//   - +4 per query token present verbatim in the item's tags;
//   - +5 when a non-wildcard department is requested and the item's
//     department matches it or is itself the wildcard;
//   - a recency bonus of 3 - days/2 (whole days, never negative) for
//     items younger than 7 days;
//   - the item's RelevanceBoost, verbatim.
//
// An empty query contributes nothing from the matching terms; recency and
// boost still apply, so a zero-match item can clear a caller's score
// threshold on those alone. Absent item fields are treated as empty
// strings. Department mismatch is a hard filter applied before scoring,
// not handled here.
func Score(query string, item types.IndexedItem, department string, now time.Time) int {
	score := 0

	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	composite := strings.ToLower(item.Title + " " + item.Content + " " + strings.Join(item.Tags, " "))

	if lowerQuery != "" && strings.Contains(composite, lowerQuery) {
		score += exactMatchPoints
	}

	for _, token := range queryTokens(lowerQuery) {
		if strings.Contains(composite, token) {
			score += tokenHitPoints
		}
		if item.HasTag(token) {
			score += tagHitPoints
		}
	}

	if department != "" && department != types.DepartmentWide {
		if item.Department == department || item.Department == "" || item.Department == types.DepartmentWide {
			score += deptMatchPoints
		}
	}

	score += recencyBonus(item.CreatedAt, now)
	score += item.RelevanceBoost

	return score
}

// queryTokens splits a lowercase query into words longer than 2
// characters. Short words drop out, which removes most stop words without
// carrying a stop-word list.
func queryTokens(lowerQuery string) []string {
	var tokens []string
	for _, w := range strings.Fields(lowerQuery) {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// recencyBonus returns a decaying bonus for items younger than seven
// days: 3 - days/2 in whole days, reaching zero at six days.
func recencyBonus(createdAt, now time.Time) int {
	if createdAt.IsZero() || createdAt.After(now) {
		return 0
	}
	days := int(now.Sub(createdAt).Hours() / 24)
	if days >= recencyWindowDays {
		return 0
	}
	bonus := recencyMaxBonus - days/2
	if bonus < 0 {
		return 0
	}
	return bonus
}
