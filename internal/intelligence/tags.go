// Copyright Crestline Operations Inc., 2026. All rights reserved.

// Package intelligence implements the central intelligence index: a
// bounded, append-ordered store of captured operational knowledge, a
// lexical relevance scorer, and a query engine that merges the store with
// the knowledge base and resolved issues into one ranked candidate pool.
package intelligence

import (
	"regexp"
	"strings"
)

// maxAutoTags caps the number of extracted tags per text to bound the tag
// weight a single item can accumulate downstream.
const maxAutoTags = 10

// tagPattern pairs a tag with the pattern that triggers it. Order fixes
// which tags survive the maxAutoTags cap.
type tagPattern struct {
	tag string
	re  *regexp.Regexp
}

// tagTable is the fixed domain vocabulary: project types, business process
// terms, status/urgency terms, and team/HR terms.
var tagTable = []tagPattern{
	// Project types.
	{"kitchen", regexp.MustCompile(`kitchen`)},
	{"bathroom", regexp.MustCompile(`bath(room)?`)},
	{"roofing", regexp.MustCompile(`roof`)},
	{"addition", regexp.MustCompile(`addition|extension`)},
	{"flooring", regexp.MustCompile(`floor`)},
	{"remodel", regexp.MustCompile(`remodel|renovat`)},
	{"deck", regexp.MustCompile(`deck|patio`)},
	// Business process terms.
	{"permit", regexp.MustCompile(`permit|approval|city hall`)},
	{"inspection", regexp.MustCompile(`inspect`)},
	{"estimate", regexp.MustCompile(`estimate|quote|bid`)},
	{"invoice", regexp.MustCompile(`invoice|payment|billing`)},
	{"schedule", regexp.MustCompile(`schedul|timeline|deadline`)},
	{"subcontractor", regexp.MustCompile(`subcontractor|\bsub\b|vendor`)},
	{"material", regexp.MustCompile(`material|supply|supplies|lumber`)},
	{"client", regexp.MustCompile(`client|customer|homeowner`)},
	// Status and urgency.
	{"delayed", regexp.MustCompile(`delay|late|behind schedule|waiting`)},
	{"urgent", regexp.MustCompile(`urgent|asap|emergency|critical`)},
	{"completed", regexp.MustCompile(`complet|finish|done`)},
	{"budget", regexp.MustCompile(`budget|cost|expense|overrun`)},
	// Team and HR.
	{"hiring", regexp.MustCompile(`hir(e|ing)|recruit|onboard`)},
	{"training", regexp.MustCompile(`train(ing)?|certif`)},
	{"safety", regexp.MustCompile(`safety|osha|accident|injury`)},
}

// ExtractTags maps free text to domain keywords by evaluating the fixed
// pattern table against the lower-cased input. Any pattern with at least
// one match contributes its tag. The result is deduplicated, capped at
// maxAutoTags, and contains only lowercase alphanumeric-or-hyphen tokens.
// Empty input yields an empty set. Pure function: no side effects.
func ExtractTags(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var tags []string
	for _, tp := range tagTable {
		if tp.re.MatchString(lower) {
			tags = append(tags, tp.tag)
			if len(tags) == maxAutoTags {
				break
			}
		}
	}
	return tags
}

// tagToken is the shape every stored tag must satisfy.
var tagToken = regexp.MustCompile(`^[a-z0-9-]+$`)

// normalizeTags lowercases producer-supplied tags, drops tokens that are
// not lowercase alphanumeric-or-hyphen after folding, and deduplicates
// while preserving first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] || !tagToken.MatchString(t) {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// unionTags merges producer tags with auto-extracted tags, preserving
// producer order first and dropping duplicates.
func unionTags(producer, extracted []string) []string {
	seen := make(map[string]bool, len(producer)+len(extracted))
	var out []string
	for _, set := range [][]string{producer, extracted} {
		for _, t := range set {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
