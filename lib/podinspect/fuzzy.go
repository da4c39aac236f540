// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podinspect

import (
	"sort"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one candidate string against
// a query: its score (higher is a better match) and the rune indices
// the match touched, for highlighting in [Theme].Search* colors.
type FuzzyResult struct {
	Text      string
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 algorithm (the same one fzf itself uses for
// interactive filtering) against a single candidate. slab is scratch
// space the caller pools across calls to avoid per-match allocation;
// pass nil to let the algorithm allocate its own. Matching is case
// insensitive and normalizes Unicode combining forms, fzf's defaults
// for free-text filtering.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Text: text}
	}
	// fzf's case-insensitive mode folds only the candidate text, so the
	// pattern is folded here.
	folded := make([]rune, len(pattern))
	for i, r := range pattern {
		folded[i] = unicode.ToLower(r)
	}
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, folded, true, slab)
	if result.Start < 0 {
		return FuzzyResult{Text: text, Score: -1}
	}
	var pos []int
	if positions != nil {
		pos = make([]int, len(*positions))
		for i, p := range *positions {
			pos[i] = int(p)
		}
	}
	return FuzzyResult{Text: text, Score: result.Score, Positions: pos}
}

// FilterTypeNames fuzzy-filters a global type table's names against
// query, returning matches ordered best-score-first. An empty query
// returns every name in its original order with zero scores, matching
// fzf's own no-filter behavior.
func FilterTypeNames(names []string, query string) []FuzzyResult {
	pattern := []rune(query)
	slab := util.MakeSlab(100*1024, 2048)

	var results []FuzzyResult
	for _, name := range names {
		match := fuzzyMatch(name, pattern, slab)
		if len(pattern) > 0 && match.Score < 0 {
			continue
		}
		results = append(results, match)
	}
	if len(pattern) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}
	return results
}
