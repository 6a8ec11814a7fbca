// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

import (
	"strings"

	"github.com/agext/levenshtein"
)

// maxDistance bounds how different a candidate may be and still be offered
// as a suggestion.
const maxDistance = 3

// Nearest returns the candidate closest to word, when any candidate is
// close enough to plausibly be a misspelling of it.
func Nearest(word string, candidates []string) (string, bool) {
	bestDist := maxDistance + 1
	best := ""

	for _, candidate := range candidates {
		if candidate == word {
			continue
		}
		dist := levenshtein.Distance(strings.ToLower(word), strings.ToLower(candidate), nil)
		if dist < bestDist {
			bestDist = dist
			best = candidate
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
