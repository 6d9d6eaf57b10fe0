package runner

import (
	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a suggestion.
const maxSuggestDistance = 2

// Suggest returns the known state closest to candidate, if any is close enough.
func Suggest(candidate string, states []string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, s := range states {
		if d := levenshtein.ComputeDistance(candidate, s); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, best != ""
}
