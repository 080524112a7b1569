// Package match scores raw header strings against canonical vocabularies
// using a blend of exact, edit-distance, substring, and token-order
// comparison strategies.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Per-strategy acceptance thresholds. A candidate below its strategy
// threshold is discarded before the strategies are compared; anything below
// MinConfidence overall is no match.
const (
	ratioThreshold     = 70
	partialThreshold   = 80
	tokenSortThreshold = 75

	// MinConfidence is the overall floor for accepting a match.
	MinConfidence = 70
)

// Ratio returns the Levenshtein-derived similarity of a and b on a 0-100
// scale. Identical strings score 100; strings sharing no structure score 0.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	return int(math.Round(levenshtein.RatioForStrings(ra, rb, levenshtein.DefaultOptions) * 100))
}

// PartialRatio returns the best Ratio of the shorter string against every
// equal-length window of the longer string. It rewards headers that contain
// a vocabulary entry with surrounding noise ("total amount due" vs "total").
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return Ratio(string(ra), string(rb))
	}

	best := 0
	short := string(ra)
	for i := 0; i+len(ra) <= len(rb); i++ {
		if score := Ratio(short, string(rb[i:i+len(ra)])); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares a and b with their words sorted, making the score
// insensitive to word order ("customer name" vs "name customer").
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// bestByStrategy scans the vocabulary with one scoring function, keeping the
// earliest synonym with the strictly highest score at or above threshold.
func bestByStrategy(header string, vocabulary []string, score func(a, b string) int, threshold int) (string, int) {
	bestSyn, bestScore := "", 0
	for _, syn := range vocabulary {
		if s := score(header, strings.ToLower(syn)); s >= threshold && s > bestScore {
			bestSyn, bestScore = syn, s
		}
	}
	return bestSyn, bestScore
}

// BestMatch returns the vocabulary entry most similar to header and a 0-100
// confidence score. An exact case-insensitive match scores 100; otherwise the
// edit-distance, substring, and token-sort strategies each nominate their best
// candidate and the highest-confidence one wins, ties going to the
// earlier-listed strategy. Below MinConfidence the result is ("", 0).
func BestMatch(header string, vocabulary []string) (string, int) {
	h := strings.ToLower(strings.TrimSpace(header))

	for _, syn := range vocabulary {
		if h == strings.ToLower(syn) {
			return syn, 100
		}
	}

	levSyn, levScore := bestByStrategy(h, vocabulary, Ratio, ratioThreshold)
	partSyn, partScore := bestByStrategy(h, vocabulary, PartialRatio, partialThreshold)
	tokSyn, tokScore := bestByStrategy(h, vocabulary, TokenSortRatio, tokenSortThreshold)

	bestSyn, bestScore := levSyn, levScore
	if partScore > bestScore {
		bestSyn, bestScore = partSyn, partScore
	}
	if tokScore > bestScore {
		bestSyn, bestScore = tokSyn, tokScore
	}

	if bestScore < MinConfidence {
		return "", 0
	}
	return bestSyn, bestScore
}
