// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}'\s-]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all am an and any are as at be because
		been before being below between both but by can could did do does doing
		down during each few for from further had has have having he her here hers
		herself him himself his how i if in into is it its itself just me more most
		my myself no nor not of off on once only or other our ours ourselves out
		over own same she should so some such than that the their theirs them
		themselves then there these they this those through to too under until up
		very was we were what when where which while who whom why will with would
		you your yours yourself yourselves also via among within without using use
		based new study`) {
		stopwords[w] = struct{}{}
	}
}

// WordFrequencies counts the words of text, lowercased and stripped of
// punctuation. Stopwords and single-character tokens are skipped. The result
// is ordered by count descending, then word; limit <= 0 keeps every word.
// Empty text yields nil.
func WordFrequencies(text string, limit int) []types.WordCount {
	clean := strings.ToLower(nonWord.ReplaceAllString(text, " "))

	freq := make(map[string]int)
	for _, token := range strings.Fields(clean) {
		token = strings.Trim(token, "'-")
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		freq[token]++
	}
	if len(freq) == 0 {
		return nil
	}

	out := make([]types.WordCount, 0, len(freq))
	for w, c := range freq {
		out = append(out, types.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Word < out[j].Word
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
