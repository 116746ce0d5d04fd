package nlp

import "strings"

// maxKeywords caps how many tokens a message contributes to a catalog query.
const maxKeywords = 5

// ExtractKeywords tokenizes a message into at most five search keywords.
// The message is lower-cased, punctuation is stripped, stop-words and
// tokens of one or two characters are dropped. Surviving tokens keep their
// original order; there is no stemming and no deduplication.
func ExtractKeywords(message string) []string {
	m := strings.ToLower(message)

	var b strings.Builder
	b.Grow(len(m))
	for _, r := range m {
		if strings.ContainsRune(punctuation, r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}

	keywords := make([]string, 0, maxKeywords)
	for _, tok := range strings.Fields(b.String()) {
		if len([]rune(tok)) <= 2 || stopWords[tok] {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
