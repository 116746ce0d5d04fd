// Package nlp classifies user messages and extracts search keywords.
// Matching is substring and token based; the wording it depends on lives
// in tables.go.
package nlp

import (
	"strings"

	"github.com/esil-events/chatbot/pkg/models"
)

// Classify returns the intent of a message. Search phrases are tested
// before info phrases; the first match wins. This is a precedence rule:
// "cherche le prix de" is a product search even though it also carries an
// info phrase. No match means a general question.
func Classify(message string) models.Intent {
	m := strings.ToLower(message)

	for _, p := range searchPhrases {
		if strings.Contains(m, p) {
			return models.IntentProductSearch
		}
	}
	for _, p := range infoPhrases {
		if strings.Contains(m, p) {
			return models.IntentProductInfo
		}
	}
	return models.IntentGeneralQuestion
}
