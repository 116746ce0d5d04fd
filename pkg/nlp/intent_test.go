package nlp

import (
	"testing"

	"github.com/esil-events/chatbot/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    models.Intent
	}{
		{"search verb", "je cherche une tente de réception", models.IntentProductSearch},
		{"search verb uppercase", "JE CHERCHE UNE TENTE", models.IntentProductSearch},
		{"avez-vous hyphenated", "avez-vous des chaises pliantes ?", models.IntentProductSearch},
		{"avez vous spaced", "avez vous des tables rondes", models.IntentProductSearch},
		{"proposez", "proposez des barnums pour mariage ?", models.IntentProductSearch},
		{"info price", "quel est le prix de la tente", models.IntentProductInfo},
		{"info availability", "est-ce disponible le 12 mars", models.IntentProductInfo},
		{"info details", "je voudrais plus de détails", models.IntentProductInfo},
		{"search wins over info", "cherche le prix de la sono", models.IntentProductSearch},
		{"no match", "bonjour, comment se passe la livraison ?", models.IntentGeneralQuestion},
		{"empty", "", models.IntentGeneralQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}
