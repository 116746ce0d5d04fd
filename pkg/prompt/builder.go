// Package prompt assembles the text prompt sent to the generative API.
package prompt

import (
	"fmt"
	"strings"

	"github.com/esil-events/chatbot/pkg/models"
)

// historyWindow is how many trailing conversation turns the prompt keeps.
const historyWindow = 6

// systemPreamble frames every request sent to the model.
const systemPreamble = `Tu es l'assistant virtuel d'ESIL Events, spécialiste de la location de matériel événementiel (tentes, mobilier, sonorisation, éclairage).
Réponds en français, de façon concise et professionnelle.
Appuie-toi uniquement sur le contexte produit fourni ; si une information manque, invite le client à contacter l'équipe commerciale.`

// Build concatenates the system preamble, the last six history turns, the
// product-context block and the current message into one prompt. The
// product section is always present, even when its content is empty;
// callers decide upstream whether to populate it. Assembly is
// deterministic: same inputs, same prompt.
func Build(message string, history []models.ChatMessage, productContext string) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\n# HISTORIQUE DE LA CONVERSATION :\n")
	b.WriteString(formatHistory(history))
	b.WriteString("\n\n# CONTEXTE PRODUIT :\n")
	b.WriteString(productContext)
	b.WriteString("\n\nMessage actuel du client : ")
	b.WriteString(message)
	return b.String()
}

func formatHistory(history []models.ChatMessage) string {
	if len(history) == 0 {
		return "Aucun message précédent"
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var b strings.Builder
	for i, msg := range history {
		tag := "Utilisateur"
		if msg.Role == models.RoleAssistant {
			tag = "Assistant"
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", tag, msg.Content)
	}
	return b.String()
}
