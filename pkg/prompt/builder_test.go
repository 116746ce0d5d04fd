package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/esil-events/chatbot/pkg/models"
)

func TestBuildKeepsLastSixTurns(t *testing.T) {
	var history []models.ChatMessage
	for i := 1; i <= 8; i++ {
		history = append(history, models.ChatMessage{
			Role:    models.RoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	got := Build("question", history, "")
	if strings.Contains(got, "message 1") || strings.Contains(got, "message 2") {
		t.Error("turns beyond the six-turn window must be dropped")
	}
	for i := 3; i <= 8; i++ {
		if !strings.Contains(got, fmt.Sprintf("message %d", i)) {
			t.Errorf("expected message %d in prompt", i)
		}
	}
}

func TestBuildRoleTags(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "bonjour"},
		{Role: models.RoleAssistant, Content: "bonjour, comment puis-je aider ?"},
	}
	got := Build("je cherche une tente", history, "")

	if !strings.Contains(got, "Utilisateur: bonjour") {
		t.Error("expected Utilisateur tag for user turns")
	}
	if !strings.Contains(got, "Assistant: bonjour, comment puis-je aider ?") {
		t.Error("expected Assistant tag for assistant turns")
	}
}

func TestBuildEmptyProductContext(t *testing.T) {
	got := Build("question", nil, "")
	if !strings.Contains(got, "# CONTEXTE PRODUIT :") {
		t.Error("product section must be present even when empty")
	}
	if !strings.Contains(got, "Aucun message précédent") {
		t.Error("expected empty-history placeholder")
	}
}

func TestBuildDeterministic(t *testing.T) {
	history := []models.ChatMessage{{Role: models.RoleUser, Content: "a"}}
	first := Build("m", history, "ctx")
	second := Build("m", history, "ctx")
	if first != second {
		t.Error("prompt assembly must be deterministic")
	}
}

func TestBuildContainsMessageAndContext(t *testing.T) {
	got := Build("avez-vous des tentes 6x4", nil, "Produits trouvés...")
	if !strings.Contains(got, "Message actuel du client : avez-vous des tentes 6x4") {
		t.Error("expected current message at the end of the prompt")
	}
	if !strings.Contains(got, "Produits trouvés...") {
		t.Error("expected product context block")
	}
}
