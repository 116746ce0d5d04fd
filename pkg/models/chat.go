package models

// ChatMessage represents a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles accepted in chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// Intent is the coarse classification of a user message, used to decide
// whether a product lookup is attempted before calling the model.
type Intent string

const (
	IntentProductSearch   Intent = "product_search"
	IntentProductInfo     Intent = "product_info"
	IntentGeneralQuestion Intent = "general_question"
)
