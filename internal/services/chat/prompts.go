package chat

import (
	"fmt"
	"strings"

	"github.com/selectchat/chat-service/internal/services/provider"
)

// systemPromptNewChat is the system instruction used for the feature-less
// new-chat context.
const systemPromptNewChat = "You are a helpful assistant. The user may start " +
	"from a text excerpt captured from a web page; answer follow-up questions " +
	"about it clearly and concisely, in markdown."

// reasoningSystemPrompt frames the reasoning pre-pass.
const reasoningSystemPrompt = "You are an expert at planning, arguing, " +
	"reasoning and thinking through problems."

// suggestSystemPrompt frames the suggested-questions call.
const suggestSystemPrompt = "You will help generate suggested questions, " +
	"acting as the user, based on the conversation between you and the " +
	"assistant. Ask short, clear questions. Answer in the json format " +
	`["question1", "question2", "question3"]`

// reasoningUserPrompt concatenates the conversation history into the single
// user turn of the reasoning request. System entries are excluded.
func reasoningUserPrompt(history []provider.ChatMessage) string {
	blocks := make([]string, 0, len(history))
	for _, msg := range history {
		if msg.Role == "system" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("***%s***: %s", msg.Role, msg.Content))
	}

	return "Based on the conversation history between assistant and user below, " +
		"reason and plan in detail, breaking the problem down, to answer the " +
		"user's question:\n---\n" + strings.Join(blocks, "\n---\n")
}

// reasoningTurn renders the synthetic assistant turn injected into the
// response history when the reasoning stage produced output. It is
// ephemeral: recomputed each turn, never persisted to the log.
func reasoningTurn(reasoning string) string {
	return "Before answering your request, I thought and reasoned as follows:\n" +
		"<think>" + reasoning + "</think>\n" +
		"---Based on the reasoning above, here is my answer:"
}

// suggestUserPrompt renders the user turn of the suggested-questions call.
func suggestUserPrompt(content string) string {
	return "Below is the conversation between you and the assistant. What " +
		"would you ask the assistant next? (Do not repeat earlier questions)\n" + content
}
