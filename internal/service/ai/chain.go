package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/yash6810/Plutus/internal/model/chat"
)

// newChatChain compiles the prompt+model chain shared by the detector and
// actor: a system slot, an optional history window, and the user query.
func newChatChain(ctx context.Context, chatModel model.ChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}
	return runnable, nil
}

// historyMessages converts the trailing window of the conversation into
// model messages. The scammer speaks as the user; our agent as the
// assistant.
func historyMessages(history []chat.Message, limit int) []*schema.Message {
	if len(history) == 0 {
		return nil
	}
	start := 0
	if len(history) > limit {
		start = len(history) - limit
	}

	messages := make([]*schema.Message, 0, len(history)-start)
	for _, msg := range history[start:] {
		if msg.Text == "" {
			continue
		}
		if msg.Sender == chat.SenderAgent {
			messages = append(messages, schema.AssistantMessage(msg.Text, nil))
		} else {
			messages = append(messages, schema.UserMessage(msg.Text))
		}
	}
	return messages
}
