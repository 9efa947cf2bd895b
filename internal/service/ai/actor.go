package ai

import (
	"context"
	"math/rand"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/model/persona"
)

const (
	actorHistoryLimit = 6
	maxReplyLength    = 200
	typoProbability   = 0.05
)

// Actor generates in-character victim replies with the configured chat
// model.
type Actor struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	logger *zap.Logger
}

// NewActor compiles the reply-generation chain over chatModel.
func NewActor(ctx context.Context, chatModel model.ChatModel, logger *zap.Logger) (*Actor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chain, err := newChatChain(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	return &Actor{chain: chain, logger: logger}, nil
}

// Reply generates a persona-consistent response to the latest scammer
// message.
func (a *Actor) Reply(ctx context.Context, p persona.Persona, message string, history []chat.Message) (string, error) {
	profile, ok := persona.Lookup(p)
	if !ok {
		profile, _ = persona.Lookup(persona.Default)
	}

	input := map[string]any{
		"system":  profile.SystemPrompt + actorInstructions,
		"history": historyMessages(history, actorHistoryLimit),
		"query":   message,
	}

	response, err := a.chain.Invoke(ctx, input)
	if err != nil {
		return "", err
	}

	text := cleanReply(response.Content)
	if text == "" {
		text = profile.Fallbacks[rand.Intn(len(profile.Fallbacks))]
	}

	a.logger.Debug("reply generated",
		zap.String("persona", string(profile.Persona)),
		zap.Int("length", len(text)))
	return humanize(text), nil
}

// cleanReply strips quoting, chat-style prefixes, and overlong tails from
// the raw model output.
func cleanReply(raw string) string {
	text := strings.TrimSpace(raw)

	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') || (text[0] == '\'' && text[len(text)-1] == '\'') {
			text = strings.TrimSpace(text[1 : len(text)-1])
		}
	}

	lower := strings.ToLower(text)
	for _, prefix := range []string{"reply:", "response:", "message:", "answer:"} {
		if strings.HasPrefix(lower, prefix) {
			text = strings.TrimSpace(text[len(prefix):])
			break
		}
	}

	if len(text) > maxReplyLength {
		// Cut at a sentence boundary when one fits.
		result := ""
		for _, sentence := range strings.Split(text, ".") {
			if len(result)+len(sentence)+1 > maxReplyLength-20 {
				break
			}
			result += sentence + "."
		}
		if result != "" {
			text = strings.TrimSpace(result)
		} else {
			text = text[:maxReplyLength-20] + "..."
		}
	}
	return text
}

var commonTypos = map[string][]string{
	"the":     {"teh", "hte"},
	"and":     {"adn", "nad"},
	"you":     {"yuo", "yu"},
	"please":  {"plz", "pls", "pleas"},
	"what":    {"waht", "wht"},
	"this":    {"thsi", "tihs"},
	"that":    {"taht", "tht"},
	"have":    {"hav", "ahve"},
	"help":    {"hlep", "halp"},
	"account": {"accont", "acount"},
	"money":   {"mony", "monye"},
	"bank":    {"bakn", "bnk"},
}

// humanize occasionally injects a single realistic typo so replies read less
// machine-perfect.
func humanize(text string) string {
	if rand.Float64() > typoProbability {
		return text
	}

	words := strings.Fields(text)
	for i, word := range words {
		variants, ok := commonTypos[strings.ToLower(word)]
		if !ok {
			continue
		}
		typo := variants[rand.Intn(len(variants))]
		if word[0] >= 'A' && word[0] <= 'Z' {
			typo = strings.ToUpper(typo[:1]) + typo[1:]
		}
		words[i] = typo
		break
	}
	return strings.Join(words, " ")
}
