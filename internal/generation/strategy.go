package generation

import "context"

// Provider names reported in Outcome.ProviderUsed.
const (
	ProviderGrok   = "grok"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Strategy is one stage of the generation chain.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, req Request) (map[string]any, error)
}

// Completer is a chat-completion backend that returns a decoded JSON object.
// *provider.Client satisfies it.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, user string) (map[string]any, error)
}

// ChatStrategy adapts a Completer into a Strategy using the built-in prompts.
type ChatStrategy struct {
	completer Completer
}

// NewChatStrategy wraps completer.
func NewChatStrategy(completer Completer) *ChatStrategy {
	return &ChatStrategy{completer: completer}
}

// Name reports the completer name.
func (s *ChatStrategy) Name() string { return s.completer.Name() }

// Attempt prompts the completer for req.
func (s *ChatStrategy) Attempt(ctx context.Context, req Request) (map[string]any, error) {
	system, user := BuildPrompt(req)
	return s.completer.Complete(ctx, system, user)
}
