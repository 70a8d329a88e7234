package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NamedEntry is one card suggestion from the model: a name, the role
// it is meant to fill, and a short rationale. Names are unverified
// until resolved against real card data.
type NamedEntry struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// SkeletonRequest describes the deck to sketch.
type SkeletonRequest struct {
	CommanderName string
	ColorIdentity []string
	Theme         string
	CardCount     int
}

// ReplacementRequest asks for a substitute for a card that failed
// validation.
type ReplacementRequest struct {
	CommanderName string
	ColorIdentity []string
	Theme         string
	RejectedName  string
	Reason        string
	ExistingNames []string
}

// Chatter is the LLM surface the deck generator needs.
type Chatter interface {
	Chat(ctx context.Context, messages []ChatMessage, options *GenerateOptions) (*ChatResponse, error)
}

// DeckGenerator turns deck briefs into card name suggestions.
type DeckGenerator struct {
	client Chatter
	logger *zap.Logger
}

// NewDeckGenerator creates a generator. A nil logger disables logging.
func NewDeckGenerator(client Chatter, logger *zap.Logger) *DeckGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckGenerator{client: client, logger: logger}
}

const systemPrompt = `You are a Magic: The Gathering Commander deck building assistant.
You respond with JSON only. No markdown, no prose outside the JSON.
Every card you suggest must be a real Magic card legal in Commander and
inside the commander's color identity.`

// GenerateSkeleton asks the model for a full mainboard sketch.
func (g *DeckGenerator) GenerateSkeleton(ctx context.Context, req SkeletonRequest) ([]NamedEntry, error) {
	if req.CommanderName == "" {
		return nil, fmt.Errorf("commander name is required")
	}
	if req.CardCount <= 0 {
		req.CardCount = 99
	}

	colors := strings.Join(req.ColorIdentity, "")
	if colors == "" {
		colors = "colorless"
	}
	theme := req.Theme
	if theme == "" {
		theme = "a coherent strategy built around the commander"
	}

	prompt := fmt.Sprintf(`Build a %d-card Commander mainboard for %s (color identity: %s).
Theme: %s.
Include roughly 36 lands, 10 ramp cards, 10 card draw sources and 8 removal spells.
Respond with a JSON array of exactly %d objects:
[{"name": "Card Name", "category": "Lands|Creatures|Artifacts|Enchantments|Planeswalkers|Instants|Sorceries|Other", "reason": "one short sentence"}]`,
		req.CardCount, req.CommanderName, colors, theme, req.CardCount)

	resp, err := g.client.Chat(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, &GenerateOptions{Temperature: 0.7})
	if err != nil {
		return nil, fmt.Errorf("skeleton generation: %w", err)
	}

	entries, err := parseEntries(resp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("skeleton generation: %w", err)
	}

	g.logger.Debug("skeleton generated",
		zap.String("commander", req.CommanderName),
		zap.Int("entries", len(entries)))
	return entries, nil
}

// ProposeReplacement asks the model for one substitute card. The
// existing names are sent along so the suggestion does not collide
// with the singleton rule.
func (g *DeckGenerator) ProposeReplacement(ctx context.Context, req ReplacementRequest) (NamedEntry, error) {
	if req.RejectedName == "" {
		return NamedEntry{}, fmt.Errorf("rejected card name is required")
	}

	colors := strings.Join(req.ColorIdentity, "")
	if colors == "" {
		colors = "colorless"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "In a %s Commander deck (color identity: %s), the card %q was rejected: %s.\n",
		req.CommanderName, colors, req.RejectedName, req.Reason)
	if req.Theme != "" {
		fmt.Fprintf(&sb, "Deck theme: %s.\n", req.Theme)
	}
	if len(req.ExistingNames) > 0 {
		fmt.Fprintf(&sb, "Do not suggest any of these cards already in the deck: %s.\n",
			strings.Join(req.ExistingNames, "; "))
	}
	sb.WriteString(`Suggest one replacement filling the same role.
Respond with a single JSON object: {"name": "Card Name", "category": "...", "reason": "one short sentence"}`)

	resp, err := g.client.Chat(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: sb.String()},
	}, &GenerateOptions{Temperature: 0.5})
	if err != nil {
		return NamedEntry{}, fmt.Errorf("replacement generation: %w", err)
	}

	entry, err := parseEntry(resp.Message.Content)
	if err != nil {
		return NamedEntry{}, fmt.Errorf("replacement generation: %w", err)
	}
	return entry, nil
}
