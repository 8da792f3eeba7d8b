// ABOUTME: Generator issues the LLM call for one avatar turn and scores the result
// ABOUTME: Falls back to a fixed empathetic sentence when the provider fails

package coach

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brezcode/coach/internal/llm"
	"github.com/brezcode/coach/internal/models"
)

// FallbackResponse is returned when the LLM call fails after retries.
// The conversation continues; the failure is logged, not surfaced.
const FallbackResponse = "I hear you, and what you're feeling matters. " +
	"I'm having trouble gathering my thoughts right now, but please tell me more. " +
	"If something about your health is worrying you, reaching out to a healthcare professional is always a good step."

// maxResponseTokens bounds a single avatar reply.
const maxResponseTokens = 1024

// AvatarResponse is one generated avatar turn with its heuristic scores.
type AvatarResponse struct {
	Content  string
	Scores   ScoreSet
	Model    string
	Fallback bool
}

// Generator produces avatar responses through an LLM provider.
type Generator struct {
	provider llm.Provider
	scorer   Scorer
	log      *logrus.Logger
}

// NewGenerator creates a generator over the given provider and scorer.
func NewGenerator(provider llm.Provider, scorer Scorer, log *logrus.Logger) *Generator {
	return &Generator{provider: provider, scorer: scorer, log: log}
}

// Respond issues one LLM call with the assembled prompt and returns the
// scored response. Provider failures produce the fallback sentence.
func (g *Generator) Respond(ctx context.Context, prompt string) *AvatarResponse {
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: maxResponseTokens,
	})
	if err != nil {
		g.log.WithError(err).Warn("avatar response generation failed, using fallback")
		return &AvatarResponse{
			Content:  FallbackResponse,
			Scores:   g.scorer.Score(FallbackResponse),
			Model:    g.provider.ModelID(),
			Fallback: true,
		}
	}

	return &AvatarResponse{
		Content: resp.Content,
		Scores:  g.scorer.Score(resp.Content),
		Model:   resp.Model,
	}
}

// Revise asks the provider for an improved version of a prior answer
// given the user's feedback. Unlike Respond, a provider failure here is
// returned as an error so the original answer stays authoritative.
func (g *Generator) Revise(ctx context.Context, persona models.Persona, question, original, feedback string) (*AvatarResponse, error) {
	prompt := fmt.Sprintf(
		"A customer asked:\n%s\n\nYou answered:\n%s\n\nThe customer gave this feedback:\n%s\n\n"+
			"Write an improved answer that addresses the feedback. Reply with the improved answer only.",
		question, original, feedback,
	)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:    persona.SystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: maxResponseTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating revision: %w", err)
	}

	return &AvatarResponse{
		Content: resp.Content,
		Scores:  g.scorer.Score(resp.Content),
		Model:   resp.Model,
	}, nil
}
