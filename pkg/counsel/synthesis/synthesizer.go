// Package synthesis wraps the model call that turns an evidence bundle into a
// natural-language answer.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"

	"genegpt-be/pkg/llm"
	"genegpt-be/pkg/store"
)

// personaInstructions is the external contract with the model: factual claims
// come only from the supplied evidence, and the assistant never diagnoses.
const personaInstructions = `You are GeneGPT, a careful genetics counselor assistant.

Rules:
1. Base every factual claim ONLY on the EVIDENCE JSON provided below. If the evidence does not support a claim, say so plainly instead of guessing.
2. Never give a diagnosis. Never tell the user whether they have or will develop a disease. Encourage them to discuss results with a clinician or genetic counselor.
3. When a source was not used (used=false), do not cite it or invent content for it.
4. Be warm and clear. Explain technical terms (pathogenic, VUS, inheritance) in plain language.
5. Keep the answer focused on the user's question.`

type Synthesizer struct {
	provider llm.Provider
	opts     []llm.Option
}

func NewSynthesizer(provider llm.Provider, opts ...llm.Option) *Synthesizer {
	return &Synthesizer{provider: provider, opts: opts}
}

// Generate runs the synthesis call. Recent session turns are included so
// follow-up answers stay coherent; evidenceJSON is any serializable bundle
// view. Errors here are fatal to the turn.
func (s *Synthesizer) Generate(ctx context.Context, question string, history []store.Turn, evidenceJSON any) (*llm.Completion, error) {
	evidenceBytes, err := json.Marshal(evidenceJSON)
	if err != nil {
		return nil, fmt.Errorf("marshal evidence: %w", err)
	}

	messages := []llm.Message{
		{Role: "system", Content: personaInstructions + "\n\nEVIDENCE JSON:\n" + string(evidenceBytes)},
	}
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})

	completion, err := s.provider.Chat(ctx, messages, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("synthesis call failed: %w", err)
	}
	return completion, nil
}
