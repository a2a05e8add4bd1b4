package pipeline

import (
	"context"
	"strings"

	"github.com/omelnyk/voiceledger/internal/llm"
)

// classifyMaxTokens caps the classification response; only one word is
// expected back.
const classifyMaxTokens = 10

// classify resolves the input phrase to one of the two transaction kinds.
// Any model failure or out-of-set answer defaults to expense, the assumed
// common case. This stage never fails.
func (p *Processor) classify(ctx context.Context, text string) TransactionKind {
	raw, err := p.model.Generate(ctx, llm.Request{
		Prompt:          classifyPrompt(text),
		MaxOutputTokens: classifyMaxTokens,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("Classification call failed, defaulting to expense")
		return KindExpense
	}

	kind := TransactionKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindExpense, KindIncome:
		p.log.Info().Str("kind", string(kind)).Msg("Classified transaction")
		return kind
	default:
		p.log.Warn().Str("response", raw).Msg("Unexpected transaction kind from model, defaulting to expense")
		return KindExpense
	}
}
