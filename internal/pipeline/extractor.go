package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/omelnyk/voiceledger/internal/llm"
)

// errorCategory marks the category/source fields of a designed error result.
const errorCategory = "Error"

// extract sends the kind-specific structured-extraction instruction and
// parses the response into an ExtractedFields record. Two distinct failure
// shapes come back as a *Result instead:
//   - the model call itself fails: the classified kind is discarded and the
//     result carries KindError (pipeline-fatal),
//   - the response is not decodable JSON: the result keeps the classified
//     kind and embeds the raw response text for diagnosis, without retrying.
func (p *Processor) extract(ctx context.Context, text string, kind TransactionKind) (*ExtractedFields, *Result) {
	prompt := incomeDetailsPrompt(text)
	if kind == KindExpense {
		prompt = expenseDetailsPrompt(text)
	}

	raw, err := p.model.Generate(ctx, llm.Request{Prompt: prompt, ForceJSON: true})
	if err != nil {
		p.log.Error().Err(err).Str("kind", string(kind)).Msg("Extraction call failed")
		zero := float64(0)
		return nil, &Result{
			Kind:        KindError,
			Amount:      &zero,
			Category:    errorCategory,
			Source:      errorCategory,
			Description: "Processing Error: " + err.Error(),
			Err:         err.Error(),
		}
	}
	raw = strings.TrimSpace(raw)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &obj); err != nil {
		p.log.Error().Str("raw", raw).Msg("Model returned non-decodable JSON")
		zero := float64(0)
		return nil, &Result{
			Kind:        kind,
			Amount:      &zero,
			Category:    errorCategory,
			Description: "Parsing Error: " + raw,
			Err:         "invalid JSON from model: " + raw,
		}
	}

	fields := &ExtractedFields{
		Kind:     kind,
		Amount:   optionalNumber(obj, "amount"),
		Currency: currencyOrDefault(obj, p.refCurrency),
	}
	if kind == KindExpense {
		fields.Expense = &ExpenseDetails{
			Category:    optionalString(obj, "category"),
			Description: optionalString(obj, "description"),
		}
	} else {
		fields.Income = &IncomeDetails{
			Source: optionalString(obj, "source"),
		}
	}

	p.log.Info().
		Str("kind", string(kind)).
		Str("currency", fields.Currency).
		Msg("Extracted transaction fields")

	return fields, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the JSON-only instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only the first '{' through the last '}' if junk remains.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

// optionalNumber reads a numeric field permissively: absent or non-numeric
// values map to nil and are later treated as non-convertible.
func optionalNumber(m map[string]interface{}, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

func optionalString(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// currencyOrDefault reads the currency code, falling back to the reference
// currency when absent, and case-normalizes it.
func currencyOrDefault(m map[string]interface{}, def string) string {
	cur := optionalString(m, "currency")
	if cur == "" {
		cur = def
	}
	return strings.ToUpper(cur)
}
