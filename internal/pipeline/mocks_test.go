package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/omelnyk/voiceledger/internal/llm"
)

// mockModel replays canned responses in call order.
type mockModel struct {
	responses []string
	errs      []error
	calls     int
	requests  []llm.Request
}

func (m *mockModel) Generate(ctx context.Context, req llm.Request) (string, error) {
	i := m.calls
	m.calls++
	m.requests = append(m.requests, req)

	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	var resp string
	if i < len(m.responses) {
		resp = m.responses[i]
	}
	return resp, err
}

// mockRates returns a fixed rate table or error and counts lookups.
type mockRates struct {
	table map[string]float64
	err   error
	calls int
	base  string
}

func (m *mockRates) Latest(ctx context.Context, base string) (map[string]float64, error) {
	m.calls++
	m.base = base
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

func newTestProcessor(model ModelService, rates RateSource) *Processor {
	return NewProcessor(model, rates, "PLN", zerolog.Nop())
}

func floatPtr(f float64) *float64 {
	return &f
}
