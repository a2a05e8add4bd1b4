package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/omelnyk/voiceledger/internal/ledger"
)

// The scenarios below exercise the full classify-extract-normalize-assemble
// sequence against mocked model and rate services.

func TestProcess_ExpenseAlreadyInReferenceCurrency(t *testing.T) {
	model := &mockModel{responses: []string{
		"expense",
		`{"amount": 15, "currency": "PLN", "category": "доп їжа", "description": "кава"}`,
	}}
	rates := &mockRates{table: map[string]float64{"PLN": 1.0}}
	p := newTestProcessor(model, rates)
	p.now = func() time.Time { return time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC) }

	res := p.Process(context.Background(), "Bought coffee for 15 PLN")

	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Err)
	}
	if res.Kind != KindExpense {
		t.Errorf("Kind = %q, want expense", res.Kind)
	}
	if res.Amount == nil || *res.Amount != 15 {
		t.Errorf("Amount = %v, want 15", res.Amount)
	}
	if res.Currency != "PLN" {
		t.Errorf("Currency = %q, want PLN", res.Currency)
	}
	if res.Category != "доп їжа" {
		t.Errorf("Category = %q, want доп їжа", res.Category)
	}
	if rates.calls != 0 {
		t.Errorf("rate service called %d times, want 0 (already reference currency)", rates.calls)
	}

	row := AssembleRow(res)
	if row.Anchor != ledger.ExpenseAnchor || len(row.Values) != 5 {
		t.Errorf("row = %+v, want 5 values at the expense anchor", row)
	}
	if row.Values[0] != "2024-03-09 14:30:05" {
		t.Errorf("timestamp cell = %v", row.Values[0])
	}
}

func TestProcess_IncomeWithConversion(t *testing.T) {
	model := &mockModel{responses: []string{
		"income",
		`{"amount": 500, "currency": "USD", "source": "freelancing"}`,
	}}
	rates := &mockRates{table: map[string]float64{"PLN": 4.0}}
	p := newTestProcessor(model, rates)

	res := p.Process(context.Background(), "Earned 500 dollars from freelancing")

	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Err)
	}
	if res.Kind != KindIncome {
		t.Errorf("Kind = %q, want income", res.Kind)
	}
	if res.Amount == nil || *res.Amount != 2000 {
		t.Errorf("Amount = %v, want 2000", res.Amount)
	}
	if res.Currency != "PLN" {
		t.Errorf("Currency = %q, want PLN", res.Currency)
	}
	if res.Source != "freelancing" {
		t.Errorf("Source = %q, want freelancing", res.Source)
	}
	if rates.base != "USD" {
		t.Errorf("rate lookup base = %q, want USD", rates.base)
	}

	row := AssembleRow(res)
	if row.Anchor != ledger.IncomeAnchor || len(row.Values) != 3 {
		t.Errorf("row = %+v, want 3 values at the income anchor", row)
	}
	if row.Values[1] != 2000.0 || row.Values[2] != "freelancing" {
		t.Errorf("row values = %v", row.Values)
	}
}

func TestProcess_RateServiceFailureFallsBack(t *testing.T) {
	model := &mockModel{responses: []string{
		"expense",
		`{"amount": 30, "currency": "EUR", "category": "Ресторан", "description": "обід у кафе"}`,
	}}
	rates := &mockRates{err: errors.New("rates: service error for EUR: quota-reached")}
	p := newTestProcessor(model, rates)

	res := p.Process(context.Background(), "Обід у ресторані за 30 євро")

	if res.Failed() {
		t.Fatalf("rate failure must not fail the request: %s", res.Err)
	}
	if res.Amount == nil || *res.Amount != 30 {
		t.Errorf("Amount = %v, want original 30", res.Amount)
	}
	if res.Currency != "EUR" {
		t.Errorf("Currency = %q, want original EUR", res.Currency)
	}
}

func TestProcess_UnparseableExtractionKeepsClassifiedKind(t *testing.T) {
	raw := "I'm sorry, that does not look like a transaction"
	model := &mockModel{responses: []string{"income", raw}}
	p := newTestProcessor(model, &mockRates{})

	res := p.Process(context.Background(), "something confusing")

	if !res.Failed() {
		t.Fatal("expected a failed result")
	}
	if res.Kind != KindIncome {
		t.Errorf("Kind = %q, want the classified kind income", res.Kind)
	}
	if !strings.Contains(res.Err, raw) {
		t.Errorf("Err = %q, must contain the raw response", res.Err)
	}
	if res.Timestamp.IsZero() {
		t.Error("failure results still carry a capture timestamp")
	}
}

func TestProcess_StagesRunInOrder(t *testing.T) {
	model := &mockModel{responses: []string{
		"expense",
		`{"amount": 10, "currency": "PLN", "category": "інше"}`,
	}}
	p := newTestProcessor(model, &mockRates{})

	p.Process(context.Background(), "десять злотих на щось")

	if model.calls != 2 {
		t.Fatalf("model called %d times, want 2 (classify then extract)", model.calls)
	}
	if !strings.Contains(model.requests[0].Prompt, "'expense' or 'income'") {
		t.Errorf("first call is not the classification prompt: %q", model.requests[0].Prompt)
	}
	if !strings.Contains(model.requests[1].Prompt, "category") {
		t.Errorf("second call is not the extraction prompt: %q", model.requests[1].Prompt)
	}
}
