package pipeline

import "time"

// TransactionKind is the two-valued classification of an input phrase.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"

	// KindError marks a pipeline-fatal result where the classified kind was
	// discarded because extraction itself failed (not just its parsing).
	KindError TransactionKind = "error"
)

// ExtractedFields is the intermediate record produced by the extractor.
// Exactly one of Expense or Income is set, matching Kind. Amount is nil when
// the model omitted it or returned something non-numeric.
type ExtractedFields struct {
	Kind     TransactionKind
	Amount   *float64
	Currency string

	Expense *ExpenseDetails
	Income  *IncomeDetails
}

// ExpenseDetails holds the expense-specific fields.
type ExpenseDetails struct {
	Category    string
	Description string
}

// IncomeDetails holds the income-specific fields.
type IncomeDetails struct {
	Source string
}

// Result is the pipeline's only output. On success it is the normalized
// record ready for assembly; on failure Err is non-empty and the remaining
// fields carry diagnostic defaults. The pipeline never returns a Go error
// past its boundary; the caller inspects Failed().
type Result struct {
	Kind        TransactionKind `json:"type"`
	Amount      *float64        `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Source      string          `json:"source,omitempty"`
	Description string          `json:"description,omitempty"`
	Timestamp   time.Time       `json:"-"`
	Err         string          `json:"error,omitempty"`
}

// Failed reports whether the pipeline run ended in a designed error result.
func (r Result) Failed() bool {
	return r.Err != ""
}
