package pipeline

import (
	"github.com/omelnyk/voiceledger/internal/ledger"
)

// rowTimeLayout is the capture-time format written into the first column.
const rowTimeLayout = "2006-01-02 15:04:05"

// AssembleRow projects a successful Result into the kind-specific positional
// row. Expenses fill the 5-column layout at the expense anchor; incomes fill
// the 3-column layout at the income anchor. No validation happens here:
// absent fields pass through as empty values.
func AssembleRow(res Result) ledger.Row {
	ts := res.Timestamp.Format(rowTimeLayout)

	if res.Kind == KindIncome {
		return ledger.Row{
			Anchor: ledger.IncomeAnchor,
			Values: []interface{}{ts, amountCell(res.Amount), res.Source},
		}
	}

	return ledger.Row{
		Anchor: ledger.ExpenseAnchor,
		Values: []interface{}{ts, amountCell(res.Amount), res.Currency, res.Category, res.Description},
	}
}

// amountCell renders an absent amount as an empty cell.
func amountCell(amount *float64) interface{} {
	if amount == nil {
		return ""
	}
	return *amount
}
