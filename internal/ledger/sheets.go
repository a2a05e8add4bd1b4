package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// The ledger sheet holds two disjoint logical tables: expenses occupy
// columns A-E, incomes columns G-I. The anchor passed to the append call
// decides which table a row lands in.
const (
	// ExpenseAnchor targets the 5-column expense layout
	// (date, amount, currency, category, description).
	ExpenseAnchor = "A1"

	// IncomeAnchor targets the 3-column income layout
	// (date, amount, source).
	IncomeAnchor = "G1"
)

// Row is an ordered value list together with the anchor naming the column
// range it must occupy. Values must exactly match the anchor's column span.
type Row struct {
	Anchor string
	Values []interface{}
}

// Client appends rows to a Google Sheets spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewClient builds a Sheets client authenticated with a service-account
// credentials file.
func NewClient(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: create sheets service: %w", err)
	}
	return NewClientWithService(svc, spreadsheetID, sheetName), nil
}

// NewClientWithService wraps an existing Sheets service. Used by tests to
// point the client at a fake endpoint.
func NewClientWithService(svc *sheets.Service, spreadsheetID, sheetName string) *Client {
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// Append adds the row to the logical table starting at its anchor. Values
// are written as USER_ENTERED so the sheet parses numbers and dates the way
// a typing user would.
func (c *Client) Append(ctx context.Context, row Row) error {
	if len(row.Values) == 0 {
		return fmt.Errorf("ledger: refusing to append empty row")
	}

	rangeRef := row.Anchor
	if c.sheetName != "" {
		rangeRef = fmt.Sprintf("%s!%s", c.sheetName, row.Anchor)
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{row.Values},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeRef, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ledger: appending row at %s: %w", rangeRef, err)
	}

	return nil
}
