package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newFakeSheets(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	return NewClientWithService(svc, "sheet-id", "Sheet1"), srv
}

func TestAppend_ExpenseRow(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody struct {
		Values [][]interface{} `json:"values"`
	}

	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	row := Row{
		Anchor: ExpenseAnchor,
		Values: []interface{}{"2024-01-01 12:00:00", 15.0, "PLN", "доп їжа", "кава"},
	}
	require.NoError(t, client.Append(context.Background(), row))

	assert.Contains(t, gotPath, "spreadsheets/sheet-id/values/")
	assert.Contains(t, gotPath, "Sheet1!A1")
	assert.Contains(t, gotQuery, "valueInputOption=USER_ENTERED")
	assert.Contains(t, gotQuery, "insertDataOption=INSERT_ROWS")

	require.Len(t, gotBody.Values, 1)
	require.Len(t, gotBody.Values[0], 5)
	assert.Equal(t, "доп їжа", gotBody.Values[0][3])
}

func TestAppend_IncomeRowUsesIncomeAnchor(t *testing.T) {
	var gotPath string
	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	row := Row{
		Anchor: IncomeAnchor,
		Values: []interface{}{"2024-01-01 12:00:00", 2000.0, "freelancing"},
	}
	require.NoError(t, client.Append(context.Background(), row))

	assert.True(t, strings.Contains(gotPath, "Sheet1!G1"), "path = %s", gotPath)
}

func TestAppend_EmptyRow(t *testing.T) {
	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty row")
	})

	err := client.Append(context.Background(), Row{Anchor: ExpenseAnchor})
	require.Error(t, err)
}

func TestAppend_ServerError(t *testing.T) {
	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"internal"}}`, http.StatusInternalServerError)
	})

	row := Row{
		Anchor: ExpenseAnchor,
		Values: []interface{}{"2024-01-01 12:00:00", 15.0, "PLN", "інше", ""},
	}
	err := client.Append(context.Background(), row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appending row")
}
