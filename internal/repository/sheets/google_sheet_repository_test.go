package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

type appendCall struct {
	path   string
	query  map[string]string
	values [][]interface{}
}

func newTestRepository(t *testing.T, status int) (*GoogleSheetRepository, *[]appendCall) {
	t.Helper()

	var calls []appendCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, appendCall{
			path: r.URL.Path,
			query: map[string]string{
				"valueInputOption": r.URL.Query().Get("valueInputOption"),
				"insertDataOption": r.URL.Query().Get("insertDataOption"),
			},
			values: body.Values,
		})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	repo, err := newRepository(context.Background(), "sheet-123", nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Failed to build repository: %v", err)
	}
	return repo, &calls
}

func TestAppendRows(t *testing.T) {
	repo, calls := newTestRepository(t, http.StatusOK)

	rows := [][]interface{}{{"2025-06-01", "ORD-1", "Cliente", "Costilla (BATCH-1)", 5.0, 600.0}}
	if err := repo.AppendRows(context.Background(), "Sales!A:F", rows); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(*calls))
	}
	call := (*calls)[0]
	if !strings.Contains(call.path, "sheet-123") || !strings.HasSuffix(call.path, ":append") {
		t.Errorf("Unexpected request path %s", call.path)
	}
	if call.query["valueInputOption"] != "USER_ENTERED" || call.query["insertDataOption"] != "INSERT_ROWS" {
		t.Errorf("Unexpected options %v", call.query)
	}
	if len(call.values) != 1 || call.values[0][1] != "ORD-1" {
		t.Errorf("Expected the order row in the payload, got %v", call.values)
	}
}

func TestAppendRows_NoRowsSkipsRequest(t *testing.T) {
	repo, calls := newTestRepository(t, http.StatusOK)

	if err := repo.AppendRows(context.Background(), "Sales!A:F", nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no request, got %d", len(*calls))
	}
}

func TestAppendRows_EmptyRange(t *testing.T) {
	repo, _ := newTestRepository(t, http.StatusOK)

	if err := repo.AppendRows(context.Background(), "", [][]interface{}{{"x"}}); err == nil {
		t.Error("Expected error for empty range")
	}
}

func TestAppendRows_APIError(t *testing.T) {
	repo, _ := newTestRepository(t, http.StatusForbidden)

	if err := repo.AppendRows(context.Background(), "Reports!A:G", [][]interface{}{{"x"}}); err == nil {
		t.Error("Expected API error to be returned")
	}
}
