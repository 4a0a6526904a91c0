package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/expense/store"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
)

type expenseBody struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

type summaryBody struct {
	Count      int    `json:"count"`
	Total      string `json:"total"`
	ByCategory []struct {
		Category string `json:"category"`
		Total    string `json:"total"`
	} `json:"by_category"`
}

func newServer(t *testing.T) (*httptest.Server, *expense.Service) {
	t.Helper()

	svc := expense.NewService(store.NewMemory())
	ts := httptest.NewServer(tallyHttp.New(expenseHandler.NewHandler(svc), []string{"*"}))
	t.Cleanup(ts.Close)

	return ts, svc
}

func postExpense(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(ts.URL+"/api/v1/expenses", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestExpenses_CreateAndList(t *testing.T) {
	ts, _ := newServer(t)

	resp := postExpense(t, ts, `{"description":"Coffee","amount":"4.50","category":"Food"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created expenseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "4.50", created.Amount)
	assert.Equal(t, "Food", created.Category)
	assert.Len(t, created.Date, len("2006-01-02"))

	postExpense(t, ts, `{"description":"Bus","amount":"2.00","category":"Transport"}`)

	listResp, err := http.Get(ts.URL + "/api/v1/expenses")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list []expenseBody
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "Bus", list[0].Description)
	assert.Equal(t, "Coffee", list[1].Description)
}

func TestExpenses_CreateInvalid(t *testing.T) {
	ts, svc := newServer(t)

	tests := map[string]string{
		"EmptyDescription": `{"description":"","amount":"4.50","category":"Food"}`,
		"EmptyAmount":      `{"description":"Coffee","amount":"","category":"Food"}`,
		"BadAmount":        `{"description":"Coffee","amount":"abc","category":"Food"}`,
		"BadCategory":      `{"description":"Coffee","amount":"1","category":"Pets"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := postExpense(t, ts, body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		})
	}

	resp := postExpense(t, ts, `{"description":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, svc.List())
}

func TestExpenses_CreateDefaultsCategory(t *testing.T) {
	ts, svc := newServer(t)

	resp := postExpense(t, ts, `{"description":"Snack","amount":"1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, svc.List(), 1)
	assert.Equal(t, expense.DefaultCategory, svc.List()[0].Category)
}

func TestExpenses_GetAndDelete(t *testing.T) {
	ts, svc := newServer(t)

	e, err := svc.Add(context.Background(), expense.AddParams{Description: "Coffee", Amount: "4.50", Category: expense.CategoryFood})
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/v1/expenses/" + e.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, id := range []string{"unknown", e.ID} {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/expenses/"+id, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	assert.Empty(t, svc.List())

	resp, err = http.Get(ts.URL + "/api/v1/expenses/" + e.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	ts, svc := newServer(t)
	ctx := context.Background()

	for _, p := range []expense.AddParams{
		{Description: "Lunch", Amount: "10", Category: expense.CategoryFood},
		{Description: "Dinner", Amount: "15", Category: expense.CategoryFood},
		{Description: "Bus", Amount: "2.00", Category: expense.CategoryTransport},
	} {
		_, err := svc.Add(ctx, p)
		require.NoError(t, err)
	}

	resp, err := http.Get(ts.URL + "/api/v1/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got summaryBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "27.00", got.Total)
	require.Len(t, got.ByCategory, 2)
	assert.Equal(t, "Food", got.ByCategory[0].Category)
	assert.Equal(t, "25.00", got.ByCategory[0].Total)
	assert.Equal(t, "Transport", got.ByCategory[1].Category)
}

func TestSummary_Empty(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got summaryBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 0, got.Count)
	assert.Equal(t, "0.00", got.Total)
	assert.Empty(t, got.ByCategory)
}

func TestCategories(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/categories")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"Food", "Transport", "Shopping", "Entertainment", "Bills", "Other"}, got)
}
