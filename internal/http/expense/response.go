package expense

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type expenseResponse struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Amount      string           `json:"amount"`
	Category    expense.Category `json:"category"`
	Date        string           `json:"date"`
}

type categoryTotalResponse struct {
	Category expense.Category `json:"category"`
	Total    string           `json:"total"`
}

type summaryResponse struct {
	Count      int                     `json:"count"`
	Total      string                  `json:"total"`
	ByCategory []categoryTotalResponse `json:"by_category"`
}

func toResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      expense.AmountText(e.Amount),
		Category:    e.Category,
		Date:        e.Date.Format(time.DateOnly),
	}
}

func toResponseList(expenses []expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}

func toSummaryResponse(s expense.Summary) summaryResponse {
	resp := summaryResponse{
		Count:      s.Count,
		Total:      s.Total.StringFixed(2),
		ByCategory: make([]categoryTotalResponse, len(s.ByCategory)),
	}

	for i, ct := range s.ByCategory {
		resp.ByCategory[i] = categoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total.StringFixed(2),
		}
	}

	return resp
}
