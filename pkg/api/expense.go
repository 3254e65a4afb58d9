package api

import "github.com/shopspring/decimal"

type Expense struct {
	Id          string          `json:"id"`
	GroupId     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	Date        string          `json:"date"`
	CreatedAt   int64           `json:"created_at"`
}

type CreateExpenseRequest struct {
	GroupId     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	Date        string          `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

type CreateExpenseResponse struct {
	Expense    *Expense        `json:"expense"`
	GroupTotal decimal.Decimal `json:"group_total"`
}

type ListExpensesRequest struct {
	GroupId string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseId string `json:"expense_id"`
}

type DeleteExpenseResponse struct {
	GroupTotal decimal.Decimal `json:"group_total"`
}
