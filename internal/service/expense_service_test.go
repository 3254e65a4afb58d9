package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func TestCreateExpense(t *testing.T) {
	env := setupTestServer(t)
	group := env.createGroup(t, "Trip", "Maria", "Tomas")

	resp, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:     group.Id,
		Description: " Hotel ",
		Amount:      decimal.RequireFromString("450.50"),
		PaidBy:      "Maria",
		Date:        "2024-07-01",
	}))
	require.NoError(t, err)

	e := resp.Msg.Expense
	assert.NotEmpty(t, e.Id)
	assert.Equal(t, group.Id, e.GroupId)
	assert.Equal(t, "Hotel", e.Description)
	assertMoney(t, "450.50", e.Amount)
	assert.Equal(t, "2024-07-01", e.Date)
	assertMoney(t, "450.50", resp.Msg.GroupTotal)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ExpensesRecorded))
}

func TestCreateExpense_DefaultsDateToToday(t *testing.T) {
	env := setupTestServer(t)
	group := env.createGroup(t, "Trip", "Maria")

	resp := env.addExpense(t, group.Id, "Maria", "10", "Bus")

	assert.Equal(t, models.Today(), resp.Expense.Date)
}

func TestCreateExpense_Validation(t *testing.T) {
	env := setupTestServer(t)
	group := env.createGroup(t, "Trip", "Maria")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
		code connect.Code
	}{
		{
			name: "negative amount",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Description: "Refund", Amount: decimal.RequireFromString("-5"), PaidBy: "Maria"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "empty description",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Amount: decimal.RequireFromString("5"), PaidBy: "Maria"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "empty payer",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Description: "Tea", Amount: decimal.RequireFromString("5")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "bad date",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Description: "Tea", Amount: decimal.RequireFromString("5"), PaidBy: "Maria", Date: "01/07/2024"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "amount above maximum",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Description: "Yacht", Amount: decimal.RequireFromString("1000000000000.01"), PaidBy: "Maria"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "amount overflowing cents",
			req:  &api.CreateExpenseRequest{GroupId: group.Id, Description: "Yacht", Amount: decimal.RequireFromString("184467440737095516.16"), PaidBy: "Maria"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "missing group id",
			req:  &api.CreateExpenseRequest{Description: "Tea", Amount: decimal.RequireFromString("5"), PaidBy: "Maria"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown group",
			req:  &api.CreateExpenseRequest{GroupId: "nonexistent-id", Description: "Tea", Amount: decimal.RequireFromString("5"), PaidBy: "Maria"},
			code: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(tt.req))
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}

	assert.Equal(t, 0.0, testutil.ToFloat64(env.metrics.ExpensesRecorded))
}

func TestCreateExpense_RejectedAmountLeavesTotalUntouched(t *testing.T) {
	env := setupTestServer(t)
	group := env.createGroup(t, "Trip", "A", "B")
	env.addExpense(t, group.Id, "A", "20", "Taxi")

	_, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:     group.Id,
		Description: "Yacht",
		Amount:      decimal.RequireFromString("184467440737095516.16"),
		PaidBy:      "A",
	}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	b := env.balances(t, group.Id)
	assertMoney(t, "20.00", b.Total)
	assert.Equal(t, map[string]string{"A": "10.00", "B": "-10.00"}, netByMember(b.MemberBalances))
}

func TestCreateExpense_AmountRoundedToCents(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := env.createGroup(t, "Trip", "Maria")

	created := env.addExpense(t, group.Id, "Maria", "10.005", "Snacks")
	assert.True(t, decimal.RequireFromString("10.01").Equal(created.Expense.Amount), "echoed %s", created.Expense.Amount)
	assert.True(t, decimal.RequireFromString("10.01").Equal(created.GroupTotal), "total %s", created.GroupTotal)

	list, err := env.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 1)
	assert.True(t, created.Expense.Amount.Equal(list.Msg.Expenses[0].Amount))
}

func TestCreateExpense_ZeroAmountAllowed(t *testing.T) {
	env := setupTestServer(t)
	group := env.createGroup(t, "Trip", "Maria")

	resp := env.addExpense(t, group.Id, "Maria", "0", "Free museum")
	assertMoney(t, "0.00", resp.GroupTotal)
}

func TestGroupTotalTracksExpenses(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := env.createGroup(t, "Trip", "Maria", "Tomas")

	env.addExpense(t, group.Id, "Maria", "450.50", "Hotel")
	flight := env.addExpense(t, group.Id, "Tomas", "800", "Flight")
	assertMoney(t, "1250.50", flight.GroupTotal)

	got, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupId: group.Id}))
	require.NoError(t, err)
	assertMoney(t, "1250.50", got.Msg.Group.Total)

	del, err := env.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseId: flight.Expense.Id}))
	require.NoError(t, err)
	assertMoney(t, "450.50", del.Msg.GroupTotal)

	b := env.balances(t, group.Id)
	assertMoney(t, "225.25", b.Share)
	assert.Equal(t, map[string]string{"Maria": "225.25", "Tomas": "-225.25"}, netByMember(b.MemberBalances))
}

func TestListExpenses(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := env.createGroup(t, "Trip", "Maria", "Tomas")

	for _, e := range []struct{ date, desc string }{
		{"2024-07-03", "Dinner"},
		{"2024-07-01", "Hotel"},
		{"2024-07-02", "Museum"},
	} {
		_, err := env.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
			GroupId:     group.Id,
			Description: e.desc,
			Amount:      decimal.RequireFromString("10"),
			PaidBy:      "Maria",
			Date:        e.date,
		}))
		require.NoError(t, err)
	}

	resp, err := env.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: group.Id}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Expenses, 3)
	assert.Equal(t, "Hotel", resp.Msg.Expenses[0].Description)
	assert.Equal(t, "Museum", resp.Msg.Expenses[1].Description)
	assert.Equal(t, "Dinner", resp.Msg.Expenses[2].Description)

	_, err = env.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupId: "nonexistent-id"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestDeleteExpense_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.expenses.DeleteExpense(context.Background(), connect.NewRequest(&api.DeleteExpenseRequest{
		ExpenseId: "nonexistent-id",
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
