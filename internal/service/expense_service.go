package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService. Every create and
// delete recomputes the owning group's total inside the storage transaction.
type ExpenseService struct {
	store    storage.Store
	recorder *activity.Recorder
	metrics  *metrics.Metrics
}

func NewExpenseService(store storage.Store, recorder *activity.Recorder, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, recorder: recorder, metrics: m}
}

// CreateExpense records a payment. The date defaults to today. A payer who is
// not a group member is accepted and shows up as an ad-hoc balance entry.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupId,
		"paid_by", req.Msg.PaidBy,
		"amount", req.Msg.Amount.StringFixed(2),
	)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     req.Msg.GroupId,
		Description: strings.TrimSpace(req.Msg.Description),
		Amount:      calculator.Round2(req.Msg.Amount),
		PaidBy:      strings.TrimSpace(req.Msg.PaidBy),
		Date:        strings.TrimSpace(req.Msg.Date),
	}
	if err := expense.Validate(); err != nil {
		return nil, connectError(err)
	}
	if expense.Date == "" {
		expense.Date = models.Today()
	}

	group, err := s.store.CreateExpense(ctx, expense)
	if err != nil {
		slog.Error("CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return nil, connectError(err)
	}
	s.metrics.ExpenseRecorded()

	if !group.HasMember(expense.PaidBy) {
		slog.Warn("Expense payer is not a group member",
			"group_id", group.ID,
			"expense_id", expense.ID,
			"paid_by", expense.PaidBy,
		)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: group.ID,
		Kind:    models.ActivityExpenseAdded,
		Message: fmt.Sprintf("%s paid %s for %s", expense.PaidBy, expense.Amount.StringFixed(2), expense.Description),
		Amount:  expense.Amount,
	})

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"group_total", group.Total.StringFixed(2),
	)
	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense:    toAPIExpense(expense),
		GroupTotal: group.Total,
	}), nil
}

// ListExpenses returns a group's expenses ordered by date, then creation.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupId)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListExpenses failed - group not found", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i])
	}

	slog.Info("ListExpenses successful", "group_id", req.Msg.GroupId, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense and returns the group's new total.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseId)
	if err := requireID("expense_id", req.Msg.ExpenseId); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseId)
	if err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, connectError(err)
	}

	group, err := s.store.DeleteExpense(ctx, expense.ID)
	if err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: group.ID,
		Kind:    models.ActivityExpenseDeleted,
		Message: fmt.Sprintf("Deleted %s (%s paid %s)", expense.Description, expense.PaidBy, expense.Amount.StringFixed(2)),
		Amount:  expense.Amount,
	})

	slog.Info("Expense deleted",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"group_total", group.Total.StringFixed(2),
	)
	return connect.NewResponse(&api.DeleteExpenseResponse{GroupTotal: group.Total}), nil
}
