// Package service implements the settleup.v1 Connect services on top of the
// storage layer and the settlement calculator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

var errMissingID = errors.New("id required")

var validationErrors = []error{
	models.ErrEmptyName,
	models.ErrEmptyMember,
	models.ErrEmptyDescription,
	models.ErrEmptyPayer,
	models.ErrInvalidAmount,
	models.ErrAmountTooLarge,
	models.ErrNonPositive,
	models.ErrInvalidDate,
	models.ErrSameParty,
	errMissingID,
}

// connectError maps domain and storage errors to Connect codes.
func connectError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}

func requireID(field, id string) error {
	if id == "" {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", field, errMissingID))
	}
	return nil
}

// recordActivity stamps the caller as actor and records a. The mutation it
// describes has already committed, so failures are logged and swallowed.
func recordActivity(ctx context.Context, recorder *activity.Recorder, a models.Activity) {
	if recorder == nil {
		return
	}
	a.Actor = middleware.GetUserID(ctx)
	if err := recorder.Record(ctx, a); err != nil {
		slog.Error("Failed to record activity", "group_id", a.GroupID, "kind", a.Kind, "error", err)
	}
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		Total:     g.Total,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:          e.ID,
		GroupId:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		Id:        s.ID,
		GroupId:   s.GroupID,
		From:      s.From,
		To:        s.To,
		Amount:    s.Amount,
		Note:      s.Note,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   timestamppb.New(unixTime(u.CreatedAt)),
	}
}

func toAPIBalances(b calculator.Balances) []*api.MemberBalance {
	out := make([]*api.MemberBalance, 0, b.Len())
	for _, e := range b.Entries() {
		out = append(out, &api.MemberBalance{
			MemberName: e.Member,
			NetBalance: e.Net,
			TotalPaid:  calculator.Round2(e.Paid),
			TotalOwed:  e.Owed,
			AdHoc:      e.AdHoc,
		})
	}
	return out
}

func toAPIInstructions(instructions []calculator.Instruction) []*api.SettlementInstruction {
	out := make([]*api.SettlementInstruction, len(instructions))
	for i, in := range instructions {
		out[i] = &api.SettlementInstruction{From: in.From, To: in.To, Amount: in.Amount}
	}
	return out
}
