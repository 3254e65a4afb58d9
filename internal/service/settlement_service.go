package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService records payments made between members to clear debts.
type SettlementService struct {
	store    storage.Store
	recorder *activity.Recorder
}

func NewSettlementService(store storage.Store, recorder *activity.Recorder) *SettlementService {
	return &SettlementService{store: store, recorder: recorder}
}

// RecordSettlement stores a payment From -> To. Balances returned by
// GetGroupBalances account for it from then on.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	slog.Info("RecordSettlement request received",
		"group_id", req.Msg.GroupId,
		"from", req.Msg.From,
		"to", req.Msg.To,
		"amount", req.Msg.Amount.StringFixed(2),
	)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	settlement := &models.Settlement{
		GroupID:   req.Msg.GroupId,
		From:      strings.TrimSpace(req.Msg.From),
		To:        strings.TrimSpace(req.Msg.To),
		Amount:    calculator.Round2(req.Msg.Amount),
		Note:      strings.TrimSpace(req.Msg.Note),
		CreatedBy: middleware.GetUserID(ctx),
	}
	if err := settlement.Validate(); err != nil {
		return nil, connectError(err)
	}

	if _, err := s.store.GetGroup(ctx, settlement.GroupID); err != nil {
		slog.Error("RecordSettlement failed - group not found", "group_id", settlement.GroupID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", settlement.GroupID, "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: settlement.GroupID,
		Kind:    models.ActivitySettlementRecorded,
		Message: fmt.Sprintf("%s paid %s %s", settlement.From, settlement.To, settlement.Amount.StringFixed(2)),
		Amount:  settlement.Amount,
	})

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "group_id", settlement.GroupID)
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements returns a group's recorded settlements, oldest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	slog.Info("ListSettlements request received", "group_id", req.Msg.GroupId)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		return nil, connectError(err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i := range settlements {
		out[i] = toAPISettlement(&settlements[i])
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement removes a recorded settlement.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	slog.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementId)
	if err := requireID("settlement_id", req.Msg.SettlementId); err != nil {
		return nil, err
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementId)
	if err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", req.Msg.SettlementId, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: settlement.GroupID,
		Kind:    models.ActivitySettlementDeleted,
		Message: fmt.Sprintf("Removed payment %s to %s", settlement.From, settlement.To),
		Amount:  settlement.Amount,
	})

	slog.Info("Settlement deleted", "settlement_id", settlement.ID)
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
