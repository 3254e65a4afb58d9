package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService.
type GroupService struct {
	store    storage.Store
	recorder *activity.Recorder
	metrics  *metrics.Metrics
}

// NewGroupService creates a GroupService. recorder and m may be nil.
func NewGroupService(store storage.Store, recorder *activity.Recorder, m *metrics.Metrics) *GroupService {
	return &GroupService{store: store, recorder: recorder, metrics: m}
}

func trimMembers(members []string) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = strings.TrimSpace(m)
	}
	return out
}

// CreateGroup creates a new group with a zero total.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	group := &models.Group{
		Name:    strings.TrimSpace(req.Msg.Name),
		Members: trimMembers(req.Msg.Members),
	}
	if err := group.Validate(); err != nil {
		return nil, connectError(err)
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: group.ID,
		Kind:    models.ActivityGroupCreated,
		Message: fmt.Sprintf("Created group %s", group.Name),
	})

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group and replaces its members. Payers dropped from
// the member list keep showing up in balances as ad-hoc entries.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupId,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group := &models.Group{
		ID:      req.Msg.GroupId,
		Name:    strings.TrimSpace(req.Msg.Name),
		Members: trimMembers(req.Msg.Members),
	}
	if err := group.Validate(); err != nil {
		return nil, connectError(err)
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to fetch updated group", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: updated.ID,
		Kind:    models.ActivityGroupUpdated,
		Message: fmt.Sprintf("Updated group %s (%d members)", updated.Name, len(updated.Members)),
	})

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{Group: toAPIGroup(updated)}), nil
}

// DeleteGroup removes a group with its expenses and settlements.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)
	if err := requireID("group_id", req.Msg.GroupId); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	recordActivity(ctx, s.recorder, models.Activity{
		GroupID: group.ID,
		Kind:    models.ActivityGroupDeleted,
		Message: fmt.Sprintf("Deleted group %s", group.Name),
		Amount:  group.Total,
	})

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances computes each member's net position from the group's
// expenses, applies recorded settlements, and returns the greedy payment
// instructions that would clear what remains.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("GetGroupBalances request received", "group_id", groupID)
	if err := requireID("group_id", groupID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed - group not found", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	var (
		expenses    []models.Expense
		settlements []models.Settlement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		settlements, err = s.store.ListSettlementsByGroup(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("GetGroupBalances failed - could not load group data", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	balances := calculator.ComputeBalances(group, expenses).ApplySettlements(settlements)
	instructions := calculator.ComputeSettlementInstructions(balances)
	s.metrics.InstructionsComputed(len(instructions))

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"settlements_count", len(settlements),
		"members_count", balances.Len(),
		"instructions_count", len(instructions),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Total:          group.Total,
		Share:          balances.Share,
		MemberBalances: toAPIBalances(balances),
		Instructions:   toAPIInstructions(instructions),
	}), nil
}

// ListActivities returns the activity feed, newest first. An empty group ID
// lists every group.
func (s *GroupService) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	slog.Info("ListActivities request received", "group_id", req.Msg.GroupId, "limit", req.Msg.Limit)

	activities, err := s.store.ListActivities(ctx, req.Msg.GroupId, int(req.Msg.Limit))
	if err != nil {
		slog.Error("ListActivities failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	var actorIDs []string
	seen := make(map[string]bool)
	for _, a := range activities {
		if a.Actor != "" && !seen[a.Actor] {
			seen[a.Actor] = true
			actorIDs = append(actorIDs, a.Actor)
		}
	}
	users, err := s.store.GetUsersByIDs(ctx, actorIDs)
	if err != nil {
		slog.Error("ListActivities failed - could not resolve actors", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Activity, len(activities))
	for i, a := range activities {
		out[i] = &api.Activity{
			Id:        a.ID,
			GroupId:   a.GroupID,
			Kind:      string(a.Kind),
			Actor:     a.Actor,
			Message:   a.Message,
			Amount:    a.Amount,
			CreatedAt: timestamppb.New(unixTime(a.CreatedAt)),
		}
		if u, ok := users[a.Actor]; ok {
			out[i].ActorName = u.DisplayName
		}
	}

	return connect.NewResponse(&api.ListActivitiesResponse{Activities: out}), nil
}
