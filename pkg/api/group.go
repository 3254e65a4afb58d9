package api

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type Group struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Members   []string        `json:"members"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt int64           `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupId string   `json:"group_id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

// MemberBalance is one line of a group's balance sheet.
type MemberBalance struct {
	MemberName string          `json:"member_name"`
	NetBalance decimal.Decimal `json:"net_balance"` // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	AdHoc      bool            `json:"ad_hoc"` // not a listed member of the group
}

// SettlementInstruction says From should pay To the Amount.
type SettlementInstruction struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetGroupBalancesRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	Total          decimal.Decimal          `json:"total"`
	Share          decimal.Decimal          `json:"share"`
	MemberBalances []*MemberBalance         `json:"member_balances"`
	Instructions   []*SettlementInstruction `json:"instructions"`
}

type Activity struct {
	Id        string                 `json:"id"`
	GroupId   string                 `json:"group_id"`
	Kind      string                 `json:"kind"`
	Actor     string                 `json:"actor,omitempty"`
	ActorName string                 `json:"actor_name,omitempty"`
	Message   string                 `json:"message"`
	Amount    decimal.Decimal        `json:"amount"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type ListActivitiesRequest struct {
	GroupId string `json:"group_id,omitempty"` // empty = all groups
	Limit   int32  `json:"limit,omitempty"`
}

type ListActivitiesResponse struct {
	Activities []*Activity `json:"activities"`
}
