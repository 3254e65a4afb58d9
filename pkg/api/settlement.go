package api

import "github.com/shopspring/decimal"

type Settlement struct {
	Id        string          `json:"id"`
	GroupId   string          `json:"group_id"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type RecordSettlementRequest struct {
	GroupId string          `json:"group_id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupId string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementId string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}
