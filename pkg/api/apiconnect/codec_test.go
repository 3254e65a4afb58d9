package apiconnect

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/settleup/pkg/api"
)

func TestJSONCodec_PlainMessage(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	in := &api.CreateExpenseRequest{
		GroupId:     "g1",
		Description: "Hotel",
		Amount:      decimal.RequireFromString("450.50"),
		PaidBy:      "Maria",
	}
	data, err := codec.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":"450.5"`)

	var out api.CreateExpenseRequest
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.True(t, in.Amount.Equal(out.Amount))
	assert.Equal(t, "Maria", out.PaidBy)
}

func TestJSONCodec_AcceptsNumericAmounts(t *testing.T) {
	var out api.CreateExpenseRequest
	require.NoError(t, JSONCodec{}.Unmarshal([]byte(`{"amount": 12.34}`), &out))
	assert.Equal(t, "12.34", out.Amount.StringFixed(2))
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var out api.ListGroupsRequest
	assert.NoError(t, JSONCodec{}.Unmarshal(nil, &out))
}

func TestJSONCodec_ProtoMessage(t *testing.T) {
	ts := timestamppb.New(timestamppb.Now().AsTime().Truncate(1e9))
	data, err := JSONCodec{}.Marshal(ts)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Z")

	var out timestamppb.Timestamp
	require.NoError(t, JSONCodec{}.Unmarshal(data, &out))
	assert.Equal(t, ts.GetSeconds(), out.GetSeconds())
}
