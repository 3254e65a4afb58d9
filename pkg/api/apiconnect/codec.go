// Package apiconnect wires the settleup.v1 services to Connect handlers and
// clients.
//
// Messages in package api are plain Go structs, so handlers and clients are
// built with connect.NewUnaryHandler and connect.NewClient using JSONCodec in
// place of generated protobuf code. Any Connect client that speaks JSON
// (including curl with Content-Type: application/json) can call them.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// JSONCodec encodes messages as JSON. Protobuf messages go through protojson;
// everything else through encoding/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name reports "json" so Connect negotiates Content-Type application/json.
func (JSONCodec) Name() string {
	return "json"
}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
