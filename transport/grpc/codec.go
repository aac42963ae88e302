// Package grpc serves the connect6.Connect6Game service. Messages are JSON
// encoded (content-subtype "json"), so clients generated from a protobuf
// definition with the default proto codec cannot call it; use Client or set
// grpc.CallContentSubtype("json"). The health service keeps the proto codec.
package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype both sides use: application/grpc+json.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
