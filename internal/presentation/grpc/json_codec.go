package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype clients must negotiate to reach the
// loan service, e.g. application/grpc+json.
const codecName = "json"

func init() {
	encoding.RegisterCodec(loanCodec{})
}

// loanCodec marshals loan service request and response messages as JSON.
// The service descriptors in proto.go are hand-written rather than
// protoc-generated, so the stock proto codec cannot serve them.
type loanCodec struct{}

func (loanCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (loanCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (loanCodec) Name() string {
	return codecName
}
