// Package api defines the dashboard's gRPC contract: request and response
// messages, the service descriptor and a typed client. Messages are plain
// structs encoded in protobuf wire format (see dashboard.proto).
package api

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the dashboard speaks.
const CodecName = "dashpb"

// wireMessage is implemented by every message in this package.
type wireMessage interface {
	appendWire(b []byte) []byte
	readWire(b []byte) error
}

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("%s codec: cannot marshal %T", CodecName, v)
	}
	return m.appendWire(nil), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("%s codec: cannot unmarshal into %T", CodecName, v)
	}
	return m.readWire(data)
}

func (wireCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(wireCodec{})
}
