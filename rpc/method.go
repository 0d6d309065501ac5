// Package rpc implements a thin RPC envelope over the soia serialization
// core: method identification by (name, number, request/response
// serializer), a string wire framing transported over HTTP, and the
// server/client halves that speak it, including the reserved "list" and
// "restudio" self-description bodies.
package rpc

import (
	"context"

	soia "github.com/gepheum/soia-go"
)

// Method describes one RPC method: its schema identity plus the
// serializers for its request and response types.
type Method[Req, Resp any] struct {
	Name               string
	Number             int
	RequestSerializer  soia.Serializer[Req]
	ResponseSerializer soia.Serializer[Resp]
}

// methodBinding is the type-erased half of a registered method, letting a
// Service dispatch across methods of heterogeneous Req/Resp types without
// reflection — the same closure-table pattern struct_codec.go/
// enum_codec.go use for heterogeneous field/variant types.
type methodBinding interface {
	name() string
	number() int
	requestTypeJSON() any
	responseTypeJSON() any
	invoke(ctx context.Context, body any) (any, error)
	toJSON(resp any, flavor soia.JSONFlavor) any
}

type typedMethod[Req, Resp any] struct {
	method  Method[Req, Resp]
	handler func(context.Context, Req) (Resp, error)
}

func (m *typedMethod[Req, Resp]) name() string { return m.method.Name }
func (m *typedMethod[Req, Resp]) number() int  { return m.method.Number }

func (m *typedMethod[Req, Resp]) requestTypeJSON() any {
	return m.method.RequestSerializer.TypeDescriptor().AsJSON()
}

func (m *typedMethod[Req, Resp]) responseTypeJSON() any {
	return m.method.ResponseSerializer.TypeDescriptor().AsJSON()
}

func (m *typedMethod[Req, Resp]) invoke(ctx context.Context, body any) (any, error) {
	req, err := m.method.RequestSerializer.FromJSON(body, false)
	if err != nil {
		return nil, badRequestf("soia: method %q: invalid request: %v", m.method.Name, err)
	}
	return m.handler(ctx, req)
}

func (m *typedMethod[Req, Resp]) toJSON(resp any, flavor soia.JSONFlavor) any {
	return m.method.ResponseSerializer.ToJSON(resp.(Resp), flavor)
}
