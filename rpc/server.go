package rpc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	soia "github.com/gepheum/soia-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service collects a set of RPC methods and answers framed requests against
// them. It deliberately has no notion of a network transport:
// HandleRequest takes and returns plain values; the net/http.Handler
// adapter lives in http.go, one layer up.
type Service struct {
	byNumber map[int]methodBinding
	byName   map[string]methodBinding
	order    []methodBinding
	logger   *zap.Logger
}

// NewService returns an empty Service. logger may be nil, in which case a
// no-op logger is used.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		byNumber: map[int]methodBinding{},
		byName:   map[string]methodBinding{},
		logger:   logger,
	}
}

// AddMethod registers method with the handler that implements it.
// Registering a method whose name or number collides with one already
// added is a RegistrationError.
func AddMethod[Req, Resp any](s *Service, method Method[Req, Resp], handler func(context.Context, Req) (Resp, error)) error {
	if _, dup := s.byNumber[method.Number]; dup {
		return &soia.Error{Code: soia.RegistrationError, Msg: fmt.Sprintf("soia: rpc: duplicate method number %d", method.Number)}
	}
	if _, dup := s.byName[method.Name]; dup {
		return &soia.Error{Code: soia.RegistrationError, Msg: fmt.Sprintf("soia: rpc: duplicate method name %q", method.Name)}
	}
	b := &typedMethod[Req, Resp]{method: method, handler: handler}
	s.byNumber[method.Number] = b
	s.byName[method.Name] = b
	s.order = append(s.order, b)
	return nil
}

// HandleRequest answers one framed request body, returning the HTTP status
// code, content type, and raw response bytes to send back. ctx is forwarded
// to the matched handler; a fresh per-request trace id is attached to the
// request-scoped logger.
func (s *Service) HandleRequest(ctx context.Context, body string) (status int, contentType string, respBody []byte) {
	traceID := uuid.New().String()
	log := s.logger.With(zap.String("trace_id", traceID))

	switch body {
	case "", "list":
		log.Info("soia rpc: method listing requested")
		j, err := marshalJSON(s.listingJSON())
		if err != nil {
			return 500, "text/plain; charset=utf-8", []byte(err.Error())
		}
		return 200, "application/json; charset=utf-8", j
	case "restudio":
		log.Info("soia rpc: restudio page requested")
		return 200, "text/html; charset=utf-8", restudioHTML
	}

	name, number, flavor, payload, err := parseFraming(body)
	if err != nil {
		log.Warn("soia rpc: malformed request", zap.Error(err))
		return statusOf(err), "text/plain; charset=utf-8", []byte(err.Error())
	}
	log = log.With(zap.String("method", name), zap.Int("number", number))

	m, ok := s.byNumber[number]
	if !ok {
		err := badRequestf("soia: rpc: unknown method number %d", number)
		log.Warn("soia rpc: unknown method number")
		return statusOf(err), "text/plain; charset=utf-8", []byte(err.Error())
	}

	reqJSON, err := unmarshalJSON(payload)
	if err != nil {
		log.Warn("soia rpc: malformed request payload", zap.Error(err))
		return 400, "text/plain; charset=utf-8", []byte(err.Error())
	}
	resp, err := m.invoke(ctx, reqJSON)
	if err != nil {
		log.Error("soia rpc: handler failed", zap.Error(err))
		return statusOf(err), "text/plain; charset=utf-8", []byte(err.Error())
	}
	respJSON, err := marshalJSON(m.toJSON(resp, flavor))
	if err != nil {
		log.Error("soia rpc: failed to encode response", zap.Error(err))
		return 500, "text/plain; charset=utf-8", []byte(err.Error())
	}
	log.Info("soia rpc: request handled")
	return 200, "application/json; charset=utf-8", respJSON
}

type methodListingEntry struct {
	Method   string `json:"method"`
	Number   int    `json:"number"`
	Request  any    `json:"request"`
	Response any    `json:"response"`
}

func (s *Service) listingJSON() any {
	methods := make([]methodListingEntry, len(s.order))
	for i, m := range s.order {
		methods[i] = methodListingEntry{
			Method:   m.name(),
			Number:   m.number(),
			Request:  m.requestTypeJSON(),
			Response: m.responseTypeJSON(),
		}
	}
	return map[string]any{"methods": methods}
}

// parseFraming splits a request body into its four colon-delimited parts:
// "<method_name>:<method_number>:<format>:<request_json>". Only the first
// three colons are delimiters; the payload itself is JSON and may contain
// colons freely.
func parseFraming(body string) (name string, number int, flavor soia.JSONFlavor, payload string, err error) {
	parts := strings.SplitN(body, ":", 4)
	if len(parts) != 4 {
		return "", 0, soia.Dense, "", badRequestf("soia: rpc: malformed request framing")
	}
	name = parts[0]
	number, convErr := strconv.Atoi(parts[1])
	if convErr != nil {
		return "", 0, soia.Dense, "", badRequestf("soia: rpc: invalid method number %q", parts[1])
	}
	switch parts[2] {
	case "":
		flavor = soia.Dense
	case "readable":
		flavor = soia.Readable
	default:
		return "", 0, soia.Dense, "", badRequestf("soia: rpc: invalid format %q", parts[2])
	}
	return name, number, flavor, parts[3], nil
}
