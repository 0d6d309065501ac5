package rpc

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	soia "github.com/gepheum/soia-go"
	"github.com/gepheum/soia-go/example/geo"
	"github.com/stretchr/testify/require"
)

var translateMethod = Method[geo.Point, geo.Point]{
	Name:               "Translate",
	Number:             17,
	RequestSerializer:  geo.PointSerializer(),
	ResponseSerializer: geo.PointSerializer(),
}

func translate(_ context.Context, p geo.Point) (geo.Point, error) {
	return geo.NewPoint(p.X()+1, p.Y()+1), nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(nil)
	require.NoError(t, AddMethod(s, translateMethod, translate))
	return s
}

func TestAddMethodRejectsDuplicates(t *testing.T) {
	s := newTestService(t)

	dupNumber := translateMethod
	dupNumber.Name = "Other"
	err := AddMethod(s, dupNumber, translate)
	require.True(t, soia.Is(err, soia.RegistrationError))

	dupName := translateMethod
	dupName.Number = 99
	err = AddMethod(s, dupName, translate)
	require.True(t, soia.Is(err, soia.RegistrationError))
}

func TestHandleRequestDense(t *testing.T) {
	s := newTestService(t)

	status, contentType, body := s.HandleRequest(context.Background(), "Translate:17::[3,4]")
	require.Equal(t, 200, status)
	require.Equal(t, "application/json; charset=utf-8", contentType)
	require.Equal(t, "[4,5]", string(body))
}

func TestHandleRequestReadable(t *testing.T) {
	s := newTestService(t)

	status, _, body := s.HandleRequest(context.Background(), `Translate:17:readable:{"x":3}`)
	require.Equal(t, 200, status)
	require.JSONEq(t, `{"x":4,"y":1}`, string(body))
}

func TestHandleRequestListing(t *testing.T) {
	s := newTestService(t)

	for _, reqBody := range []string{"", "list"} {
		status, contentType, body := s.HandleRequest(context.Background(), reqBody)
		require.Equal(t, 200, status)
		require.Equal(t, "application/json; charset=utf-8", contentType)

		var listing struct {
			Methods []struct {
				Method   string `json:"method"`
				Number   int    `json:"number"`
				Request  any    `json:"request"`
				Response any    `json:"response"`
			} `json:"methods"`
		}
		require.NoError(t, json.Unmarshal(body, &listing))
		require.Len(t, listing.Methods, 1)
		require.Equal(t, "Translate", listing.Methods[0].Method)
		require.Equal(t, 17, listing.Methods[0].Number)
		require.NotNil(t, listing.Methods[0].Request)
		require.NotNil(t, listing.Methods[0].Response)

		// The listed request descriptor parses back into a TypeDescriptor.
		_, err := soia.ParseTypeDescriptor(listing.Methods[0].Request)
		require.NoError(t, err)
	}
}

func TestHandleRequestRestudio(t *testing.T) {
	s := newTestService(t)

	status, contentType, body := s.HandleRequest(context.Background(), "restudio")
	require.Equal(t, 200, status)
	require.Equal(t, "text/html; charset=utf-8", contentType)
	require.Contains(t, string(body), "restudio")
}

func TestHandleRequestErrors(t *testing.T) {
	s := newTestService(t)
	failing := Method[geo.Point, geo.Point]{
		Name:               "Fail",
		Number:             18,
		RequestSerializer:  geo.PointSerializer(),
		ResponseSerializer: geo.PointSerializer(),
	}
	require.NoError(t, AddMethod(s, failing, func(context.Context, geo.Point) (geo.Point, error) {
		return geo.Point{}, context.DeadlineExceeded
	}))

	for _, test := range []struct {
		body   string
		status int
	}{
		{"no-colons-here", 400},
		{"Translate:seventeen::0", 400},
		{"Translate:17:bogus:0", 400},
		{"Translate:99::0", 400},     // unknown method number
		{"Translate:17::{bad", 400},  // malformed payload JSON
		{"Fail:18::0", 500},          // handler failure
	} {
		status, contentType, _ := s.HandleRequest(context.Background(), test.body)
		require.Equal(t, test.status, status, test.body)
		require.Equal(t, "text/plain; charset=utf-8", contentType, test.body)
	}
}

func TestParseFramingPayloadMayContainColons(t *testing.T) {
	name, number, flavor, payload, err := parseFraming(`M:5:readable:{"url":"http://x"}`)
	require.NoError(t, err)
	require.Equal(t, "M", name)
	require.Equal(t, 5, number)
	require.Equal(t, soia.Readable, flavor)
	require.Equal(t, `{"url":"http://x"}`, payload)
}

func TestMethodDispatchByNumberNotName(t *testing.T) {
	// The method number selects the handler; the name is informational.
	s := newTestService(t)
	status, _, body := s.HandleRequest(context.Background(), "Renamed:17::[3,4]")
	require.Equal(t, 200, status)
	require.Equal(t, "[4,5]", string(body))
	require.False(t, strings.Contains(string(body), "Renamed"))
}
