package rpc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	soia "github.com/gepheum/soia-go"
)

// RequestMetadataFunc lets a caller inject arbitrary per-request headers.
// A single hook rather than a variadic option list, since HTTP headers are
// the only metadata channel this envelope defines.
type RequestMetadataFunc func(ctx context.Context) (http.Header, error)

// Client speaks the framed RPC wire protocol over HTTP. It has no notion
// of the generated per-service method wrappers; callers build those on top
// of Invoke.
type Client struct {
	URL        string
	HTTP       *http.Client
	Metadata   RequestMetadataFunc
	UseHTTPGet bool
}

// NewClient returns a Client that POSTs framed requests to url, an
// absolute URL without a query string. httpClient may be nil, in which
// case http.DefaultClient is used.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{URL: url, HTTP: httpClient}
}

// Invoke calls method on the server and decodes its response in
// preserve-unknowns mode; responses are considered trusted.
func Invoke[Req, Resp any](
	ctx context.Context,
	c *Client,
	method Method[Req, Resp],
	req Req,
	flavor soia.JSONFlavor,
) (Resp, error) {
	var zero Resp

	reqCode, err := method.RequestSerializer.ToJSONCode(req, flavor, false)
	if err != nil {
		return zero, err
	}
	format := ""
	if flavor == soia.Readable {
		format = "readable"
	}
	body := fmt.Sprintf("%s:%d:%s:%s", method.Name, method.Number, format, reqCode)

	respCode, err := c.send(ctx, body)
	if err != nil {
		return zero, err
	}

	resp, err := method.ResponseSerializer.FromJSONCode(respCode, true)
	if err != nil {
		return zero, err
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, body string) (string, error) {
	var httpReq *http.Request
	var err error
	if c.UseHTTPGet {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, c.urlWithQuery(body), nil)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(body))
		if err == nil {
			httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")
		}
	}
	if err != nil {
		return "", internalf("soia: rpc: client: building request: %v", err)
	}

	if c.Metadata != nil {
		hdr, err := c.Metadata(ctx)
		if err != nil {
			return "", internalf("soia: rpc: client: metadata callback: %v", err)
		}
		for k, vs := range hdr {
			for _, v := range vs {
				httpReq.Header.Add(k, v)
			}
		}
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", internalf("soia: rpc: client: transport failure: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", internalf("soia: rpc: client: reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusErrorFromCode(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return string(respBody), nil
}

// urlWithQuery URL-encodes body into c.URL's query string, doubling
// literal "%" to "%25" first.
func (c *Client) urlWithQuery(body string) string {
	escaped := strings.ReplaceAll(body, "%", "%25")
	v := url.Values{}
	v.Set("q", escaped)
	sep := "?"
	if strings.Contains(c.URL, "?") {
		sep = "&"
	}
	return c.URL + sep + v.Encode()
}

func statusErrorFromCode(status int, msg string) error {
	return &statusError{status: status, msg: msg}
}

// bodyFromGetQuery reverses urlWithQuery's encoding, used by the server-side
// HTTP adapter (http.go) when a request arrives as a GET.
func bodyFromGetQuery(rawQuery string) (string, error) {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", badRequestf("soia: rpc: invalid query string: %v", err)
	}
	q := v.Get("q")
	return strings.ReplaceAll(q, "%25", "%"), nil
}
