package rpc

import (
	_ "embed"
	"io"
	"net/http"
)

// restudioHTML is the fixed HTML document served for the body literal
// "restudio": a reserved, always-present introspection endpoint that
// returns a browsable page instead of a typed signature.
//
//go:embed restudio.html
var restudioHTML []byte

// HTTPHandler adapts a Service to net/http. Service itself knows nothing
// about net/http; this is the one place that bridges the two, so the
// request handler stays framework-agnostic.
func HTTPHandler(s *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body string
		switch r.Method {
		case http.MethodPost:
			data, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			body = string(data)
		case http.MethodGet:
			b, err := bodyFromGetQuery(r.URL.RawQuery)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			body = b
		default:
			http.Error(w, "soia: rpc: method not allowed", http.StatusMethodNotAllowed)
			return
		}

		status, contentType, respBody := s.HandleRequest(r.Context(), body)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(respBody)
	})
}
