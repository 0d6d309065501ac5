package rpc

import (
	"bytes"
	"encoding/json"
)

// marshalJSON and unmarshalJSON are the RPC package's own narrow use of
// encoding/json, distinct from soia's own dense/readable value-tree
// marshaling: here we only ever shuttle already-built `any` trees (method
// listings, decoded request payloads) to and from raw JSON text, with none
// of soia's flavor-specific defaulting rules in play.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	b := buf.Bytes()
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return b, nil
}

func unmarshalJSON(code string) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader([]byte(code)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, badRequestf("soia: rpc: invalid JSON payload: %v", err)
	}
	return v, nil
}
