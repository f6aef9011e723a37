package gateway

import (
	"encoding/json"

	"godotmcp/internal/apperr"
)

// Response is the uniform result of a dispatch. On success Payload holds the
// operation's fields; on failure Error is non-empty and Kind classifies it.
type Response struct {
	Success bool
	Payload map[string]any
	Error   string
	Kind    apperr.Kind
}

func succeed(payload map[string]any) Response {
	if payload == nil {
		payload = map[string]any{}
	}
	return Response{Success: true, Payload: payload}
}

func fail(err error) Response {
	msg := err.Error()
	if msg == "" {
		msg = "unknown error"
	}
	return Response{Error: msg, Kind: apperr.KindOf(err)}
}

// MarshalJSON flattens the response into {"success": true, ...payload} or
// {"success": false, "error": ..., "error_kind": ...}.
func (r Response) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Payload)+3)
	if r.Success {
		for k, v := range r.Payload {
			m[k] = v
		}
		delete(m, "error")
		delete(m, "error_kind")
	} else {
		m["error"] = r.Error
		m["error_kind"] = r.Kind.String()
	}
	m["success"] = r.Success
	return json.Marshal(m)
}
