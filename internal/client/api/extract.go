package api

import (
	"encoding/json"
)

// The backend has gone through several envelope revisions: payloads arrive
// either at the top level or under a "data" wrapper, the access token has
// appeared under several field names, and the role claim is sometimes a
// sibling of the user object instead of nested inside it. Extraction is an
// ordered list of strategies tried in sequence; the first match wins. The
// order is part of the compatibility contract and must not be reshuffled.

// Body is a decoded JSON response body.
type Body map[string]json.RawMessage

// ParseBody decodes raw into a Body. A non-object body yields an empty Body
// rather than an error so the strategy lookups simply find nothing.
func ParseBody(raw []byte) Body {
	var b Body
	if err := json.Unmarshal(raw, &b); err != nil {
		return Body{}
	}
	return b
}

func (b Body) stringField(key string) (string, bool) {
	rm, ok := b[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(rm, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func (b Body) nested(key string) Body {
	rm, ok := b[key]
	if !ok {
		return nil
	}
	var inner Body
	if err := json.Unmarshal(rm, &inner); err != nil {
		return nil
	}
	return inner
}

// tokenStrategies locate the bearer token, in historical priority order.
var tokenStrategies = []func(Body) (string, bool){
	func(b Body) (string, bool) { return b.stringField("access_token") },
	func(b Body) (string, bool) { return b.stringField("accessToken") },
	func(b Body) (string, bool) { return b.stringField("token") },
	func(b Body) (string, bool) { return b.nested("data").stringField("access_token") },
	func(b Body) (string, bool) { return b.nested("data").stringField("accessToken") },
}

// Token returns the bearer token from the first strategy that matches.
func (b Body) Token() (string, bool) {
	for _, s := range tokenStrategies {
		if tok, ok := s(b); ok {
			return tok, true
		}
	}
	return "", false
}

// userStrategies locate the raw identity object.
var userStrategies = []func(Body) (json.RawMessage, bool){
	func(b Body) (json.RawMessage, bool) { rm, ok := b["user"]; return rm, ok },
	func(b Body) (json.RawMessage, bool) { rm, ok := b.nested("data")["user"]; return rm, ok },
}

// User returns the raw identity object, if any strategy finds one.
func (b Body) User() (json.RawMessage, bool) {
	for _, s := range userStrategies {
		if rm, ok := s(b); ok && len(rm) > 0 && string(rm) != "null" {
			return rm, true
		}
	}
	return nil, false
}

// Role returns a role claim sent as a top-level sibling of the user object.
func (b Body) Role() (string, bool) {
	return b.stringField("role")
}

// envelopeKeys are the fields a pure envelope may carry besides the payload.
var envelopeKeys = map[string]struct{}{
	"data":       {},
	"message":    {},
	"pagination": {},
	"success":    {},
	"status":     {},
}

// Payload returns the payload portion of a response body: the body itself
// when it carries top-level payload fields, or the contents of its "data"
// wrapper when the body is nothing but an envelope. Top level wins when
// both are present.
func Payload(raw json.RawMessage) json.RawMessage {
	b := ParseBody(raw)
	data, ok := b["data"]
	if !ok {
		return raw
	}
	for k := range b {
		if _, envelope := envelopeKeys[k]; !envelope {
			return raw
		}
	}
	return data
}

// ErrorMessage pulls a human-readable message out of an error response body.
// Returns "" when none is recognizable.
func ErrorMessage(raw []byte) string {
	b := ParseBody(raw)
	if msg, ok := b.stringField("message"); ok {
		return msg
	}
	if msg, ok := b.stringField("error"); ok {
		return msg
	}
	return ""
}
