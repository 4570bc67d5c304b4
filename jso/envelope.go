package jso

import (
	"bytes"
	"encoding/json"
)

// Result is the payload of a success envelope. Each field holds the
// envelope's JSON verbatim and is nil when the envelope did not carry it.
type Result struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Meta  json.RawMessage `json:"meta,omitempty"`
	Links json.RawMessage `json:"links,omitempty"`
}

// Decode unmarshals Data into v. v is left untouched when Data is absent.
func (r *Result) Decode(v any) error {
	return decodeRaw(r.Data, v)
}

// DecodeMeta unmarshals Meta into v. v is left untouched when Meta is absent.
func (r *Result) DecodeMeta(v any) error {
	return decodeRaw(r.Meta, v)
}

// DecodeLinks unmarshals Links into v. v is left untouched when Links is absent.
func (r *Result) DecodeLinks(v any) error {
	return decodeRaw(r.Links, v)
}

func decodeRaw(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// envelope is a parsed JSO body, keyed by top-level field.
type envelope map[string]json.RawMessage

// parseEnvelope reads a JSON document as an envelope. ok is false when the
// document is valid JSON but not an object; such bodies have no "success".
func parseEnvelope(doc json.RawMessage) (env envelope, ok bool) {
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, false
	}
	return env, env != nil
}

func (e envelope) field(name string) json.RawMessage {
	return e[name]
}

// success returns the "success" flag. ok is false unless it is a JSON boolean.
func (e envelope) success() (value, ok bool) {
	switch string(bytes.TrimSpace(e["success"])) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// message returns the failure "message". ok is false unless it is a JSON string.
func (e envelope) message() (string, bool) {
	raw := bytes.TrimSpace(e["message"])
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", false
	}
	return msg, true
}

func (e envelope) result() *Result {
	return &Result{
		Data:  e.field("data"),
		Meta:  e.field("meta"),
		Links: e.field("links"),
	}
}
