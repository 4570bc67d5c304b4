package jso

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Kind tells apart the ways a JSO call can fail.
type Kind int

const (
	// KindTransport: the transport call itself failed. The body was never read.
	KindTransport Kind = iota + 1
	// KindMalformedBody: 2xx status, body is not JSON.
	KindMalformedBody
	// KindHTTPStatus: non-2xx status and the body could not be read as an envelope.
	KindHTTPStatus
	// KindInvalidEnvelope: 2xx status, JSON body that breaks the envelope shape.
	KindInvalidEnvelope
	// KindAPI: a well-formed failure envelope.
	KindAPI
)

const (
	msgTransport        = "Network request failed."
	msgMalformedBody    = "Invalid JSON response from server."
	msgInvalidSuccess   = `Invalid JSO response: "success" property is missing or not a boolean.`
	msgInvalidMessage   = `Invalid JSO error response: "message" property is missing or not a string.`
	msgHTTPStatusFormat = "HTTP error! status: %d %s"
)

// Sentinels for errors.Is. Every *Error matches exactly the one for its Kind.
var (
	ErrTransport       = errors.New("jso: transport failure")
	ErrMalformedBody   = errors.New("jso: malformed body")
	ErrHTTPStatus      = errors.New("jso: http status failure")
	ErrInvalidEnvelope = errors.New("jso: invalid envelope")
	ErrAPI             = errors.New("jso: api failure")
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "TransportFailure"
	case KindMalformedBody:
		return "MalformedBody"
	case KindHTTPStatus:
		return "HttpStatusFailure"
	case KindInvalidEnvelope:
		return "InvalidEnvelope"
	case KindAPI:
		return "ApiFailure"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindMalformedBody:
		return ErrMalformedBody
	case KindHTTPStatus:
		return ErrHTTPStatus
	case KindInvalidEnvelope:
		return ErrInvalidEnvelope
	case KindAPI:
		return ErrAPI
	}
	return nil
}

// Error is returned by every failed Fetch or Do.
//
// Only KindAPI errors carry Errors and Data; they hold the envelope's
// "errors" and "data" fields verbatim, nil when the field was absent.
// Response is the transport's response (nil for KindTransport). Its body has
// already been read and closed; use it for status and headers.
type Error struct {
	Kind       Kind
	Message    string
	Errors     json.RawMessage
	Data       json.RawMessage
	Response   *http.Response
	StatusCode int
	Status     string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the sentinel error for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// ErrorItems decodes the envelope's "errors" array. It returns nil, nil when
// the field was absent.
func (e *Error) ErrorItems() ([]map[string]any, error) {
	if len(e.Errors) == 0 {
		return nil, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(e.Errors, &items); err != nil {
		return nil, fmt.Errorf("decode errors: %w", err)
	}
	return items, nil
}

// DecodeData unmarshals the echoed "data" field into v. v is left untouched
// when the field was absent.
func (e *Error) DecodeData(v any) error {
	return decodeRaw(e.Data, v)
}

// AsError unwraps err to a *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newTransportError() *Error {
	return &Error{Kind: KindTransport, Message: msgTransport}
}

func newResponseError(kind Kind, message string, resp *http.Response) *Error {
	return &Error{
		Kind:       kind,
		Message:    message,
		Response:   resp,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

func newHTTPStatusError(resp *http.Response) *Error {
	return newResponseError(KindHTTPStatus, fmt.Sprintf(msgHTTPStatusFormat, resp.StatusCode, statusText(resp)), resp)
}

func newAPIError(message string, env envelope, resp *http.Response) *Error {
	e := newResponseError(KindAPI, message, resp)
	e.Errors = env.field("errors")
	e.Data = env.field("data")
	return e
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
