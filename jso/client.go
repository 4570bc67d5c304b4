// Package jso fetches HTTP resources that answer with JSO envelopes and
// translates each response into a *Result or a typed *Error.
//
// A success envelope looks like
//
//	{"success": true, "data": ..., "meta": {...}, "links": {...}}
//
// and a failure envelope like
//
//	{"success": false, "message": "...", "errors": [...], "data": ...}
package jso

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	jsohttp "github.com/dvcrn/jso-fetch/internal/http"
	"github.com/dvcrn/jso-fetch/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestOptions configures the request handed to the transport. It is
// passed through as given: nothing is added or rewritten.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	Header http.Header
	Body   io.Reader
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. *http.Client satisfies the interface.
func WithHTTPClient(c jsohttp.HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the logger used for transport and parse diagnostics.
func WithLogger(l *zerolog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// Client translates JSO responses. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	httpClient jsohttp.HTTPClient
	logger     *zerolog.Logger
}

// NewClient creates a Client. Without options it uses the platform HTTP
// client and the process logger.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = jsohttp.NewHTTPClient(0)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

var defaultClient = sync.OnceValue(func() *Client { return NewClient() })

// Fetch calls Fetch on a shared default Client.
func Fetch(ctx context.Context, resource string, opts *RequestOptions) (*Result, error) {
	return defaultClient().Fetch(ctx, resource, opts)
}

// FetchInto fetches resource with c (the default Client when c is nil) and
// decodes the envelope's data into a T. The full Result is returned alongside
// for meta and links.
func FetchInto[T any](ctx context.Context, c *Client, resource string, opts *RequestOptions) (T, *Result, error) {
	var out T
	if c == nil {
		c = defaultClient()
	}
	res, err := c.Fetch(ctx, resource, opts)
	if err != nil {
		return out, nil, err
	}
	if err := res.Decode(&out); err != nil {
		return out, res, fmt.Errorf("decode data: %w", err)
	}
	return out, res, nil
}

// Fetch requests resource and translates the JSO response. Every failure is
// a *Error; use errors.Is with the Err* sentinels or AsError to inspect it.
// Cancellation and deadlines come from ctx.
func (c *Client) Fetch(ctx context.Context, resource string, opts *RequestOptions) (*Result, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, resource, opts.Body)
	if err != nil {
		c.callLogger(redactResource(resource)).Warn().Err(err).Msg("Network request failed")
		return nil, newTransportError()
	}
	if opts.Header != nil {
		req.Header = opts.Header
	}

	return c.do(req, c.callLogger(req.URL.Redacted()))
}

// Do translates the response to a request the caller built.
func (c *Client) Do(req *http.Request) (*Result, error) {
	if req == nil || req.URL == nil {
		c.callLogger("").Warn().Msg("Network request failed: nil request")
		return nil, newTransportError()
	}
	return c.do(req, c.callLogger(req.URL.Redacted()))
}

// redactResource masks userinfo passwords the way url.URL.Redacted does.
// Resources that do not parse are not logged at all.
func redactResource(resource string) string {
	u, err := url.Parse(resource)
	if err != nil {
		return ""
	}
	return u.Redacted()
}

func (c *Client) callLogger(resource string) *zerolog.Logger {
	l := c.logger.With().
		Str("call_id", uuid.NewString()).
		Str("resource", resource).
		Logger()
	return &l
}

func (c *Client) do(req *http.Request, log *zerolog.Logger) (*Result, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil || resp == nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		log.Warn().Err(err).Str("method", req.Method).Msg("Network request failed")
		return nil, newTransportError()
	}

	doc, err := readJSON(resp)
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("Failed to parse response body as JSON")
		if !isOK(resp) {
			return nil, newHTTPStatusError(resp)
		}
		return nil, newResponseError(KindMalformedBody, msgMalformedBody, resp)
	}

	env, isObject := parseEnvelope(doc)
	success, valid := env.success()
	if !isObject || !valid {
		if !isOK(resp) {
			return nil, newHTTPStatusError(resp)
		}
		return nil, newResponseError(KindInvalidEnvelope, msgInvalidSuccess, resp)
	}

	if success {
		log.Debug().Int("status", resp.StatusCode).Msg("JSO success response")
		return env.result(), nil
	}

	message, valid := env.message()
	if !valid {
		return nil, newResponseError(KindInvalidEnvelope, msgInvalidMessage, resp)
	}
	log.Debug().Int("status", resp.StatusCode).Str("api_message", message).Msg("JSO failure response")
	return nil, newAPIError(message, env, resp)
}

// readJSON reads and closes the response body and checks it holds one JSON value.
func readJSON(resp *http.Response) (json.RawMessage, error) {
	if resp.Body == nil {
		return nil, fmt.Errorf("response has no body")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isOK(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
