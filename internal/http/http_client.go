package http

import "net/http"

// HTTPClient is the transport primitive the envelope translator runs on.
// *http.Client satisfies it, and so does the Workers fetch client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientFunc adapts a plain function to HTTPClient.
type HTTPClientFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f HTTPClientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
