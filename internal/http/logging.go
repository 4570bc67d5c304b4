package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// WithLogging wraps next so every request and its outcome are logged at debug level.
func WithLogging(next HTTPClient, log *zerolog.Logger) HTTPClient {
	return HTTPClientFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.Redacted()).
			Msg("Outgoing request")

		resp, err := next.Do(req)
		if err != nil {
			log.Debug().
				Err(err).
				Str("method", req.Method).
				Str("url", req.URL.Redacted()).
				Dur("duration", time.Since(start)).
				Msg("Request failed")
			return resp, err
		}

		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.Redacted()).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("Finished request")
		return resp, nil
	})
}
