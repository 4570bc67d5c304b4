package jso

import (
	"encoding/json"
	"net/http"

	"github.com/dvcrn/jso-fetch/internal/logger"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    any  `json:"meta,omitempty"`
	Links   any  `json:"links,omitempty"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteSuccess writes a success envelope. Nil meta and links are omitted.
func WriteSuccess(w http.ResponseWriter, status int, data, meta, links any) {
	write(w, status, successEnvelope{Success: true, Data: data, Meta: meta, Links: links})
}

// WriteFailure writes a failure envelope. Nil errors and data are omitted.
func WriteFailure(w http.ResponseWriter, status int, message string, errs, data any) {
	write(w, status, failureEnvelope{Success: false, Message: message, Errors: errs, Data: data})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Get().Error().Err(err).Int("status", status).Msg("Failed to encode JSO envelope")
	}
}
