package config

import (
	"fmt"
	"net/http"
	"strings"
)

// Headers holds request headers decoded from one item per line, each
// "Name: value". Only the first ':' separates name from value, so values may
// contain colons and commas. Repeated names add values.
type Headers http.Header

// Decode implements envconfig.Decoder.
func (h *Headers) Decode(value string) error {
	out := make(http.Header)
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, val, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid header %q: want \"Name: value\"", line)
		}
		out.Add(name, strings.TrimSpace(val))
	}
	*h = Headers(out)
	return nil
}
