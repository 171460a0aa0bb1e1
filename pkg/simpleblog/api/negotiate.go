package api

import (
	"mime"
	"net/http"
	"strings"
)

// Representation selects which form of a resource a request gets.
type Representation int

const (
	// Rendered is the human-readable HTML form. It is the default.
	Rendered Representation = iota
	// Structured is the machine-readable JSON form.
	Structured
)

const structuredMediaType = "application/json"

// Negotiate derives the requested representation from the Accept header.
// Each list element is parsed as a media type; an exact match on
// application/json selects Structured. There is no quality-value handling
// and no fallback chain, anything else renders HTML.
func Negotiate(r *http.Request) Representation {
	accept := r.Header.Get("Accept")
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == structuredMediaType {
			return Structured
		}
	}
	return Rendered
}
