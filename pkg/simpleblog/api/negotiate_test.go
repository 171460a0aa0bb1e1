package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   Representation
	}{
		{"no header defaults to rendered", "", Rendered},
		{"html", "text/html", Rendered},
		{"json", "application/json", Structured},
		{"json with charset", "application/json; charset=utf-8", Structured},
		{"json with quality value", "application/json;q=0.9", Structured},
		{"json among alternatives", "text/html, application/json", Structured},
		{"near miss stays rendered", "application/jsonx", Rendered},
		{"wildcard stays rendered", "*/*", Rendered},
		{"garbage stays rendered", ";;;", Rendered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, Negotiate(r))
		})
	}
}
