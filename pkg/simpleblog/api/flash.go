package api

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "blog_flash"

// Flash is a one-shot notice shown on the next rendered page after a
// redirect. Level is a presentation hint ("info" or "danger").
type Flash struct {
	Level   string
	Message string
}

func setFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	level, message, found := strings.Cut(value, "|")
	if !found {
		return &Flash{Level: "info", Message: value}
	}
	return &Flash{Level: level, Message: message}
}
