package rest

import (
	"net/http"
	"strings"
)

// BaseURL is the scheme and host callers reach this service on. A configured
// public URL wins over anything derived from the request.
func BaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		switch forwarded := strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0])); forwarded {
		case "http", "https":
			scheme = forwarded
		}
	}

	return scheme + "://" + r.Host
}

// WantsJSON reports whether the client asked for JSON rather than a page.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// IsFormRequest reports whether the body is form encoded.
func IsFormRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || IsMultipartRequest(r)
}

func IsMultipartRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
