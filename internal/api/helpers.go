package api

import (
	"encoding/json/v2"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ubiquitousdiaries/diaries-server/internal/http/response"
)

// decodeJSON parses the request body into dst. On failure it writes a 400
// response and returns false; the handler should return immediately.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return false
	}
	return true
}

// titleParam returns the named URL parameter with percent-encoding undone,
// so titles containing spaces or slashes round-trip through the path.
func titleParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
