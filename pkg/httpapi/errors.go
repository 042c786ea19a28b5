package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-lodgedoc/pkg/style"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error  string        `json:"error"`
	Issues []style.Issue `json:"issues,omitempty"`
}

// statusOf picks the response status for err, defaulting to fallback.
func statusOf(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return fallback
}

func writeError(w http.ResponseWriter, code int, err error, issues ...style.Issue) {
	msg := http.StatusText(code)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, code, errorResponse{Error: msg, Issues: issues})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
