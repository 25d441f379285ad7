package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// The payload is marshaled first so an encoding failure never leaves a
// half-written body.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// ProblemDetail represents an RFC 7807 Problem Details response
type ProblemDetail struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`   // request path
	RequestID string `json:"request_id,omitempty"` // matches the X-Request-ID header
}

// NewProblem builds a problem for status with the standard type and title.
func NewProblem(status int, detail string) ProblemDetail {
	return ProblemDetail{
		Type:   problemTypes[status],
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// RespondError writes an RFC 7807 Problem Details error response
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, NewProblem(status, detail))
}

// RespondRequestError is RespondError with the request path and ID filled in.
func RespondRequestError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := NewProblem(status, detail)
	problem.Instance = r.URL.Path
	problem.RequestID = GetRequestID(r)
	RespondProblem(w, problem)
}

func RespondProblem(w http.ResponseWriter, problem ProblemDetail) {
	if problem.Type == "" {
		problem.Type = "about:blank"
	}
	payload, err := json.Marshal(problem)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	w.Write(payload)
}

// Redirect sends the browser to path after a form post.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// problemTypes are the RFC 9110 sections describing each status.
var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://www.rfc-editor.org/rfc/rfc9110#name-400-bad-request",
	http.StatusUnauthorized:          "https://www.rfc-editor.org/rfc/rfc9110#name-401-unauthorized",
	http.StatusForbidden:             "https://www.rfc-editor.org/rfc/rfc9110#name-403-forbidden",
	http.StatusNotFound:              "https://www.rfc-editor.org/rfc/rfc9110#name-404-not-found",
	http.StatusConflict:              "https://www.rfc-editor.org/rfc/rfc9110#name-409-conflict",
	http.StatusRequestEntityTooLarge: "https://www.rfc-editor.org/rfc/rfc9110#name-413-content-too-large",
	http.StatusInternalServerError:   "https://www.rfc-editor.org/rfc/rfc9110#name-500-internal-server-error",
}
