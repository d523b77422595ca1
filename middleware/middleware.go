// Package middleware validates HTTP JSON request bodies against a schema.
// It is framework-neutral: everything is expressed over net/http handlers,
// leaving router integration to callers.
package middleware

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck"
)

// ctxKeyDocument is a typed context key for the decoded request document.
type ctxKeyDocument struct{}

// DocumentFromContext retrieves the decoded document stored by Validate.
func DocumentFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyDocument{})
	if v == nil {
		return nil, false
	}
	return v, true
}

// DefaultValidateOpt returns a recommended default for HTTP JSON boundaries:
// collect every violation so clients can fix a payload in one round trip.
func DefaultValidateOpt() shapecheck.ValidateOpt {
	return shapecheck.ValidateOpt{}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []shapecheck.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// Validate wraps next with request-body validation against schema. Violations
// answer 400 with an ErrorPayload body; a misconfigured schema answers 500;
// on success the decoded document is attached to the request context.
func Validate(schema *shapecheck.Schema, next http.Handler, opts ...shapecheck.ValidateOpt) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := shapecheck.DecodeDocumentReader(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorPayload([]shapecheck.Issue{{
				Path:    "/",
				Code:    shapecheck.CodeParseError,
				Message: "invalid JSON body",
				Hint:    err.Error(),
			}}))
			return
		}
		if err := schema.Validate(doc, opts...); err != nil {
			var serr *shapecheck.SchemaError
			if errors.As(err, &serr) {
				http.Error(w, "schema misconfigured", http.StatusInternalServerError)
				return
			}
			iss, _ := shapecheck.AsIssues(err)
			writeJSON(w, http.StatusBadRequest, ErrorPayload(iss))
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyDocument{}, doc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
