package remote

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

const maxDetailLen = 200

// APIError is a non-2xx answer of the party API. Fields holds the per-field
// messages of a validation failure; Detail the "detail" or "error" text.
type APIError struct {
	Status int
	Fields map[string][]string
	Detail string
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("party api: status %d: %s", e.Status, e.Detail)
	case len(e.Fields) > 0:
		return fmt.Sprintf("party api: status %d: %s", e.Status, strings.Join(e.Messages(), "; "))
	}
	return fmt.Sprintf("party api: status %d", e.Status)
}

// IsValidation reports a 400 answer that names the offending fields.
func (e *APIError) IsValidation() bool {
	return e.Status == 400 && len(e.Fields) > 0
}

// IsUnauthorized reports a rejected or insufficient token.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

func (e *APIError) IsForbidden() bool {
	return e.Status == 403
}

func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}

// Messages flattens Fields into "field: message" lines ordered by field.
func (e *APIError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, m := range e.Fields[k] {
			out = append(out, k+": "+m)
		}
	}
	return out
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 or 403 answer.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

func IsForbidden(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsForbidden()
}

func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		e.Detail = truncate(strings.TrimSpace(string(body)))
		return e
	}

	for k, v := range raw {
		if k == "detail" || k == "error" {
			if s, ok := v.(string); ok {
				e.Detail = s
				continue
			}
		}
		msgs := flatten(v)
		if len(msgs) == 0 {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string][]string)
		}
		e.Fields[k] = append(e.Fields[k], msgs...)
	}
	return e
}

// flatten turns a field error value (string, list or nested object) into
// plain messages.
func flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			for _, m := range flatten(t[k]) {
				out = append(out, k+": "+m)
			}
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

func truncate(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
