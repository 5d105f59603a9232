// Package entity holds the shapes the web layer exchanges with browsers: the
// JSON envelope, list views (filters, sorting, pagination), navigation and
// the party and actor forms.
package entity

// Msg represents a standard API response message with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"` // Indicates if the operation was successful
	Msg     string `json:"msg"`     // Response message text
	Obj     any    `json:"obj"`     // Optional data object
}
