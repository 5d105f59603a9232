package service

import (
	"errors"
	"strings"

	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/remote"
)

// ErrFailed is the single generic failure shown to users. Its text is the
// translation key of the message.
var ErrFailed = errors.New("common.error")

// ValidationError lists what was wrong with a submitted form, one
// "field: message" line per problem.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func invalid(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

// AsValidation unwraps a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// collapse reduces a failure to what the UI can show: the field errors of a
// rejected form, or ErrFailed. The cause is logged.
func collapse(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsValidation(err); ok {
		return err
	}
	if apiErr, ok := remote.AsAPIError(err); ok && apiErr.IsValidation() {
		return &ValidationError{Messages: apiErr.Messages()}
	}
	logger.Warningf("%s failed: %v", op, err)
	return ErrFailed
}
