// Package common holds small error helpers shared by the panel packages.
package common

import (
	"errors"
	"fmt"

	"github.com/partyhub/party-panel/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprint(a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors, nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a panic under msg and returns it. It must be deferred
// directly.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
