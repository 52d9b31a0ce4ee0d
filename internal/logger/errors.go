package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned when [Log] appName is missing.
	ErrAppNameIsEmpty = errors.New("log: appName must be set")

	// ErrServiceNameIsEmpty is returned when [Log] serviceName is missing.
	// It labels the log_statements_total metric.
	ErrServiceNameIsEmpty = errors.New("log: serviceName must be set")
)

// ErrorHandler is installed as zerolog.ErrorHandler and reports failed writes on stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "gywan-site: dropped log event: %v\n", err)
}
