package redshiftlineage

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHost        = errors.New("missing host in connection since there is no IAM setting")
	ErrURIEmpty           = errors.New("connection uri is empty")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrUnknownOperator    = errors.New("unknown operator")
	ErrProfileNotFound    = errors.New("aws profile not found")
)

// ConfigurationError reports a connection that cannot be used for lineage.
// Callers are expected to skip lineage emission for the task.
type ConfigurationError struct {
	ConnID string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.ConnID == "" {
		return fmt.Sprintf("configuration error: %s", e.Err)
	}
	return fmt.Sprintf("configuration error: conn_id=%s: %s", e.ConnID, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
