package redshiftlineage

import (
	"errors"
	"io"
	"log"
	"os"
)

type Logger interface {
	Printf(format string, v ...any)
	SetOutput(w io.Writer)
	Writer() io.Writer
}

var errLogger = Logger(log.New(os.Stderr, "[redshift-lineage][error]", log.Ldate|log.Ltime|log.Lshortfile))
var warnLogger = Logger(log.New(os.Stderr, "[redshift-lineage][warn]", log.Ldate|log.Ltime|log.Lshortfile))
var debugLogger = Logger(log.New(io.Discard, "[redshift-lineage][debug]", log.Ldate|log.Ltime|log.Lshortfile))

// SetLogger replaces the logger used for error messages.
func SetLogger(l Logger) error {
	if l == nil {
		return errors.New("logger is nil")
	}
	errLogger = l
	return nil
}

// SetWarnLogger replaces the logger used for warnings, such as an unparsable
// cluster hostname.
func SetWarnLogger(l Logger) error {
	if l == nil {
		return errors.New("logger is nil")
	}
	warnLogger = l
	return nil
}

// SetDebugLogger replaces the logger used for debug messages. It discards
// output by default.
func SetDebugLogger(l Logger) error {
	if l == nil {
		return errors.New("logger is nil")
	}
	debugLogger = l
	return nil
}
