package database

import (
	"database/sql/driver"
	"errors"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// Reason discriminates persistence failures
type Reason string

const (
	ReasonConnectionRefused Reason = "connection_refused"
	ReasonAccessDenied      Reason = "access_denied"
	ReasonDatabaseMissing   Reason = "database_missing"
	ReasonTableMissing      Reason = "table_missing"
	ReasonGeneric           Reason = "generic"
)

// MySQL server error numbers
const (
	erAccessDenied = 1045
	erBadDB        = 1049
	erNoSuchTable  = 1146
)

// Error is a classified persistence failure. Its message never contains credentials.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	return string(e.Reason) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Hint is an operator facing description of what to check
func (e *Error) Hint() string {
	switch e.Reason {
	case ReasonConnectionRefused:
		return "Database server is not reachable. Check that it is running and DB_HOST/DB_PORT are correct."
	case ReasonAccessDenied:
		return "Database rejected the credentials. Check DB_USER and DB_PASSWORD."
	case ReasonDatabaseMissing:
		return "Configured database does not exist. Check DB_NAME or run leadctl migrate."
	case ReasonTableMissing:
		return "Required table is missing. Run leadctl migrate or restart the service."
	}
	return "Unexpected database error. See service logs."
}

// Classify wraps err in an *Error. Already classified errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	return &Error{Reason: reasonOf(err), Err: err}
}

// ReasonOf returns the classification of any error
func ReasonOf(err error) Reason {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Reason
	}
	return reasonOf(err)
}

func reasonOf(err error) Reason {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erAccessDenied:
			return ReasonAccessDenied
		case erBadDB:
			return ReasonDatabaseMissing
		case erNoSuchTable:
			return ReasonTableMissing
		}
		return ReasonGeneric
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return ReasonConnectionRefused
	}

	// Other dialects only expose their diagnosis through the message.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"), strings.Contains(msg, "i/o timeout"):
		return ReasonConnectionRefused
	case strings.Contains(msg, "password authentication failed"), strings.Contains(msg, "login failed"), strings.Contains(msg, "access denied"):
		return ReasonAccessDenied
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "invalid object name"),
		strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return ReasonTableMissing
	case strings.Contains(msg, "database") && (strings.Contains(msg, "does not exist") || strings.Contains(msg, "unknown database")):
		return ReasonDatabaseMissing
	}

	return ReasonGeneric
}
