package errors

// Postgres mapping: SQLSTATE classes to ErrorCode plus the offending column as field

import (
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var codeBySQLState = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation: input names a missing row
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction (replica)
	"57P01": ErrorCodeUnavailable,     // admin_shutdown
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// PgError returns the *pgconn.PgError behind err, if any
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode maps a database error to an ErrorCode
// a failed dial is Unavailable; ok is false when err came from neither Postgres nor the dialer
func DBErrorCode(err error) (ErrorCode, bool) {
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) {
		return ErrorCodeUnavailable, true
	}
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, ok := codeBySQLState[pgErr.Code]; ok {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code and msg
// an *Error keeps its code, any other foreign error becomes ErrorCodeDB
// constraint violations also carry the offending column as field
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
		if e, ours := As(err); ours {
			code = e.code
		}
	}
	out := Wrap(err, code, msg)
	if f := pgField(err); f != "" {
		out = WithField(out, f)
	}
	return out
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// pgField names the column behind a constraint error
// ColumnName wins; else the default constraint naming <table>_<column>_<suffix> is undone
func pgField(err error) string {
	pgErr, ok := PgError(err)
	if !ok {
		return ""
	}
	if c := strings.TrimSpace(pgErr.ColumnName); c != "" {
		return c
	}
	name := pgErr.ConstraintName
	if name == "" || pgErr.TableName == "" {
		return ""
	}
	rest, ok := strings.CutPrefix(name, pgErr.TableName+"_")
	if !ok {
		return ""
	}
	for _, suffix := range []string{"_fkey", "_pkey", "_key", "_check"} {
		if col, ok := strings.CutSuffix(rest, suffix); ok && col != "" {
			return col
		}
	}
	return ""
}
