package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		want   ErrorCode
		wantOK bool
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey, true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrorCodeInvalidArgument, true},
		{"not null", &pgconn.PgError{Code: "23502"}, ErrorCodeValidation, true},
		{"bad text", &pgconn.PgError{Code: "22P02"}, ErrorCodeInvalidArgument, true},
		{"starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable, true},
		{"other sqlstate", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB, true},
		{"wrapped", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23505"}), ErrorCodeDuplicateKey, true},
		{"dial", &pgconn.ConnectError{}, ErrorCodeUnavailable, true},
		{"foreign", stderrs.New("boom"), ErrorCodeUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DBErrorCode(tc.err)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("DBErrorCode = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatal("nil in must be nil out")
	}

	plain := stderrs.New("conn reset")
	err := FromPostgres(plain, "find segments")
	if !IsCode(err, ErrorCodeDB) || !stderrs.Is(err, plain) {
		t.Fatalf("foreign error: %v code=%v", err, CodeOf(err))
	}

	err = FromPostgres(ErrNotFound, "mark processed")
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("structured cause lost its code: %v", CodeOf(err))
	}

	err = FromPostgresf(&pgconn.PgError{Code: "23505"}, "insert video %s", "abc")
	if !IsCode(err, ErrorCodeDuplicateKey) {
		t.Fatalf("unique violation code = %v", CodeOf(err))
	}
	if e, _ := As(err); e.msg != "insert video abc" {
		t.Fatalf("message = %q", e.msg)
	}
}

func TestFromPostgres_Field(t *testing.T) {
	cases := []struct {
		name string
		pg   *pgconn.PgError
		want string
	}{
		{"column reported", &pgconn.PgError{Code: "23502", ColumnName: "title"}, "title"},
		{"fk constraint", &pgconn.PgError{Code: "23503", TableName: "segments", ConstraintName: "segments_video_id_fkey"}, "video_id"},
		{"unique constraint", &pgconn.PgError{Code: "23505", TableName: "videos", ConstraintName: "videos_yt_id_key"}, "yt_id"},
		{"custom name", &pgconn.PgError{Code: "23514", TableName: "segments", ConstraintName: "times_ordered"}, ""},
		{"no table", &pgconn.PgError{Code: "23505", ConstraintName: "videos_pkey"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := As(FromPostgres(tc.pg, "write"))
			if !ok {
				t.Fatal("expected *Error")
			}
			if e.Field() != tc.want {
				t.Fatalf("field = %q, want %q", e.Field(), tc.want)
			}
		})
	}
}
