package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/store"
)

type segRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *segRows) Next() bool { r.idx++; return r.idx <= len(r.data) }
func (r *segRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i := 0; i < 3; i++ {
		*(dest[i].(*string)) = row[i].(string)
	}
	*(dest[3].(*int)) = row[3].(int)
	*(dest[4].(*int)) = row[4].(int)
	return nil
}
func (r *segRows) Err() error        { return r.err }
func (r *segRows) Close()            {}
func (r *segRows) Columns() []string { return []string{"id", "video_id", "text", "start_time", "end_time"} }

type videoRow struct {
	vals []any
	err  error
}

func (r videoRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := 0; i < 4; i++ {
		*(dest[i].(*string)) = r.vals[i].(string)
	}
	*(dest[4].(**time.Time)) = r.vals[4].(*time.Time)
	return nil
}

type fakeQ struct {
	sql  string
	args []any
	rows store.Rows
	row  store.Row
	err  error
}

func (f *fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.sql, f.args = sql, args
	return f.row
}

func TestLikePatterns(t *testing.T) {
	t.Parallel()

	got := LikePatterns([]string{"is", "", "50%", `a_b\`})
	want := []string{"%is%", `%50\%%`, `%a\_b\\%`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LikePatterns = %#v, want %#v", got, want)
	}
	if got := LikePatterns(nil); len(got) != 0 {
		t.Fatalf("expected no patterns, got %#v", got)
	}
}

func TestFindSegments(t *testing.T) {
	t.Parallel()

	q := &fakeQ{rows: &segRows{data: [][]any{
		{"1", "A", "this is it", 12, 15},
		{"2", "B", "the end", 3700, 3702},
	}}}
	r := NewPG().Bind(q)

	got, err := r.FindSegments(context.Background(), []string{"is", "the"})
	if err != nil {
		t.Fatalf("FindSegments: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].VideoID != "B" || got[1].StartTime != 3700 {
		t.Fatalf("unexpected segments %+v", got)
	}
	if !strings.Contains(q.sql, "ilike any($1)") {
		t.Fatalf("unexpected sql %q", q.sql)
	}
	if !reflect.DeepEqual(q.args, []any{[]string{"%is%", "%the%"}}) {
		t.Fatalf("unexpected args %#v", q.args)
	}
}

func TestFindSegments_NoTermsSkipsQuery(t *testing.T) {
	t.Parallel()

	q := &fakeQ{}
	got, err := NewPG().Bind(q).FindSegments(context.Background(), []string{""})
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
	if q.sql != "" {
		t.Fatal("query should not run without patterns")
	}
}

func TestFindSegments_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("conn reset")
	if _, err := NewPG().Bind(&fakeQ{err: boom}).FindSegments(context.Background(), []string{"x"}); !errors.Is(err, boom) {
		t.Fatalf("query error not wrapped, got %v", err)
	}

	q := &fakeQ{rows: &segRows{err: boom}}
	if _, err := NewPG().Bind(q).FindSegments(context.Background(), []string{"x"}); !errors.Is(err, boom) {
		t.Fatalf("iteration error not wrapped, got %v", err)
	}
}

func TestGetVideo(t *testing.T) {
	t.Parallel()

	up := time.Date(2021, 5, 4, 0, 0, 0, 0, time.FixedZone("x", -7200))
	q := &fakeQ{row: videoRow{vals: []any{"A", "Title", "thumb.jpg", "Chan", &up}}}

	v, ok, err := NewPG().Bind(q).GetVideo(context.Background(), "A")
	if err != nil || !ok {
		t.Fatalf("GetVideo = %v, %v", ok, err)
	}
	if v.YTID != "A" || v.Title != "Title" || v.Channel != "Chan" || !v.UploadDate.Equal(up) {
		t.Fatalf("unexpected video %+v", v)
	}
	if v.UploadDate.Location() != time.UTC {
		t.Fatalf("upload date not normalized to UTC: %v", v.UploadDate)
	}
	if !reflect.DeepEqual(q.args, []any{"A"}) {
		t.Fatalf("unexpected args %#v", q.args)
	}
}

func TestGetVideo_NullUploadDate(t *testing.T) {
	t.Parallel()

	q := &fakeQ{row: videoRow{vals: []any{"A", "", "", "", (*time.Time)(nil)}}}
	v, ok, err := NewPG().Bind(q).GetVideo(context.Background(), "A")
	if err != nil || !ok || !v.UploadDate.IsZero() {
		t.Fatalf("got %+v, %v, %v", v, ok, err)
	}
}

func TestGetVideo_NotFound(t *testing.T) {
	t.Parallel()

	q := &fakeQ{row: videoRow{err: pgx.ErrNoRows}}
	v, ok, err := NewPG().Bind(q).GetVideo(context.Background(), "missing")
	if err != nil || ok || v.YTID != "" {
		t.Fatalf("missing video should be found=false without error, got %+v, %v, %v", v, ok, err)
	}
}

func TestGetVideo_Error(t *testing.T) {
	t.Parallel()

	q := &fakeQ{row: videoRow{err: errors.New("timeout")}}
	_, ok, err := NewPG().Bind(q).GetVideo(context.Background(), "A")
	if err == nil || ok {
		t.Fatalf("expected error, got ok=%v err=%v", ok, err)
	}
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected db error code, got %v", perr.CodeOf(err))
	}
}
