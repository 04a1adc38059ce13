// Package repo provides clickhouse access for the query log
package repo

import (
	"context"
	"time"

	"scribe/internal/modkit/repokit"
	"scribe/internal/services/querylog/domain"
)

// Table is the clickhouse table searches are written to
const Table = "search_queries"

// Schema creates Table when missing
const Schema = `
CREATE TABLE IF NOT EXISTS search_queries (
	id       UUID,
	content  String,
	strict   Bool,
	terms    Array(String),
	videos   UInt32,
	segments UInt32,
	at       DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (at, content)
TTL toDateTime(at) + INTERVAL 90 DAY`

// Repo defines the storage contract for the query log
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, entries ...domain.Entry) error
	Popular(ctx context.Context, since time.Time, limit int) ([]RowPopular, error)
}

// RowPopular is one aggregated row
type RowPopular struct {
	Content string
	Strict  bool
	Count   uint64
}

type queries struct{ db repokit.Columnar }

// NewCH binds the repo to a clickhouse seam
func NewCH(db repokit.Columnar) Repo {
	if db == nil {
		panic("querylog.Repo requires a non nil clickhouse seam")
	}
	return &queries{db: db}
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	return r.db.Exec(ctx, Schema)
}

func (r *queries) Insert(ctx context.Context, entries ...domain.Entry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		terms := e.Terms
		if terms == nil {
			terms = []string{}
		}
		rows = append(rows, []any{
			e.ID,
			e.Content,
			e.Strict,
			terms,
			uint32(max(e.Videos, 0)),
			uint32(max(e.Segments, 0)),
			e.At.UTC(),
		})
	}
	return r.db.Insert(ctx, Table, rows)
}

func (r *queries) Popular(ctx context.Context, since time.Time, limit int) ([]RowPopular, error) {
	const sql = `
SELECT content, strict, count() AS n
FROM search_queries
WHERE at >= ?
GROUP BY content, strict
ORDER BY n DESC, content ASC
LIMIT ?`
	rows, err := r.db.Query(ctx, sql, since.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RowPopular
	for rows.Next() {
		var rp RowPopular
		if err := rows.Scan(&rp.Content, &rp.Strict, &rp.Count); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}
