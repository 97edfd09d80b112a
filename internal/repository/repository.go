package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func recentQuery(table string, columns []string, limit int) (string, []any, error) {
	builder := psql.Select(columns...).From(table).OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder.ToSql()
}
