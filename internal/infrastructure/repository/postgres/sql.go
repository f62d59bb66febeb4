package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Connection poolers can recycle a session between the driver's prepare and
// execute. lib/pq surfaces that as one of these two errors, and a single
// re-run goes out on a fresh statement.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "parameters")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000")
}

func isStaleStatement(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

func selectContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if err == nil || !isStaleStatement(err) {
		return err
	}
	return db.SelectContext(ctx, dest, query, args...)
}

func getContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.GetContext(ctx, dest, query, args...)
	if err == nil || !isStaleStatement(err) {
		return err
	}
	return db.GetContext(ctx, dest, query, args...)
}

func nullStringToInt64(v sql.NullString) int64 {
	if !v.Valid {
		return 0
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v.String), 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
