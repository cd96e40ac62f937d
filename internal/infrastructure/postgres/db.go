package postgres

import (
	"context"
	"errors"
	"fmt"

	crdbpgx "github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/pipeline"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDB is a DBTX that can also open transactions.
// *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it.
type TxDB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// readTxFunc runs fn inside one consistent read snapshot.
type readTxFunc func(ctx context.Context, fn func(q DBTX) error) error

// snapshotReader opens read-only repeatable-read transactions and retries
// them on serialization failures.
func snapshotReader(db TxDB) readTxFunc {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return func(ctx context.Context, fn func(q DBTX) error) error {
		return crdbpgx.ExecuteTx(ctx, db, opts, func(tx pgx.Tx) error {
			return fn(tx)
		})
	}
}

// paginate counts every match of p and fetches one page of it from the
// same snapshot.
func paginate[T any](
	ctx context.Context,
	readTx readTxFunc,
	p pipeline.Pipeline,
	req pagination.Request,
	scan func(pgx.Rows) (T, error),
) (pagination.Page[T], error) {
	countSQL, countArgs, err := p.CountSQL()
	if err != nil {
		return pagination.Page[T]{}, fmt.Errorf("failed to build count query: %w", err)
	}
	pageSQL, pageArgs, err := p.Page(req).ToSQL()
	if err != nil {
		return pagination.Page[T]{}, fmt.Errorf("failed to build page query: %w", err)
	}

	var (
		total int64
		items []T
	)
	err = readTx(ctx, func(q DBTX) error {
		items = items[:0]

		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count rows: %w", err)
		}

		rows, err := q.Query(ctx, pageSQL, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to query page: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return pagination.Page[T]{}, err
	}

	return pagination.NewPage(items, total, req), nil
}
