// Package database defines the explicit unit-of-work handle every data-access
// function receives, and the transactors that hand those handles out.
package database

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

// Handle is either an auto-committing connection pool or an open transaction.
type Handle interface {
	sqlx.ExtContext
}

// TxFunc runs inside a unit of work.
type TxFunc func(ctx context.Context, db Handle) error

// Transactor hands out handles. Conn returns a handle whose statements commit
// individually; InTx and InLockedTx run fn inside one transaction.
type Transactor interface {
	Conn() Handle
	InTx(ctx context.Context, fn TxFunc) error
	InLockedTx(ctx context.Context, key string, fn TxFunc) error
}

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

// SQLTransactor runs units of work against PostgreSQL.
type SQLTransactor struct {
	db *sqlx.DB
}

func NewSQLTransactor(db *sqlx.DB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

func (t *SQLTransactor) Conn() Handle {
	return t.db
}

func (t *SQLTransactor) InTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return crerr.WithSecondaryError(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit tx")
	}
	return nil
}

// InLockedTx holds a transaction-scoped advisory lock on key for the whole of fn.
// Concurrent callers with the same key are serialized by PostgreSQL.
func (t *SQLTransactor) InLockedTx(ctx context.Context, key string, fn TxFunc) error {
	return t.InTx(ctx, func(ctx context.Context, db Handle) error {
		if _, err := db.ExecContext(ctx, advisoryLockQuery, key); err != nil {
			return crerr.Wrapf(err, "acquire advisory lock %q", key)
		}
		return fn(ctx, db)
	})
}

// MemoryTransactor backs the in-memory repositories. Handles are nil; locked
// units of work are serialized per key within the process.
type MemoryTransactor struct {
	locks sync.Map
}

func NewMemoryTransactor() *MemoryTransactor {
	return &MemoryTransactor{}
}

func (t *MemoryTransactor) Conn() Handle {
	return nil
}

func (t *MemoryTransactor) InTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, nil)
}

func (t *MemoryTransactor) InLockedTx(ctx context.Context, key string, fn TxFunc) error {
	value, _ := t.locks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, nil)
}
