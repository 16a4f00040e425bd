package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/retry"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const (
	codeUniqueViolation      pq.ErrorCode = "23505"
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
	codeInvalidSQLStatement  pq.ErrorCode = "26000"
)

type txKey struct{}

// queryer is the part of sqlx shared by *sqlx.DB and *sqlx.Tx.
type queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sqlx.DB) queryer {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return db
}

// TxManager implements usecase.Transactor on top of database/sql
// transactions. Serialization failures and deadlocks re-run the whole
// function with backoff.
type TxManager struct {
	db     *sqlx.DB
	policy retry.Policy
	logger *logging.Logger
}

func NewTxManager(db *sqlx.DB, maxRetries uint, logger *logging.Logger) *TxManager {
	if logger == nil {
		logger = logging.Default()
	}
	policy := retry.DefaultPolicy()
	if maxRetries > 0 {
		policy.MaxTries = maxRetries
	}
	return &TxManager{db: db, policy: policy, logger: logger}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	err := retry.Do(ctx, m.policy, isTransient, func(ctx context.Context) error {
		return m.runOnce(ctx, fn)
	}, func(err error, attempt uint, wait time.Duration) {
		m.logger.WarnContext(ctx, "transaction conflict, retrying",
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
	})
	if err != nil && isTransient(err) {
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
	return err
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// isUniqueViolation reports a 23505 on the named constraint, or on any
// constraint when constraint is empty.
func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := pqError(err)
	if !ok || pqErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// isTransient reports errors that a fresh transaction may not hit again.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pqErr, ok := pqError(err); ok {
		switch {
		case pqErr.Code == codeSerializationFailure, pqErr.Code == codeDeadlockDetected:
			return true
		case pqErr.Code.Class() == "08":
			return true
		}
	}
	return isUnnamedPreparedStatementMissing(err)
}

// isUnnamedPreparedStatementMissing matches the error a transaction-pooling
// proxy produces when it moves the session between backends mid-statement.
func isUnnamedPreparedStatementMissing(err error) bool {
	if pqErr, ok := pqError(err); ok && pqErr.Code == codeInvalidSQLStatement {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unnamed prepared statement does not exist")
}

func affectedOne(result sql.Result, op string) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "rows affected %s", op)
	}
	return affected > 0, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTime(v time.Time) sql.NullTime {
	return sql.NullTime{Time: v, Valid: !v.IsZero()}
}
