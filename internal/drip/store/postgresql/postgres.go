package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/evm-faucet/drip/internal/drip/store"
)

const postgresDriverName = "postgres"

type PostgreSQL struct {
	db  *sql.DB
	now func() time.Time
}

func WithNow(nowFunc func() time.Time) func(*PostgreSQL) {
	return func(p *PostgreSQL) {
		p.now = nowFunc
	}
}

func New(dbInfo string, idleConns int, maxOpenConns int, opts ...func(postgreSQL *PostgreSQL)) (*PostgreSQL, error) {
	db, err := sql.Open(postgresDriverName, dbInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres DB: %+v", err)
	}

	db.SetMaxIdleConns(idleConns)
	db.SetMaxOpenConns(maxOpenConns)

	p := &PostgreSQL{
		db:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

const selectRequest = `SELECT
	 id
	,address
	,ip
	,created_at
	,updated_at
	,status
	,tx_hash
	,failure_reason
	FROM drip.requests`

func (p *PostgreSQL) Get(ctx context.Context, id int64) (*store.Request, error) {
	q := selectRequest + ` WHERE id = $1 LIMIT 1;`

	request, err := scanRequest(p.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return request, nil
}

func (p *PostgreSQL) SetBroadcast(ctx context.Context, id int64, txHash string) error {
	q := `UPDATE drip.requests
		SET status = 'broadcast', tx_hash = $2, failure_reason = NULL, updated_at = $3
		WHERE id = $1 AND status IN ('queued', 'failed');`

	return p.execUpdate(ctx, q, id, txHash, p.now())
}

func (p *PostgreSQL) SetSent(ctx context.Context, id int64, txHash string) error {
	q := `UPDATE drip.requests
		SET status = 'sent', updated_at = $3
		WHERE id = $1 AND tx_hash = $2 AND status = 'broadcast';`

	return p.execUpdate(ctx, q, id, txHash, p.now())
}

func (p *PostgreSQL) SetFailed(ctx context.Context, id int64, reason string) error {
	q := `UPDATE drip.requests
		SET status = 'failed', tx_hash = NULL, failure_reason = $2, updated_at = $3
		WHERE id = $1 AND status IN ('queued', 'failed');`

	return p.execUpdate(ctx, q, id, store.TruncateReason(reason), p.now())
}

func (p *PostgreSQL) SetBroadcastFailed(ctx context.Context, id int64, txHash string, reason string) error {
	q := `UPDATE drip.requests
		SET status = 'failed', tx_hash = NULL, failure_reason = $3, updated_at = $4
		WHERE id = $1 AND status = 'broadcast' AND tx_hash IS NOT DISTINCT FROM $2::text;`

	hash := sql.NullString{String: txHash, Valid: txHash != ""}

	return p.execUpdate(ctx, q, id, hash, store.TruncateReason(reason), p.now())
}

func (p *PostgreSQL) execUpdate(ctx context.Context, q string, args ...any) error {
	result, err := p.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrNotUpdated
	}

	return nil
}

func (p *PostgreSQL) GetBroadcast(ctx context.Context, after store.Cursor, limit int) ([]*store.Request, error) {
	q := selectRequest + `
		WHERE status = 'broadcast' AND (created_at, id) > ($1, $2)
		ORDER BY created_at ASC, id ASC
		LIMIT $3;`

	createdAfter := after.CreatedAt
	if createdAfter.IsZero() {
		createdAfter = time.Unix(0, 0).UTC()
	}

	rows, err := p.db.QueryContext(ctx, q, createdAfter, after.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*store.Request, 0, limit)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (p *PostgreSQL) CountByStatus(ctx context.Context) (map[store.Status]int64, error) {
	q := `SELECT status, COUNT(*) FROM drip.requests GROUP BY status;`

	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[store.Status]int64{
		store.StatusQueued:    0,
		store.StatusBroadcast: 0,
		store.StatusSent:      0,
		store.StatusFailed:    0,
	}

	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[store.Status(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (p *PostgreSQL) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*store.Request, error) {
	var (
		request       store.Request
		status        string
		txHash        sql.NullString
		failureReason sql.NullString
	)

	err := row.Scan(
		&request.ID,
		&request.Address,
		&request.IP,
		&request.CreatedAt,
		&request.UpdatedAt,
		&status,
		&txHash,
		&failureReason,
	)
	if err != nil {
		return nil, err
	}

	request.Status = store.Status(status)
	request.CreatedAt = request.CreatedAt.UTC()
	request.UpdatedAt = request.UpdatedAt.UTC()

	if txHash.Valid {
		request.TxHash = txHash.String
	}

	if failureReason.Valid {
		request.FailureReason = failureReason.String
	}

	return &request, nil
}
