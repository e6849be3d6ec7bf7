package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

const insertAuditQuery = `
	INSERT INTO ledger_repair_audit (
		id, run_id, action, resource_type, resource_id,
		before_state, after_state, status, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type dbExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AuditRepository implements usecase.AuditRepository
type AuditRepository struct {
	db dbExecutor
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return newAuditRepositoryWithDB(pool)
}

func newAuditRepositoryWithDB(db dbExecutor) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit log outside any repair transaction. Used for run outcomes,
// which must survive a rollback.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return insertAudit(ctx, r.db, log)
}

// CreateTx inserts an audit log inside tx, so it commits or rolls back with the repair.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return insertAudit(ctx, pgxTx(tx), log)
}

func insertAudit(ctx context.Context, db dbExecutor, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	before, err := marshalState(log.BeforeState)
	if err != nil {
		return err
	}
	after, err := marshalState(log.AfterState)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, insertAuditQuery,
		log.ID,
		log.RunID,
		string(log.Action),
		log.ResourceType,
		log.ResourceID,
		before,
		after,
		string(log.Status),
		log.ErrorMessage,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

// List retrieves audit logs with filtering, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, run_id, action, resource_type, resource_id,
		       before_state, after_state, status, error_message, created_at
		FROM ledger_repair_audit
		WHERE 1=1`
	args := []any{}

	if filter.RunID != "" {
		args = append(args, filter.RunID)
		query += fmt.Sprintf(" AND run_id = $%d", len(args))
	}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log                   domain.AuditLog
			action, status        string
			beforeJSON, afterJSON []byte
		)

		err := rows.Scan(
			&log.ID,
			&log.RunID,
			&action,
			&log.ResourceType,
			&log.ResourceID,
			&beforeJSON,
			&afterJSON,
			&status,
			&log.ErrorMessage,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		log.Action = domain.AuditAction(action)
		log.Status = domain.AuditStatus(status)

		if beforeJSON != nil {
			_ = json.Unmarshal(beforeJSON, &log.BeforeState)
		}

		if afterJSON != nil {
			_ = json.Unmarshal(afterJSON, &log.AfterState)
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalState(state domain.JSON) ([]byte, error) {
	if state == nil {
		return nil, nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal audit state: %w", err)
	}
	return data, nil
}
