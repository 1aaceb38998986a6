package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

type auditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.Action,
		log.Details,
		log.IPAddress,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	query := `SELECT * FROM audit_logs ORDER BY created_at DESC LIMIT $1`
	var logs []*model.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}
