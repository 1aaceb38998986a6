package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/repository"
)

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (id, alert_type, message, priority, related_user_id, acknowledged, created_at, acknowledged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.AlertType,
		alert.Message,
		alert.Priority,
		alert.RelatedUserID,
		alert.Acknowledged,
		alert.CreatedAt,
		alert.AcknowledgedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Get(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	query := `SELECT * FROM alerts WHERE id = $1`
	var alert model.Alert
	err := r.db.GetContext(ctx, &alert, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *model.Alert) error {
	query := `UPDATE alerts SET acknowledged = $1, acknowledged_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, alert.Acknowledged, alert.AcknowledgedAt, alert.ID)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	return nil
}

func (r *alertRepository) ListUnacknowledged(ctx context.Context) ([]*model.Alert, error) {
	query := `SELECT * FROM alerts WHERE acknowledged = FALSE ORDER BY created_at DESC`
	var alerts []*model.Alert
	err := r.db.SelectContext(ctx, &alerts, query)
	return alerts, err
}
