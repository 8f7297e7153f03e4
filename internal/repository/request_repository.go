package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tawsila/internal/models"
)

var ErrRequestNotFound = errors.New("delivery request not found")

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, req models.DeliveryRequest) error {
	const query = `
		INSERT INTO delivery_requests (
			id, buyer_id, title, pickup_text, dropoff_text, budget_dzd, contact,
			status, escrow, driver_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.BuyerID,
		req.Title,
		req.PickupText,
		req.DropoffText,
		req.BudgetDZD,
		req.Contact,
		req.Status,
		req.Escrow,
		req.DriverID,
	)
	return err
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (models.DeliveryRequest, error) {
	const query = `
		SELECT id, buyer_id, title, pickup_text, dropoff_text, budget_dzd, contact,
		       status, escrow, driver_id, created_at, updated_at
		FROM delivery_requests WHERE id = $1
	`
	return r.scanRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *RequestRepository) Update(ctx context.Context, req models.DeliveryRequest) error {
	const query = `
		UPDATE delivery_requests
		SET status = $2, escrow = $3, driver_id = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, req.ID, req.Status, req.Escrow, req.DriverID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) ListOpen(ctx context.Context, limit int, offset int) ([]models.DeliveryRequest, error) {
	const query = `
		SELECT id, buyer_id, title, pickup_text, dropoff_text, budget_dzd, contact,
		       status, escrow, driver_id, created_at, updated_at
		FROM delivery_requests
		WHERE status = 'open'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *RequestRepository) ListByBuyer(ctx context.Context, buyerID string) ([]models.DeliveryRequest, error) {
	const query = `
		SELECT id, buyer_id, title, pickup_text, dropoff_text, budget_dzd, contact,
		       status, escrow, driver_id, created_at, updated_at
		FROM delivery_requests
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, buyerID)
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]models.DeliveryRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.DeliveryRequest
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *RequestRepository) scanRequest(row pgx.Row) (models.DeliveryRequest, error) {
	var req models.DeliveryRequest
	if err := row.Scan(
		&req.ID,
		&req.BuyerID,
		&req.Title,
		&req.PickupText,
		&req.DropoffText,
		&req.BudgetDZD,
		&req.Contact,
		&req.Status,
		&req.Escrow,
		&req.DriverID,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DeliveryRequest{}, ErrRequestNotFound
		}
		return models.DeliveryRequest{}, err
	}
	return req, nil
}
