package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.LoyaltyRepository = (*LoyaltyRepo)(nil)

// LoyaltyRepo implementación de LoyaltyRepository sobre PostgreSQL (usable con pool o tx).
type LoyaltyRepo struct {
	q Querier
}

// NewLoyaltyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoyaltyRepository(q Querier) *LoyaltyRepo {
	return &LoyaltyRepo{q: q}
}

// GetBalance obtiene el saldo de puntos de un cliente. Sin fila todavía = saldo en cero.
func (r *LoyaltyRepo) GetBalance(customerID string) (*entity.LoyaltyPoint, error) {
	query := `
		SELECT customer_id, total_points, points_used, updated_at
		FROM loyalty_points WHERE customer_id = $1`
	return r.scanBalance(query, customerID)
}

// GetBalanceForUpdate obtiene el saldo bloqueando la fila (SELECT FOR UPDATE).
// Serializa redenciones concurrentes del mismo cliente.
func (r *LoyaltyRepo) GetBalanceForUpdate(customerID string) (*entity.LoyaltyPoint, error) {
	query := `
		SELECT customer_id, total_points, points_used, updated_at
		FROM loyalty_points WHERE customer_id = $1
		FOR UPDATE`
	return r.scanBalance(query, customerID)
}

// UpsertBalance inserta o actualiza el saldo del cliente.
func (r *LoyaltyRepo) UpsertBalance(b *entity.LoyaltyPoint) error {
	query := `
		INSERT INTO loyalty_points (customer_id, total_points, points_used, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (customer_id)
		DO UPDATE SET total_points = EXCLUDED.total_points,
		              points_used = EXCLUDED.points_used,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, b.CustomerID, b.TotalPoints, b.PointsUsed)
	if err != nil {
		return fmt.Errorf("upsert loyalty balance: %w", err)
	}
	return nil
}

// CreateTransaction persiste un movimiento de puntos (registro inmutable).
func (r *LoyaltyRepo) CreateTransaction(t *entity.LoyaltyTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO loyalty_transactions (id, customer_id, order_id, kind, points, reason, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, now())`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CustomerID, t.OrderID, string(t.Kind), t.Points, t.Reason)
	if err != nil {
		return fmt.Errorf("create loyalty transaction: %w", err)
	}
	return nil
}

// GetEarnByOrder devuelve la transacción EARN de una orden (nil si no existe).
func (r *LoyaltyRepo) GetEarnByOrder(orderID string) (*entity.LoyaltyTransaction, error) {
	query := `
		SELECT id, customer_id, COALESCE(order_id, ''), kind, points, reason, created_at
		FROM loyalty_transactions
		WHERE order_id = $1 AND kind = $2`
	var t entity.LoyaltyTransaction
	err := r.q.QueryRow(context.Background(), query, orderID, string(entity.LoyaltyTxEarn)).Scan(
		&t.ID, &t.CustomerID, &t.OrderID, &t.Kind, &t.Points, &t.Reason, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get earn by order: %w", err)
	}
	return &t, nil
}

// ListTransactions devuelve el historial de puntos de un cliente, más reciente primero.
func (r *LoyaltyRepo) ListTransactions(customerID string, limit, offset int) ([]*entity.LoyaltyTransaction, error) {
	query := `
		SELECT id, customer_id, COALESCE(order_id, ''), kind, points, reason, created_at
		FROM loyalty_transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loyalty transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.LoyaltyTransaction
	for rows.Next() {
		var t entity.LoyaltyTransaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.OrderID, &t.Kind, &t.Points, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loyalty transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *LoyaltyRepo) scanBalance(query, customerID string) (*entity.LoyaltyPoint, error) {
	var b entity.LoyaltyPoint
	err := r.q.QueryRow(context.Background(), query, customerID).Scan(
		&b.CustomerID, &b.TotalPoints, &b.PointsUsed, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LoyaltyPoint{CustomerID: customerID}, nil
		}
		return nil, fmt.Errorf("get loyalty balance: %w", err)
	}
	return &b, nil
}
