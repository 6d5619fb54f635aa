package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// El snapshot de promociones aplicadas se guarda como JSONB en la fila de la orden.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, code, COALESCE(customer_id, ''), status, subtotal, tier_discount_rate, tier_discount,
		product_promo_discount, order_promo_discount, points_used, point_rate_snapshot, points_discount,
		total_discount, final_amount, applied_promotions, COALESCE(created_by, ''),
		confirmed_at, completed_at, cancelled_at, created_at, updated_at`

// Create persiste la cabecera de una orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	applied, err := json.Marshal(o.AppliedPromotions)
	if err != nil {
		return fmt.Errorf("marshal applied promotions: %w", err)
	}
	query := `
		INSERT INTO orders (id, code, customer_id, status, subtotal, tier_discount_rate, tier_discount,
			product_promo_discount, order_promo_discount, points_used, point_rate_snapshot, points_discount,
			total_discount, final_amount, applied_promotions, created_by,
			confirmed_at, completed_at, cancelled_at, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULLIF($16, ''),
			$17, $18, $19, now(), now())`
	_, err = r.q.Exec(context.Background(), query,
		o.ID, o.Code, o.CustomerID, o.Status, o.Subtotal, o.TierDiscountRate, o.TierDiscount,
		o.ProductPromoDiscount, o.OrderPromoDiscount, o.PointsUsed, o.PointRateSnapshot, o.PointsDiscount,
		o.TotalDiscount, o.FinalAmount, applied, o.CreatedBy,
		o.ConfirmedAt, o.CompletedAt, o.CancelledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de orden (un serial por línea).
func (r *OrderRepo) CreateItem(it *entity.OrderItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, variant_id, serial_id, unit_price, line_discount, warranty_expiry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.OrderID, it.VariantID, it.SerialID, it.UnitPrice, it.LineDiscount, it.WarrantyExpiry)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// GetByID busca una orden por ID. Retorna nil, nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate busca una orden por ID y bloquea la fila: serializa transiciones
// de estado concurrentes sobre la misma orden.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persiste estado y marcas de tiempo de la orden.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, confirmed_at = $3, completed_at = $4, cancelled_at = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status, o.ConfirmedAt, o.CompletedAt, o.CancelledAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItem persiste la garantía estampada en una línea.
func (r *OrderRepo) UpdateItem(it *entity.OrderItem) error {
	query := `UPDATE order_items SET warranty_expiry = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, it.ID, it.WarrantyExpiry)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems devuelve las líneas de una orden.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, variant_id, serial_id, unit_price, line_discount, warranty_expiry, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.VariantID, &it.SerialID, &it.UnitPrice, &it.LineDiscount, &it.WarrantyExpiry, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListByCustomer devuelve las órdenes de un cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	return r.scanAll(rows)
}

// ListByStatus devuelve las órdenes en un estado, más recientes primero.
func (r *OrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	return r.scanAll(rows)
}

func (r *OrderRepo) scanOne(query string, arg any) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) scanAll(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var applied []byte
	err := row.Scan(
		&o.ID, &o.Code, &o.CustomerID, &o.Status, &o.Subtotal, &o.TierDiscountRate, &o.TierDiscount,
		&o.ProductPromoDiscount, &o.OrderPromoDiscount, &o.PointsUsed, &o.PointRateSnapshot, &o.PointsDiscount,
		&o.TotalDiscount, &o.FinalAmount, &applied, &o.CreatedBy,
		&o.ConfirmedAt, &o.CompletedAt, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(applied) > 0 {
		if err := json.Unmarshal(applied, &o.AppliedPromotions); err != nil {
			return nil, fmt.Errorf("unmarshal applied promotions: %w", err)
		}
	}
	return &o, nil
}
