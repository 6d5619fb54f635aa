package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// PromotionRepo implementación de PromotionRepository sobre PostgreSQL (usable con pool o tx).
// Los conjuntos (conflictos, niveles, objetivos) se guardan como text[].
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

const promotionColumns = `id, code, name, scope, type, value, max_discount_amount, min_order_value,
		start_date, end_date, status, usage_limit, usage_count, usage_per_customer,
		requires_code, priority, conflict_ids, eligible_tier_ids, target_product_ids, target_category_ids,
		created_at, updated_at`

// Create persiste una promoción.
func (r *PromotionRepo) Create(p *entity.Promotion) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promotions (id, code, name, scope, type, value, max_discount_amount, min_order_value,
			start_date, end_date, status, usage_limit, usage_count, usage_per_customer,
			requires_code, priority, conflict_ids, eligible_tier_ids, target_product_ids, target_category_ids,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Code, p.Name, p.Scope, p.Type, p.Value, p.MaxDiscountAmount, p.MinOrderValue,
		p.StartDate, p.EndDate, p.Status, p.UsageLimit, p.UsageCount, p.UsagePerCustomer,
		p.RequiresCode, p.Priority, p.ConflictIDs, p.EligibleTierIDs, p.TargetProductIDs, p.TargetCategoryIDs)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}

// GetByID busca una promoción por ID. Retorna nil, nil si no existe.
func (r *PromotionRepo) GetByID(id string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCode busca una promoción por código. Retorna nil, nil si no existe.
func (r *PromotionRepo) GetByCode(code string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = $1`
	return r.scanOne(query, code)
}

// GetForUpdate busca una promoción por ID y bloquea la fila: serializa el
// incremento del cupo cuando el uso se acerca al límite global.
func (r *PromotionRepo) GetForUpdate(id string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persiste los campos mutables de la promoción (incluido el contador de uso).
func (r *PromotionRepo) Update(p *entity.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $2, scope = $3, type = $4, value = $5, max_discount_amount = $6, min_order_value = $7,
		    start_date = $8, end_date = $9, status = $10, usage_limit = $11, usage_count = $12,
		    usage_per_customer = $13, requires_code = $14, priority = $15,
		    conflict_ids = $16, eligible_tier_ids = $17, target_product_ids = $18, target_category_ids = $19,
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Scope, p.Type, p.Value, p.MaxDiscountAmount, p.MinOrderValue,
		p.StartDate, p.EndDate, p.Status, p.UsageLimit, p.UsageCount,
		p.UsagePerCustomer, p.RequiresCode, p.Priority,
		p.ConflictIDs, p.EligibleTierIDs, p.TargetProductIDs, p.TargetCategoryIDs)
	if err != nil {
		return fmt.Errorf("update promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveAt devuelve las promociones ACTIVE cuya ventana cubre el instante t.
func (r *PromotionRepo) ListActiveAt(t time.Time) ([]*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY priority DESC, id ASC`
	rows, err := r.q.Query(context.Background(), query, entity.PromotionStatusActive, t)
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	return r.scanAll(rows)
}

// ListByStatus devuelve promociones de un estado, paginadas.
func (r *PromotionRepo) ListByStatus(status string, limit, offset int) ([]*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions WHERE status = $1
		ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list promotions by status: %w", err)
	}
	return r.scanAll(rows)
}

// CreateUsage persiste un uso confirmado. El constraint único (promotion_id, order_id)
// respalda la garantía de exactamente-un-uso por orden.
func (r *PromotionRepo) CreateUsage(u *entity.PromotionUsage) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promotion_usages (id, promotion_id, order_id, customer_id, discount_amount, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, now())`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.PromotionID, u.OrderID, u.CustomerID, u.DiscountAmount)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create promotion usage: %w", err)
	}
	return nil
}

// DeleteUsageByOrder elimina los usos de una orden (reversa al cancelar).
func (r *PromotionRepo) DeleteUsageByOrder(orderID string) error {
	query := `DELETE FROM promotion_usages WHERE order_id = $1`
	if _, err := r.q.Exec(context.Background(), query, orderID); err != nil {
		return fmt.Errorf("delete promotion usage: %w", err)
	}
	return nil
}

// ListUsageByOrder devuelve los usos confirmados de una orden.
func (r *PromotionRepo) ListUsageByOrder(orderID string) ([]*entity.PromotionUsage, error) {
	query := `
		SELECT id, promotion_id, order_id, COALESCE(customer_id, ''), discount_amount, created_at
		FROM promotion_usages WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list promotion usage: %w", err)
	}
	defer rows.Close()

	var out []*entity.PromotionUsage
	for rows.Next() {
		var u entity.PromotionUsage
		if err := rows.Scan(&u.ID, &u.PromotionID, &u.OrderID, &u.CustomerID, &u.DiscountAmount, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan promotion usage: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// CountUsageByCustomer cuenta usos confirmados de una promoción por un cliente.
func (r *PromotionRepo) CountUsageByCustomer(promotionID, customerID string) (int, error) {
	query := `SELECT count(*) FROM promotion_usages WHERE promotion_id = $1 AND customer_id = $2`
	var n int
	if err := r.q.QueryRow(context.Background(), query, promotionID, customerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count promotion usage: %w", err)
	}
	return n, nil
}

func (r *PromotionRepo) scanOne(query string, arg any) (*entity.Promotion, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	p, err := scanPromotion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return p, nil
}

func (r *PromotionRepo) scanAll(rows pgx.Rows) ([]*entity.Promotion, error) {
	defer rows.Close()
	var out []*entity.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Scope, &p.Type, &p.Value, &p.MaxDiscountAmount, &p.MinOrderValue,
		&p.StartDate, &p.EndDate, &p.Status, &p.UsageLimit, &p.UsageCount, &p.UsagePerCustomer,
		&p.RequiresCode, &p.Priority, &p.ConflictIDs, &p.EligibleTierIDs, &p.TargetProductIDs, &p.TargetCategoryIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
