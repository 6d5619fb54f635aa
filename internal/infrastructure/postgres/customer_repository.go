package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)
var _ repository.TierRepository = (*TierRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, phone, email, COALESCE(tier_id, ''), total_purchase, created_at, updated_at`

// Create persiste un cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customers (id, name, phone, email, tier_id, total_purchase, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Phone, c.Email, c.TierID, c.TotalPurchase)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID busca un cliente por ID. Retorna nil, nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.TierID, &c.TotalPurchase, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de contacto del cliente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTier reasigna el nivel de fidelización del cliente.
func (r *CustomerRepo) UpdateTier(customerID, tierID string) error {
	query := `UPDATE customers SET tier_id = NULLIF($2, ''), updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, customerID, tierID)
	if err != nil {
		return fmt.Errorf("update customer tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AccrueTotalPurchase suma el monto final de una orden completada al acumulado del cliente.
func (r *CustomerRepo) AccrueTotalPurchase(customerID string, amount decimal.Decimal) error {
	query := `UPDATE customers SET total_purchase = total_purchase + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, customerID, amount)
	if err != nil {
		return fmt.Errorf("accrue total purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve clientes paginados por fecha de alta descendente.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.TierID, &c.TotalPurchase, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// TierRepo implementación de TierRepository sobre PostgreSQL.
type TierRepo struct {
	q Querier
}

// NewTierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTierRepository(q Querier) *TierRepo {
	return &TierRepo{q: q}
}

// GetByID busca un nivel por ID. Retorna nil, nil si no existe.
func (r *TierRepo) GetByID(id string) (*entity.CustomerTier, error) {
	query := `SELECT id, name, min_point, discount_rate FROM customer_tiers WHERE id = $1`
	var t entity.CustomerTier
	err := r.q.QueryRow(context.Background(), query, id).Scan(&t.ID, &t.Name, &t.MinPoint, &t.DiscountRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tier: %w", err)
	}
	return &t, nil
}

// List devuelve todos los niveles ordenados por umbral ascendente.
func (r *TierRepo) List() ([]*entity.CustomerTier, error) {
	query := `SELECT id, name, min_point, discount_rate FROM customer_tiers ORDER BY min_point ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerTier
	for rows.Next() {
		var t entity.CustomerTier
		if err := rows.Scan(&t.ID, &t.Name, &t.MinPoint, &t.DiscountRate); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
