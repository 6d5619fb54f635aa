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

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, name, selling_price, purchase_price_avg, created_at, updated_at`

// Create persiste una variante.
func (r *VariantRepo) Create(v *entity.Variant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO variants (id, product_id, sku, name, selling_price, purchase_price_avg, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProductID, v.SKU, v.Name, v.SellingPrice, v.PurchasePriceAvg)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID busca una variante por ID. Retorna nil, nil si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU busca una variante por SKU. Retorna nil, nil si no existe.
func (r *VariantRepo) GetBySKU(sku string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE sku = $1`
	return r.scanOne(query, sku)
}

// Update actualiza los campos editables de la variante.
func (r *VariantRepo) Update(v *entity.Variant) error {
	query := `
		UPDATE variants
		SET name = $2, selling_price = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, v.ID, v.Name, v.SellingPrice)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePurchaseAvg actualiza solo el costo promedio ponderado (lo usa recepción).
func (r *VariantRepo) UpdatePurchaseAvg(variantID string, avg decimal.Decimal) error {
	query := `UPDATE variants SET purchase_price_avg = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, variantID, avg)
	if err != nil {
		return fmt.Errorf("update purchase avg: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve variantes paginadas por fecha de creación descendente.
func (r *VariantRepo) List(limit, offset int) ([]*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var out []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.SellingPrice, &v.PurchasePriceAvg, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *VariantRepo) scanOne(query string, arg any) (*entity.Variant, error) {
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.SellingPrice, &v.PurchasePriceAvg, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}
