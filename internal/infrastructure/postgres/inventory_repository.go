package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene los contadores de inventario de una variante.
// Si no hay fila todavía, devuelve un registro en cero (variante sin stock).
func (r *InventoryRepo) Get(variantID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT variant_id, quantity_physical, quantity_reserved, min_threshold, updated_at
		FROM inventory WHERE variant_id = $1`
	return r.scan(query, variantID)
}

// GetForUpdate obtiene los contadores y bloquea la fila (SELECT FOR UPDATE).
// Serializa reservas y salidas concurrentes sobre la misma variante.
func (r *InventoryRepo) GetForUpdate(variantID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT variant_id, quantity_physical, quantity_reserved, min_threshold, updated_at
		FROM inventory WHERE variant_id = $1
		FOR UPDATE`
	return r.scan(query, variantID)
}

// Upsert inserta o actualiza los contadores de la variante.
func (r *InventoryRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (variant_id, quantity_physical, quantity_reserved, min_threshold, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (variant_id)
		DO UPDATE SET quantity_physical = EXCLUDED.quantity_physical,
		              quantity_reserved = EXCLUDED.quantity_reserved,
		              min_threshold = EXCLUDED.min_threshold,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.VariantID, record.QuantityPhysical, record.QuantityReserved, record.MinThreshold)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scan(query, variantID string) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&rec.VariantID, &rec.QuantityPhysical, &rec.QuantityReserved, &rec.MinThreshold, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{VariantID: variantID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}
