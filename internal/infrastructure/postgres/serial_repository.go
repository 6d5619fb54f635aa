package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación de SerialRepository sobre PostgreSQL (usable con pool o tx).
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

const serialColumns = `id, variant_id, serial_number, status, COALESCE(order_id, ''), sold_date, created_at, updated_at`

// Create persiste un serial nuevo (normalmente AVAILABLE, desde recepción).
func (r *SerialRepo) Create(s *entity.Serial) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO serials (id, variant_id, serial_number, status, order_id, sold_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.VariantID, s.SerialNumber, s.Status, s.OrderID, s.SoldDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create serial: %w", err)
	}
	return nil
}

// GetByID busca un serial por ID. Retorna nil, nil si no existe.
func (r *SerialRepo) GetByID(id string) (*entity.Serial, error) {
	query := `SELECT ` + serialColumns + ` FROM serials WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate busca un serial por ID y bloquea la fila.
func (r *SerialRepo) GetForUpdate(id string) (*entity.Serial, error) {
	query := `SELECT ` + serialColumns + ` FROM serials WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetBySerialNumberForUpdate busca por número de serie dentro de una variante y bloquea la fila.
func (r *SerialRepo) GetBySerialNumberForUpdate(variantID, serialNumber string) (*entity.Serial, error) {
	query := `SELECT ` + serialColumns + ` FROM serials WHERE variant_id = $1 AND serial_number = $2 FOR UPDATE`
	var s entity.Serial
	err := r.q.QueryRow(context.Background(), query, variantID, serialNumber).Scan(
		&s.ID, &s.VariantID, &s.SerialNumber, &s.Status, &s.OrderID, &s.SoldDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial by number: %w", err)
	}
	return &s, nil
}

// ListAvailableForUpdate devuelve hasta limit seriales AVAILABLE de la variante en orden
// de llegada, bloqueando las filas. SKIP LOCKED evita que dos órdenes concurrentes
// se queden esperando los mismos seriales.
func (r *SerialRepo) ListAvailableForUpdate(variantID string, limit int) ([]*entity.Serial, error) {
	query := `
		SELECT ` + serialColumns + `
		FROM serials
		WHERE variant_id = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(context.Background(), query, variantID, entity.SerialStatusAvailable, limit)
	if err != nil {
		return nil, fmt.Errorf("list available serials: %w", err)
	}
	defer rows.Close()

	var out []*entity.Serial
	for rows.Next() {
		var s entity.Serial
		if err := rows.Scan(&s.ID, &s.VariantID, &s.SerialNumber, &s.Status, &s.OrderID, &s.SoldDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// CountAvailable cuenta los seriales AVAILABLE de una variante (chequeo de coherencia
// entre el conteo de seriales y los contadores de inventario).
func (r *SerialRepo) CountAvailable(variantID string) (int, error) {
	query := `SELECT count(*) FROM serials WHERE variant_id = $1 AND status = $2`
	var n int
	if err := r.q.QueryRow(context.Background(), query, variantID, entity.SerialStatusAvailable).Scan(&n); err != nil {
		return 0, fmt.Errorf("count available serials: %w", err)
	}
	return n, nil
}

// Update persiste estado, orden y fecha de venta de un serial.
func (r *SerialRepo) Update(s *entity.Serial) error {
	query := `
		UPDATE serials
		SET status = $2, order_id = NULLIF($3, ''), sold_date = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, s.ID, s.Status, s.OrderID, s.SoldDate)
	if err != nil {
		return fmt.Errorf("update serial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrder devuelve los seriales vinculados a una orden.
func (r *SerialRepo) ListByOrder(orderID string) ([]*entity.Serial, error) {
	query := `SELECT ` + serialColumns + ` FROM serials WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list serials by order: %w", err)
	}
	defer rows.Close()

	var out []*entity.Serial
	for rows.Next() {
		var s entity.Serial
		if err := rows.Scan(&s.ID, &s.VariantID, &s.SerialNumber, &s.Status, &s.OrderID, &s.SoldDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SerialRepo) scanOne(query string, arg any) (*entity.Serial, error) {
	var s entity.Serial
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.VariantID, &s.SerialNumber, &s.Status, &s.OrderID, &s.SoldDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial: %w", err)
	}
	return &s, nil
}
