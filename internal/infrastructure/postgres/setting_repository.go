package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación de SettingRepository sobre PostgreSQL.
// Los valores se guardan como texto y se interpretan al leer; una clave ausente
// o mal formada devuelve el default del caller.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// GetString lee el valor de una clave; def si no existe.
func (r *SettingRepo) GetString(key, def string) (string, error) {
	query := `SELECT value FROM settings WHERE key = $1`
	var value string
	err := r.q.QueryRow(context.Background(), query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return def, nil
		}
		return def, fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// GetInt lee la clave como entero; def si no existe o no parsea.
func (r *SettingRepo) GetInt(key string, def int64) (int64, error) {
	raw, err := r.GetString(key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// GetDecimal lee la clave como decimal; def si no existe o no parsea.
func (r *SettingRepo) GetDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	raw, err := r.GetString(key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return def, nil
	}
	return d, nil
}

// GetBool lee la clave como booleano; def si no existe o no parsea.
func (r *SettingRepo) GetBool(key string, def bool) (bool, error) {
	raw, err := r.GetString(key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// Set inserta o actualiza una clave de configuración.
func (r *SettingRepo) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, key, value); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
