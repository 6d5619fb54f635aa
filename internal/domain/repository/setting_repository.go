package repository

import "github.com/shopspring/decimal"

// SettingRepository es el proveedor de configuración de negocio (tarifas de fidelización,
// márgenes, etc.). Cada lectura devuelve el default si la clave no existe. Los casos de
// uso leen un snapshot completo por operación; nunca cachean valores entre operaciones.
type SettingRepository interface {
	GetString(key, def string) (string, error)
	GetInt(key string, def int64) (int64, error)
	GetDecimal(key string, def decimal.Decimal) (decimal.Decimal, error)
	GetBool(key string, def bool) (bool, error)
	Set(key, value string) error
}
