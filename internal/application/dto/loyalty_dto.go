package dto

// AdjustPointsRequest ajuste administrativo de puntos (delta firmado).
type AdjustPointsRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// ResetPointsRequest reset administrativo del saldo.
type ResetPointsRequest struct {
	Reason string `json:"reason"`
}

// BalanceResponse saldo de puntos de un cliente.
type BalanceResponse struct {
	CustomerID      string `json:"customer_id"`
	TotalPoints     int64  `json:"total_points"`
	PointsUsed      int64  `json:"points_used"`
	PointsAvailable int64  `json:"points_available"`
}
