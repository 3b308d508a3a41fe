package dto

import "time"

// RegisterMovementRequest body para POST /api/items/:id/movements.
type RegisterMovementRequest struct {
	QuantityChanged int64  `json:"quantity_changed"`
	MovementType    string `json:"movement_type"` // in, out
	Reason          string `json:"reason,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del kardex.
type MovementResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	QuantityChanged int64     `json:"quantity_changed"`
	MovementType    string    `json:"movement_type"`
	Reason          string    `json:"reason,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// ApplyMovementResponse respuesta al registrar un movimiento: el artículo
// actualizado y las alertas que la evaluación posterior creó (puede ser vacío).
type ApplyMovementResponse struct {
	Item   *ItemResponse   `json:"item"`
	Alerts []AlertResponse `json:"alerts"`
}

// LedgerCheckResponse resultado de la verificación de consistencia del kardex:
// la suma con signo de los movimientos debe igualar la cantidad actual.
type LedgerCheckResponse struct {
	ItemID     string `json:"item_id"`
	Quantity   int64  `json:"quantity"`
	LedgerSum  int64  `json:"ledger_sum"`
	Consistent bool   `json:"consistent"`
}
