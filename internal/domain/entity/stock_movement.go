package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// ValidMovementType indica si el tipo pertenece al conjunto permitido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// StockMovement representa un hecho inmutable del kardex: una entrada o salida
// de stock de un artículo. Una vez persistido nunca se edita ni se borra;
// las correcciones son movimientos compensatorios nuevos.
type StockMovement struct {
	ID              string
	ItemID          string
	QuantityChanged int64  // magnitud, siempre positiva; la dirección la da Type
	Type            string // in, out
	Reason          string
	Timestamp       time.Time
	CreatedBy       string // actor inyectado por la capa que llama
}

// SignedQuantity devuelve la cantidad con signo según la dirección del movimiento.
func (m *StockMovement) SignedQuantity() int64 {
	if m.Type == MovementTypeOut {
		return -m.QuantityChanged
	}
	return m.QuantityChanged
}
