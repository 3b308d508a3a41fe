package entity

// Category agrupa artículos por tipo (dimensión de referencia 1:N con Item).
type Category struct {
	ID          string
	Name        string
	Description string
}
