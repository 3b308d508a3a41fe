package entity

// Location representa una ubicación física de almacenamiento.
type Location struct {
	ID          string
	Name        string
	Description string
}
