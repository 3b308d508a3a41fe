package entity

// Supplier representa un proveedor de artículos.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
}
