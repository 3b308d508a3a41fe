package dto

// Requests y responses para las dimensiones de referencia
// (categorías, ubicaciones y proveedores).

// CategoryRequest body para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationRequest body para crear/actualizar una ubicación.
type LocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationResponse representación HTTP de una ubicación.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SupplierRequest body para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}
