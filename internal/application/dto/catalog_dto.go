package dto

import "time"

// CreateCatalogRequest entrada para crear un catálogo.
type CreateCatalogRequest struct {
	Code        string `json:"code" validate:"required,min=3,max=50"`
	Name        string `json:"name" validate:"required,max=100"`
	Material    string `json:"material" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=active archived draft"`
}

// UpdateCatalogRequest entrada para actualización parcial. Code presente
// en el payload falla siempre con IMMUTABLE_FIELD, aun con el mismo valor.
type UpdateCatalogRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Material    *string `json:"material" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=active archived draft"`
}

// ListCatalogsRequest filtros de listado.
type ListCatalogsRequest struct {
	Status string `query:"status"`
	Search string `query:"search"`
	PageRequest
}

// CatalogResponse salida de un catálogo.
type CatalogResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Material    string    `json:"material,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}
