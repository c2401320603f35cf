package entity

import "time"

// Estados válidos para Catalog.
const (
	CatalogStatusActive   = "active"
	CatalogStatusArchived = "archived"
	CatalogStatusDraft    = "draft"
)

// Catalog representa una referencia de tela (diseño/material) a la que
// pertenecen los rollos. Code es inmutable después de la creación.
type Catalog struct {
	ID          string
	Code        string // único, inmutable post-creación
	Name        string
	Material    string
	Description string
	Status      string // active, archived, draft
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	DeletedAt   *time.Time
	DeletedBy   *string
}

// IsDeleted indica si el catálogo fue eliminado (soft delete).
func (c *Catalog) IsDeleted() bool { return c.DeletedAt != nil }
