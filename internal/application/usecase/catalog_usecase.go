package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/lifecycle"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para catálogos, con las guardas de
// archivado y eliminación del motor de ciclo de vida.
type CatalogUseCase struct {
	catalogs repository.CatalogRepository
	rolls    repository.RollRepository
	tx       TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(catalogs repository.CatalogRepository, rolls repository.RollRepository, tx TxRunner) *CatalogUseCase {
	return &CatalogUseCase{catalogs: catalogs, rolls: rolls, tx: tx}
}

// List lista catálogos con filtros y paginación.
func (uc *CatalogUseCase) List(in dto.ListCatalogsRequest) ([]dto.CatalogResponse, error) {
	in.DefaultPage()
	f := repository.CatalogFilter{
		Status: in.Status,
		Search: folder.String(in.Search),
	}
	list, err := uc.catalogs.List(f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCatalogResponse(c))
	}
	return items, nil
}

// GetByID obtiene un catálogo por ID. Eliminados son NOT_FOUND.
func (uc *CatalogUseCase) GetByID(id string) (*dto.CatalogResponse, error) {
	catalog, err := uc.loadCatalog(id)
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// Create crea un catálogo. Code es único y queda inmutable.
func (uc *CatalogUseCase) Create(ctx context.Context, actorID string, in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	if err := lifecycle.ValidateCatalogFields(in.Code, in.Name); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.CatalogStatusActive
	}
	if !lifecycle.ValidCatalogStatus(status) {
		return nil, domain.NewValidation("status debe ser active, archived o draft",
			map[string]any{"status": status})
	}

	// Camino rápido de unicidad; el índice único en code es el backstop.
	existing, err := uc.catalogs.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("el código de catálogo ya existe",
			map[string]any{"code": in.Code})
	}

	now := time.Now()
	catalog := &entity.Catalog{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Material:    in.Material,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		CreatedBy:   actorID,
		UpdatedAt:   now,
		UpdatedBy:   actorID,
	}

	err = uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		catalogRepo repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := catalogRepo.Create(catalog); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityCatalog, catalog.ID, entity.AuditActionCreate, actorID,
			map[string]any{
				"code":     catalog.Code,
				"name":     catalog.Name,
				"material": catalog.Material,
				"status":   catalog.Status,
			},
		))
	})
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// Update actualiza un catálogo. Code en el payload falla con
// IMMUTABLE_FIELD aun con el mismo valor; archivar exige cero rollos
// activos referenciando el catálogo.
func (uc *CatalogUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	catalog, err := uc.loadCatalog(id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidateCatalogCodeImmutable(catalog.ID, in.Code != nil); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if !lifecycle.ValidCatalogStatus(*in.Status) {
			return nil, domain.NewValidation("status debe ser active, archived o draft",
				map[string]any{"status": *in.Status})
		}
		if *in.Status == entity.CatalogStatusArchived && catalog.Status != entity.CatalogStatusArchived {
			active, err := uc.rolls.CountActiveByCatalog(catalog.ID)
			if err != nil {
				return nil, err
			}
			if err := lifecycle.ValidateCatalogArchive(catalog.ID, *in.Status, active); err != nil {
				return nil, err
			}
		}
	}
	if in.Name != nil {
		if err := lifecycle.ValidateCatalogFields(catalog.Code, *in.Name); err != nil {
			return nil, err
		}
	}

	changes := map[string]fieldChange{}
	if in.Name != nil && *in.Name != catalog.Name {
		changes["name"] = fieldChange{From: catalog.Name, To: *in.Name}
		catalog.Name = *in.Name
	}
	if in.Material != nil && *in.Material != catalog.Material {
		changes["material"] = fieldChange{From: catalog.Material, To: *in.Material}
		catalog.Material = *in.Material
	}
	if in.Description != nil && *in.Description != catalog.Description {
		changes["description"] = fieldChange{From: catalog.Description, To: *in.Description}
		catalog.Description = *in.Description
	}
	if in.Status != nil && *in.Status != catalog.Status {
		changes["status"] = fieldChange{From: catalog.Status, To: *in.Status}
		catalog.Status = *in.Status
	}
	catalog.UpdatedAt = time.Now()
	catalog.UpdatedBy = actorID

	err = uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		catalogRepo repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := catalogRepo.Update(catalog); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityCatalog, catalog.ID, entity.AuditActionUpdate, actorID, changes,
		))
	})
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// Delete hace soft delete del catálogo. Cualquier rollo no eliminado que
// lo referencie bloquea la eliminación, sin importar su estado.
func (uc *CatalogUseCase) Delete(ctx context.Context, actorID, id string) error {
	catalog, err := uc.loadCatalog(id)
	if err != nil {
		return err
	}
	count, err := uc.rolls.CountByCatalog(catalog.ID)
	if err != nil {
		return err
	}
	if err := lifecycle.ValidateCatalogDelete(catalog.ID, count); err != nil {
		return err
	}
	now := time.Now()
	return uc.tx.Run(ctx, func(
		_ repository.RollRepository,
		catalogRepo repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := catalogRepo.SoftDelete(catalog.ID, actorID, now); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityCatalog, catalog.ID, entity.AuditActionDelete, actorID, nil,
		))
	})
}

func (uc *CatalogUseCase) loadCatalog(id string) (*entity.Catalog, error) {
	catalog, err := uc.catalogs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if catalog == nil || catalog.IsDeleted() {
		return nil, domain.NewNotFound("catálogo", id)
	}
	return catalog, nil
}

func toCatalogResponse(c *entity.Catalog) *dto.CatalogResponse {
	if c == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Material:    c.Material,
		Description: c.Description,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
		UpdatedAt:   c.UpdatedAt,
		UpdatedBy:   c.UpdatedBy,
	}
}
