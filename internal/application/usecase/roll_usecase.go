package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/internal/domain/lifecycle"
	"github.com/tejidosandina/rollos-api/internal/domain/repository"
)

// RollUseCase casos de uso CRUD para rollos. Toda mutación valida con el
// motor de ciclo de vida, persiste y registra audit log en una transacción.
type RollUseCase struct {
	rolls    repository.RollRepository
	catalogs repository.CatalogRepository
	tx       TxRunner
}

// NewRollUseCase construye el caso de uso.
func NewRollUseCase(rolls repository.RollRepository, catalogs repository.CatalogRepository, tx TxRunner) *RollUseCase {
	return &RollUseCase{rolls: rolls, catalogs: catalogs, tx: tx}
}

// folder case-folding Unicode para términos de búsqueda (colores con
// tildes, etc.). El repositorio compara con ILIKE; esto normaliza el lado
// del cliente de la comparación.
var folder = cases.Fold()

// List lista rollos con filtros y paginación.
func (uc *RollUseCase) List(in dto.ListRollsRequest) ([]dto.RollResponse, error) {
	in.DefaultPage()
	f := repository.RollFilter{
		CatalogID: in.CatalogID,
		Status:    in.Status,
		Degree:    in.Degree,
		Color:     folder.String(in.Color),
		Search:    folder.String(in.Search),
	}
	list, err := uc.rolls.List(f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RollResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRollResponse(r))
	}
	return items, nil
}

// GetByID obtiene un rollo por ID. Rollos eliminados son NOT_FOUND.
func (uc *RollUseCase) GetByID(id string) (*dto.RollResponse, error) {
	roll, err := uc.loadRoll(id)
	if err != nil {
		return nil, err
	}
	return toRollResponse(roll), nil
}

// Create crea un rollo. Contrato: validar campos → catálogo existente →
// disponibilidad de barcode → persistir + audit en transacción.
// El chequeo de disponibilidad es el camino rápido; el índice único
// parcial de la BD es el backstop autoritativo contra la carrera
// check-then-insert (se mapea a CONFLICT al insertar).
func (uc *RollUseCase) Create(ctx context.Context, actorID string, in dto.CreateRollRequest) (*dto.RollResponse, error) {
	if in.Barcode == "" || in.CatalogID == "" || in.Color == "" || in.Degree == "" {
		return nil, domain.NewValidation("barcode, catalog_id, color y degree son requeridos", nil)
	}
	status := in.Status
	if status == "" {
		status = entity.RollStatusInStock
	}
	if err := lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode:      &in.Barcode,
		Color:        &in.Color,
		Degree:       &in.Degree,
		LengthMeters: &in.LengthMeters,
		Location:     &in.Location,
		Status:       &status,
	}); err != nil {
		return nil, err
	}

	catalog, err := uc.catalogs.GetByID(in.CatalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil || catalog.IsDeleted() {
		return nil, domain.NewValidation("catalog_id no referencia un catálogo existente",
			map[string]any{"catalog_id": in.CatalogID})
	}

	if err := uc.checkBarcodeAvailable(in.Barcode, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	roll := &entity.Roll{
		ID:           uuid.New().String(),
		Barcode:      in.Barcode,
		CatalogID:    in.CatalogID,
		Color:        in.Color,
		Degree:       in.Degree,
		LengthMeters: in.LengthMeters,
		Status:       status,
		Location:     in.Location,
		CreatedAt:    now,
		CreatedBy:    actorID,
		UpdatedAt:    now,
		UpdatedBy:    actorID,
	}

	err = uc.tx.Run(ctx, func(
		rollRepo repository.RollRepository,
		_ repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// El repositorio mapea la violación del índice único parcial a CONFLICT.
		if err := rollRepo.Create(roll); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityRoll, roll.ID, entity.AuditActionCreate, actorID,
			map[string]any{
				"barcode":       roll.Barcode,
				"catalog_id":    roll.CatalogID,
				"color":         roll.Color,
				"degree":        roll.Degree,
				"length_meters": roll.LengthMeters,
				"status":        roll.Status,
				"location":      roll.Location,
			},
		))
	})
	if err != nil {
		return nil, err
	}
	return toRollResponse(roll), nil
}

// Update actualiza un rollo. Contrato: cargar (NOT_FOUND si ausente o
// eliminado) → validar campos → guarda de transición de estado →
// disponibilidad de barcode solo si cambia → persistir + audit.
func (uc *RollUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateRollRequest) (*dto.RollResponse, error) {
	roll, err := uc.loadRoll(id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidateRollFields(lifecycle.RollFields{
		Barcode:      in.Barcode,
		Color:        in.Color,
		Degree:       in.Degree,
		LengthMeters: in.LengthMeters,
		Location:     in.Location,
		Status:       in.Status,
	}); err != nil {
		return nil, err
	}

	if in.Status != nil {
		if err := lifecycle.ValidateTransition(roll.ID, roll.Status, *in.Status); err != nil {
			return nil, err
		}
	}
	if in.Barcode != nil && *in.Barcode != roll.Barcode {
		// Solo se verifica disponibilidad cuando el barcode cambia;
		// excludeID evita el conflicto contra el propio registro.
		if err := uc.checkBarcodeAvailable(*in.Barcode, roll.ID); err != nil {
			return nil, err
		}
	}
	if in.CatalogID != nil && *in.CatalogID != roll.CatalogID {
		catalog, err := uc.catalogs.GetByID(*in.CatalogID)
		if err != nil {
			return nil, err
		}
		if catalog == nil || catalog.IsDeleted() {
			return nil, domain.NewValidation("catalog_id no referencia un catálogo existente",
				map[string]any{"catalog_id": *in.CatalogID})
		}
	}

	changes := map[string]fieldChange{}
	if in.Barcode != nil && *in.Barcode != roll.Barcode {
		changes["barcode"] = fieldChange{From: roll.Barcode, To: *in.Barcode}
		roll.Barcode = *in.Barcode
	}
	if in.CatalogID != nil && *in.CatalogID != roll.CatalogID {
		changes["catalog_id"] = fieldChange{From: roll.CatalogID, To: *in.CatalogID}
		roll.CatalogID = *in.CatalogID
	}
	if in.Color != nil && *in.Color != roll.Color {
		changes["color"] = fieldChange{From: roll.Color, To: *in.Color}
		roll.Color = *in.Color
	}
	if in.Degree != nil && *in.Degree != roll.Degree {
		changes["degree"] = fieldChange{From: roll.Degree, To: *in.Degree}
		roll.Degree = *in.Degree
	}
	if in.LengthMeters != nil && !in.LengthMeters.Equal(roll.LengthMeters) {
		changes["length_meters"] = fieldChange{From: roll.LengthMeters, To: *in.LengthMeters}
		roll.LengthMeters = *in.LengthMeters
	}
	if in.Location != nil && *in.Location != roll.Location {
		changes["location"] = fieldChange{From: roll.Location, To: *in.Location}
		roll.Location = *in.Location
	}
	if in.Status != nil && *in.Status != roll.Status {
		changes["status"] = fieldChange{From: roll.Status, To: *in.Status}
		roll.Status = *in.Status
	}
	roll.UpdatedAt = time.Now()
	roll.UpdatedBy = actorID

	err = uc.tx.Run(ctx, func(
		rollRepo repository.RollRepository,
		_ repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := rollRepo.Update(roll); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityRoll, roll.ID, entity.AuditActionUpdate, actorID, changes,
		))
	})
	if err != nil {
		return nil, err
	}
	return toRollResponse(roll), nil
}

// Delete hace soft delete del rollo. Eliminar uno ya eliminado es NOT_FOUND.
func (uc *RollUseCase) Delete(ctx context.Context, actorID, id string) error {
	roll, err := uc.loadRoll(id)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.tx.Run(ctx, func(
		rollRepo repository.RollRepository,
		_ repository.CatalogRepository,
		_ repository.UserRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := rollRepo.SoftDelete(roll.ID, actorID, now); err != nil {
			return err
		}
		return auditRepo.Create(newAuditEntry(
			entity.AuditEntityRoll, roll.ID, entity.AuditActionDelete, actorID, nil,
		))
	})
}

// loadRoll carga un rollo existente; ausente o eliminado es NOT_FOUND.
func (uc *RollUseCase) loadRoll(id string) (*entity.Roll, error) {
	roll, err := uc.rolls.GetByID(id)
	if err != nil {
		return nil, err
	}
	if roll == nil || roll.IsDeleted() {
		return nil, domain.NewNotFound("rollo", id)
	}
	return roll, nil
}

// checkBarcodeAvailable es el camino rápido del invariante de barcode:
// a lo sumo un rollo activo por barcode. El índice único parcial es el
// backstop ante la ventana check-then-insert.
func (uc *RollUseCase) checkBarcodeAvailable(barcode, excludeID string) error {
	n, err := uc.rolls.CountActiveByBarcode(barcode, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewConflict("el barcode ya está en uso por un rollo activo",
			map[string]any{"barcode": barcode})
	}
	return nil
}

func toRollResponse(r *entity.Roll) *dto.RollResponse {
	if r == nil {
		return nil
	}
	return &dto.RollResponse{
		ID:           r.ID,
		Barcode:      r.Barcode,
		CatalogID:    r.CatalogID,
		Color:        r.Color,
		Degree:       r.Degree,
		LengthMeters: r.LengthMeters,
		Status:       r.Status,
		Location:     r.Location,
		CreatedAt:    r.CreatedAt,
		CreatedBy:    r.CreatedBy,
		UpdatedAt:    r.UpdatedAt,
		UpdatedBy:    r.UpdatedBy,
	}
}
