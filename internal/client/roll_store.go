package client

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain/entity"
	"github.com/tejidosandina/rollos-api/pkg/syncstore"
)

// RollStore caché optimista de rollos sobre la API. Las mutaciones se
// reflejan de inmediato en la caché y se reconcilian (o revierten) cuando
// el servidor responde.
type RollStore struct {
	api   *Client
	cache *syncstore.Store[dto.RollResponse]
}

// NewRollStore construye la caché atada al cliente HTTP.
func NewRollStore(api *Client) *RollStore {
	return &RollStore{
		api:   api,
		cache: syncstore.New(func(r dto.RollResponse) string { return r.ID }),
	}
}

// Refresh recarga la caché con el listado autoritativo del servidor.
func (s *RollStore) Refresh(ctx context.Context, filters url.Values) error {
	list, err := s.api.ListRolls(ctx, filters)
	if err != nil {
		return err
	}
	for _, r := range list {
		s.cache.Put(r)
	}
	return nil
}

// Get devuelve el rollo cacheado, si existe.
func (s *RollStore) Get(id string) (dto.RollResponse, bool) { return s.cache.Get(id) }

// Pending indica si hay una mutación en vuelo para el id.
func (s *RollStore) Pending(id string) bool { return s.cache.Pending(id) }

// Create inserta un rollo especulativo (id temporal, timestamps locales)
// y lo reconcilia con el registro autoritativo del servidor.
func (s *RollStore) Create(ctx context.Context, in dto.CreateRollRequest) (dto.RollResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.RollStatusInStock
	}
	now := time.Now()
	speculative := dto.RollResponse{
		ID:           "tmp-" + uuid.New().String(),
		Barcode:      in.Barcode,
		CatalogID:    in.CatalogID,
		Color:        in.Color,
		Degree:       in.Degree,
		LengthMeters: in.LengthMeters,
		Status:       status,
		Location:     in.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.cache.Create(ctx, speculative.ID, speculative, func(ctx context.Context) (dto.RollResponse, error) {
		out, err := s.api.CreateRoll(ctx, in)
		if err != nil {
			return dto.RollResponse{}, err
		}
		return *out, nil
	})
}

// Update aplica los campos de inmediato en la caché y reconcilia con la
// respuesta del servidor; en fallo restaura el snapshot exacto.
func (s *RollStore) Update(ctx context.Context, id string, in dto.UpdateRollRequest) (dto.RollResponse, error) {
	return s.cache.Update(ctx, id,
		func(r dto.RollResponse) dto.RollResponse { return applyRollUpdate(r, in) },
		func(ctx context.Context) (dto.RollResponse, error) {
			out, err := s.api.UpdateRoll(ctx, id, in)
			if err != nil {
				return dto.RollResponse{}, err
			}
			return *out, nil
		})
}

// Delete retira el rollo de la caché de inmediato; en fallo lo restaura.
func (s *RollStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, id, func(ctx context.Context) error {
		return s.api.DeleteRoll(ctx, id)
	})
}

// applyRollUpdate proyecta una actualización parcial sobre la copia local.
func applyRollUpdate(r dto.RollResponse, in dto.UpdateRollRequest) dto.RollResponse {
	if in.Barcode != nil {
		r.Barcode = *in.Barcode
	}
	if in.CatalogID != nil {
		r.CatalogID = *in.CatalogID
	}
	if in.Color != nil {
		r.Color = *in.Color
	}
	if in.Degree != nil {
		r.Degree = *in.Degree
	}
	if in.LengthMeters != nil {
		r.LengthMeters = *in.LengthMeters
	}
	if in.Location != nil {
		r.Location = *in.Location
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	r.UpdatedAt = time.Now()
	return r
}
