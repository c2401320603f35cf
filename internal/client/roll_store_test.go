package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/client"
	"github.com/tejidosandina/rollos-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// RollStore: caché optimista sobre la API real (servidor fake)
// ──────────────────────────────────────────────────────────────────────────────

func TestRollStore_CreateReconciliaConIDDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in dto.CreateRollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeOK(w, http.StatusCreated, sampleRoll("r-servidor", in.Barcode))
	}))
	defer srv.Close()

	store := client.NewRollStore(client.New(srv.URL))
	out, err := store.Create(context.Background(), dto.CreateRollRequest{
		Barcode:   "RC100",
		CatalogID: "cat-1",
		Color:     "azul",
		Degree:    "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-servidor", out.ID)

	cached, ok := store.Get("r-servidor")
	require.True(t, ok, "el registro autoritativo queda cacheado bajo el id real")
	assert.Equal(t, "RC100", cached.Barcode)
}

func TestRollStore_UpdateRevierteEnRechazoDelServidor(t *testing.T) {
	roll := sampleRoll("r-1", "RC100")
	roll.Status = "sold"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeOK(w, http.StatusOK, []dto.RollResponse{roll})
		default:
			// El servidor rechaza la transición: sold es terminal.
			writeErr(w, http.StatusUnprocessableEntity,
				domain.CodeInvalidTransition, "transición de estado no permitida")
		}
	}))
	defer srv.Close()

	store := client.NewRollStore(client.New(srv.URL))
	require.NoError(t, store.Refresh(context.Background(), nil))

	newStatus := "in_stock"
	_, err := store.Update(context.Background(), "r-1",
		dto.UpdateRollRequest{Status: &newStatus})
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidTransition, de.Code)

	// La caché volvió al estado del servidor, no quedó el optimista.
	cached, found := store.Get("r-1")
	require.True(t, found)
	assert.Equal(t, "sold", cached.Status, "el rechazo restaura el snapshot previo")
	assert.False(t, store.Pending("r-1"))
}

func TestRollStore_UpdateAceptadoAdoptaLaRespuesta(t *testing.T) {
	roll := sampleRoll("r-1", "RC100")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeOK(w, http.StatusOK, []dto.RollResponse{roll})
		case http.MethodPut:
			authoritative := roll
			authoritative.Status = "reserved"
			authoritative.UpdatedBy = "u-servidor"
			writeOK(w, http.StatusOK, authoritative)
		}
	}))
	defer srv.Close()

	store := client.NewRollStore(client.New(srv.URL))
	require.NoError(t, store.Refresh(context.Background(), nil))

	newStatus := "reserved"
	out, err := store.Update(context.Background(), "r-1",
		dto.UpdateRollRequest{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, "reserved", out.Status)
	assert.Equal(t, "u-servidor", out.UpdatedBy,
		"gana el registro autoritativo del servidor, no la proyección local")

	cached, _ := store.Get("r-1")
	assert.Equal(t, "u-servidor", cached.UpdatedBy)
}

func TestRollStore_DeleteRestauraEnFallo(t *testing.T) {
	roll := sampleRoll("r-1", "RC100")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeOK(w, http.StatusOK, []dto.RollResponse{roll})
		case http.MethodDelete:
			writeErr(w, http.StatusNotFound, domain.CodeNotFound, "rollo no encontrado")
		}
	}))
	defer srv.Close()

	store := client.NewRollStore(client.New(srv.URL))
	require.NoError(t, store.Refresh(context.Background(), nil))

	err := store.Delete(context.Background(), "r-1")
	require.Error(t, err)

	_, found := store.Get("r-1")
	assert.True(t, found, "en fallo, la entrada eliminada optimistamente se restaura")
}

func TestRollStore_CreateFallidoNoDejaEntradaTemporal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusConflict, domain.CodeConflict,
			"el barcode ya está en uso por un rollo activo")
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	store := client.NewRollStore(api)
	_, err := store.Create(context.Background(), dto.CreateRollRequest{
		Barcode:   "RC100",
		CatalogID: "cat-1",
		Color:     "azul",
		Degree:    "A",
	})
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeConflict, de.Code)
}
