package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/client"
	"github.com/tejidosandina/rollos-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: servidor fake que habla la envoltura de la API
// ──────────────────────────────────────────────────────────────────────────────

func writeOK(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.OK(data))
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.Fail(code, message, status, nil))
}

func sampleRoll(id, barcode string) dto.RollResponse {
	now := time.Now().UTC().Truncate(time.Second)
	return dto.RollResponse{
		ID:           id,
		Barcode:      barcode,
		CatalogID:    "cat-1",
		Color:        "azul",
		Degree:       "A",
		LengthMeters: decimal.NewFromInt(50),
		Status:       "in_stock",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Transporte y envoltura
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_GuardaElToken(t *testing.T) {
	var lastAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var in dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "ana@rollos.local", in.Email)
			writeOK(w, http.StatusOK, dto.LoginResponse{Token: "tok-123"})
		case "/api/rolls":
			lastAuth = r.Header.Get("Authorization")
			writeOK(w, http.StatusOK, []dto.RollResponse{})
		default:
			writeErr(w, http.StatusNotFound, domain.CodeNotFound, "no existe")
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	out, err := c.Login(context.Background(), "ana@rollos.local", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", out.Token)

	// La siguiente petición lleva el Bearer automáticamente.
	_, err = c.ListRolls(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", lastAuth)
}

// Un error de la API se reconstruye como *domain.Error: el caller
// distingue 404/409/422 igual que del lado del servidor.
func TestDo_ErrorSeReconstruyeComoDomainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, domain.CodeNotFound, "rollo no encontrado")
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.GetRoll(context.Background(), "no-existe")
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok, "el error debe ser *domain.Error")
	assert.Equal(t, domain.CodeNotFound, de.Code)
	assert.Equal(t, 404, de.StatusCode)
	assert.Equal(t, "rollo no encontrado", de.Message)
}

func TestListRolls_CodificaFiltros(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeOK(w, http.StatusOK, []dto.RollResponse{sampleRoll("r-1", "RC100")})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	filters := url.Values{}
	filters.Set("status", "in_stock")
	filters.Set("search", "RC1")
	list, err := c.ListRolls(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "RC100", list[0].Barcode)
	assert.Equal(t, "in_stock", gotQuery.Get("status"))
	assert.Equal(t, "RC1", gotQuery.Get("search"))
}

func TestCreateRoll_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var in dto.CreateRollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		out := sampleRoll("r-servidor", in.Barcode)
		writeOK(w, http.StatusCreated, out)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	out, err := c.CreateRoll(context.Background(), dto.CreateRollRequest{
		Barcode:      "RC100",
		CatalogID:    "cat-1",
		Color:        "azul",
		Degree:       "A",
		LengthMeters: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "r-servidor", out.ID)
	assert.Equal(t, "RC100", out.Barcode)
}

// data:null (ej. delete) no intenta deserializar nada.
func TestDeleteRoll_DataNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		writeOK(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	assert.NoError(t, c.DeleteRoll(context.Background(), "r-1"))
}
