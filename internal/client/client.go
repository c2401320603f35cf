// Package client es el consumidor Go de la API HTTP: transporte JSON con
// la envoltura {success, data}/{success, error} y una caché optimista de
// rollos basada en syncstore. Lo usa el shell de escritorio y las
// herramientas de línea de comandos.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
)

// Client transporte HTTP hacia la API.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// New construye el cliente para baseURL (ej. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken fija el Bearer token para las peticiones siguientes.
func (c *Client) SetToken(token string) { c.token = token }

// Login autentica y guarda el token recibido.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Logout cierra la sesión del lado del servidor (audit log).
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListRolls lista rollos con los filtros dados (claves: catalog, status,
// degree, color, search, limit, offset).
func (c *Client) ListRolls(ctx context.Context, filters url.Values) ([]dto.RollResponse, error) {
	path := "/api/rolls"
	if len(filters) > 0 {
		path += "?" + filters.Encode()
	}
	var out []dto.RollResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRoll obtiene un rollo por ID.
func (c *Client) GetRoll(ctx context.Context, id string) (*dto.RollResponse, error) {
	var out dto.RollResponse
	if err := c.do(ctx, http.MethodGet, "/api/rolls/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoll crea un rollo y devuelve el registro autoritativo.
func (c *Client) CreateRoll(ctx context.Context, in dto.CreateRollRequest) (*dto.RollResponse, error) {
	var out dto.RollResponse
	if err := c.do(ctx, http.MethodPost, "/api/rolls", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRoll actualiza un rollo y devuelve el registro autoritativo.
func (c *Client) UpdateRoll(ctx context.Context, id string, in dto.UpdateRollRequest) (*dto.RollResponse, error) {
	var out dto.RollResponse
	if err := c.do(ctx, http.MethodPut, "/api/rolls/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoll hace soft delete de un rollo.
func (c *Client) DeleteRoll(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/rolls/"+url.PathEscape(id), nil, nil)
}

// do ejecuta la petición y decodifica la envoltura. Un error de la API se
// reconstruye como *domain.Error con su código y status originales, de
// modo que el caller distinga 404/409/422 igual que en el servidor.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.APIError   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Success {
		if envelope.Error == nil {
			return fmt.Errorf("respuesta de error sin cuerpo (status %d)", resp.StatusCode)
		}
		return &domain.Error{
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
			StatusCode: envelope.Error.StatusCode,
			Details:    envelope.Error.Details,
		}
	}
	if out != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return nil
}
