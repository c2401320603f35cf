package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los casos de uso y
// repositorios retornan estos sentinels o un *Error que los envuelve;
// los handlers HTTP los traducen a status codes.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrBusinessRule = errors.New("regla de negocio violada")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Códigos estables de error expuestos en la API.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeCannotArchive     = "CANNOT_ARCHIVE_WITH_ROLLS"
	CodeCatalogHasRolls   = "CATALOG_HAS_ROLLS"
	CodeImmutableField    = "IMMUTABLE_FIELD"
	CodeAuthInvalid       = "AUTH_INVALID"
	CodePermissionDenied  = "PERMISSION_DENIED"
)

// Error es un error operacional con código estable y status HTTP sugerido.
// Envuelve un sentinel para que errors.Is siga funcionando en los callers.
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]any
	wrapped    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// NewNotFound construye un error 404 para la entidad indicada.
func NewNotFound(entityType, id string) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    entityType + " no encontrado",
		StatusCode: 404,
		Details:    map[string]any{"entity_type": entityType, "entity_id": id},
		wrapped:    ErrNotFound,
	}
}

// NewConflict construye un error 409 por violación de unicidad.
func NewConflict(message string, details map[string]any) *Error {
	return &Error{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: 409,
		Details:    details,
		wrapped:    ErrDuplicate,
	}
}

// NewValidation construye un error 400 por entrada malformada.
func NewValidation(message string, details map[string]any) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: 400,
		Details:    details,
		wrapped:    ErrInvalidInput,
	}
}

// NewBusinessRule construye un error 422 con código de negocio específico
// (INVALID_STATUS_TRANSITION, CANNOT_ARCHIVE_WITH_ROLLS, etc.).
func NewBusinessRule(code, message string, details map[string]any) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: 422,
		Details:    details,
		wrapped:    ErrBusinessRule,
	}
}

// NewAuthInvalid construye un error 401. El mensaje nunca revela si falló
// el email o el password.
func NewAuthInvalid() *Error {
	return &Error{
		Code:       CodeAuthInvalid,
		Message:    "credenciales inválidas",
		StatusCode: 401,
		wrapped:    ErrUnauthorized,
	}
}

// NewPermissionDenied construye un error 403 para el permiso faltante.
func NewPermissionDenied(permission string) *Error {
	return &Error{
		Code:       CodePermissionDenied,
		Message:    "permiso insuficiente",
		StatusCode: 403,
		Details:    map[string]any{"permission": permission},
		wrapped:    ErrForbidden,
	}
}

// AsError extrae un *Error de la cadena de wrapping, si existe.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
