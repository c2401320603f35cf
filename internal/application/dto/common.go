package dto

// Envelope de la API: toda respuesta exitosa es {success:true, data:...}
// y todo error es {success:false, error:{message, code, statusCode}}.

// APIResponse respuesta exitosa.
type APIResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// APIError cuerpo del error con código estable y status HTTP.
type APIError struct {
	Message    string         `json:"message"`
	Code       string         `json:"code"`
	StatusCode int            `json:"statusCode"`
	Details    map[string]any `json:"details,omitempty"`
}

// ErrorResponse respuesta de error.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// OK construye una respuesta exitosa.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail construye una respuesta de error.
func Fail(code, message string, statusCode int, details map[string]any) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Message:    message,
			Code:       code,
			StatusCode: statusCode,
			Details:    details,
		},
	}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
