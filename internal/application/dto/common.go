package dto

// ErrorResponse cuerpo de error HTTP. Code es estable y pensado para el cliente;
// Message es texto libre.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de error expuestos por la API.
const (
	CodeInvalidBody        = "INVALID_BODY"
	CodeValidation         = "VALIDATION"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeOutOfStock         = "OUT_OF_STOCK"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeMissingRole        = "MISSING_ROLE"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL"
)
