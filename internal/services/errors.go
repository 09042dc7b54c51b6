package services

import "errors"

// Common service errors
var (
	ErrNotFound       = errors.New("registro no encontrado")
	ErrInvalidState   = errors.New("transición de estado inválida")
	ErrInvalidLoan    = errors.New("préstamo inválido")
	ErrTenantMismatch = errors.New("el registro pertenece a otra agencia")
	ErrInvalidInput   = errors.New("datos inválidos")
	ErrUnavailable    = errors.New("servicio no disponible, intente más tarde")
)
