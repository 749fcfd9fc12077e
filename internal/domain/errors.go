package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrValidation falta un campo obligatorio o un valor no es válido (antes de crear o justificar).
	ErrValidation = errors.New("entrada inválida")
	// ErrInvalidStateTransition un paso del flujo de paradas se llamó fuera de secuencia.
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	// ErrAuthorizationDenied el operador no tiene derechos sobre el sector o módulo.
	ErrAuthorizationDenied = errors.New("acceso denegado")
	// ErrAdapterUnavailable fallo del almacén de eventos o de la red.
	ErrAdapterUnavailable = errors.New("almacén de eventos no disponible")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("el registro fue modificado por otro usuario")
	ErrUnauthorized = errors.New("credenciales inválidas")
	ErrUserExists   = errors.New("la matrícula ya está registrada")
	ErrForbidden    = errors.New("cuenta inactiva")
)
