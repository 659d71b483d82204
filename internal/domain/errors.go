package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPriceNotSet       = errors.New("precio de venta no definido para esta unidad")
	ErrConflict          = errors.New("conflicto con el estado actual")
	// ErrStoreFailure envuelve cualquier error del almacenamiento (conexión, constraint, commit).
	// Los adaptadores lo combinan con la causa original: errors.Is sirve para ambos.
	ErrStoreFailure = errors.New("fallo del almacenamiento")
)
