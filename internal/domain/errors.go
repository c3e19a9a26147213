package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrStockUnavailable: aprobación de solicitud con al menos una línea sin
	// stock disponible en la bodega origen.
	ErrStockUnavailable = errors.New("stock no disponible para una o más líneas")

	// ErrInvalidStatus: transición de estado no permitida (solicitudes, devoluciones).
	ErrInvalidStatus = errors.New("estado no permite la operación")

	// ErrParentNotTopLevel: el padre elegido para una categoría no es de primer nivel.
	ErrParentNotTopLevel = errors.New("la categoría padre debe ser de primer nivel")

	// ErrWarehouseInUse: la bodega tiene estanterías o droguerías asociadas.
	ErrWarehouseInUse = errors.New("la bodega tiene recursos asociados")

	// ErrAlreadyAssigned: la droguería ya está asignada a otra bodega.
	ErrAlreadyAssigned = errors.New("la droguería ya tiene bodega asignada")
)
