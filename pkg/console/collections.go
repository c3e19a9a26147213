package console

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jdruizm/Botica-api/pkg/search"
)

// listEnvelope envoltura {items, page} de todos los listados del API.
type listEnvelope[T any] struct {
	Items []T `json:"items"`
	Page  struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Total  int `json:"total"`
	} `json:"page"`
}

// collection implementa el contrato de página sobre un recurso REST:
// List/Get directos y Create/Update/Delete con recarga completa posterior.
type collection[T any] struct {
	c    *Client
	path string
}

// List trae la colección completa (página grande; la consola filtra en local).
func (r *collection[T]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, nil)
}

func (r *collection[T]) list(ctx context.Context, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("limit") == "" {
		query.Set("limit", "200")
	}
	var out listEnvelope[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out.Items, nil
}

// Get trae un registro por id.
func (r *collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+id, nil, nil, &out)
	return out, err
}

// Create crea el registro y devuelve la colección recargada; el objeto
// devuelto por el servidor no se mezcla en el estado local.
func (r *collection[T]) Create(ctx context.Context, body any) ([]T, error) {
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, body, nil); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Update actualiza el registro y devuelve la colección recargada.
func (r *collection[T]) Update(ctx context.Context, id string, body any) ([]T, error) {
	if err := r.c.do(ctx, http.MethodPut, r.path+"/"+id, nil, body, nil); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Delete pide confirmación, borra el registro y devuelve la colección
// recargada. Sin confirmación devuelve ErrCancelled sin tocar la red.
func (r *collection[T]) Delete(ctx context.Context, id string) ([]T, error) {
	if !r.c.Confirm("¿Eliminar el registro " + id + "?") {
		return nil, ErrCancelled
	}
	if err := r.c.do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil, nil); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// action ejecuta un POST de acción (aprobar, rechazar, asignar...) y
// devuelve la colección recargada.
func (r *collection[T]) action(ctx context.Context, id, verb string, body any) ([]T, error) {
	if err := r.c.do(ctx, http.MethodPost, r.path+"/"+id+"/"+verb, nil, body, nil); err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Search filtra una colección ya cargada: función pura, coincidencia por
// substring insensible a mayúsculas y tildes sobre los campos declarados por
// cada tipo. Query vacío devuelve la colección completa.
func Search[T interface{ SearchFields() []string }](items []T, query string) []T {
	return search.Filter(items, query, func(t T) []string { return t.SearchFields() })
}

// ── recursos tipados ──

// CategoriesAPI páginas de categorías.
type CategoriesAPI struct{ collection[Category] }

// Categories acceso al recurso de categorías.
func (c *Client) Categories() *CategoriesAPI {
	return &CategoriesAPI{collection[Category]{c: c, path: "/api/categories"}}
}

// Parents trae solo las categorías de primer nivel (el conjunto elegible
// como padre en los formularios).
func (a *CategoriesAPI) Parents(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := a.c.do(ctx, http.MethodGet, a.path+"/parents", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Category{}
	}
	return out, nil
}

// MedicinesAPI páginas del catálogo de medicamentos.
type MedicinesAPI struct{ collection[Medicine] }

// Medicines acceso al recurso de medicamentos.
func (c *Client) Medicines() *MedicinesAPI {
	return &MedicinesAPI{collection[Medicine]{c: c, path: "/api/medicines"}}
}

// WarehousesAPI páginas de bodegas.
type WarehousesAPI struct{ collection[Warehouse] }

// Warehouses acceso al recurso de bodegas.
func (c *Client) Warehouses() *WarehousesAPI {
	return &WarehousesAPI{collection[Warehouse]{c: c, path: "/api/warehouses"}}
}

// Shops trae las droguerías asignadas y sin asignar de una bodega, con los
// conteos de ambas columnas.
func (a *WarehousesAPI) Shops(ctx context.Context, warehouseID string) (WarehouseShops, error) {
	var out WarehouseShops
	err := a.c.do(ctx, http.MethodGet, a.path+"/"+warehouseID+"/shops", nil, nil, &out)
	return out, err
}

// RacksAPI páginas de estanterías.
type RacksAPI struct{ collection[Rack] }

// Racks acceso al recurso de estanterías.
func (c *Client) Racks() *RacksAPI {
	return &RacksAPI{collection[Rack]{c: c, path: "/api/racks"}}
}

// ShopsAPI páginas de droguerías.
type ShopsAPI struct{ collection[Shop] }

// Shops acceso al recurso de droguerías.
func (c *Client) Shops() *ShopsAPI {
	return &ShopsAPI{collection[Shop]{c: c, path: "/api/shops"}}
}

// AssignWarehouse asigna la droguería a una bodega (acción explícita del
// servidor, nunca una edición de campo) y recarga la colección.
func (a *ShopsAPI) AssignWarehouse(ctx context.Context, shopID, warehouseID string) ([]Shop, error) {
	return a.action(ctx, shopID, "assign-warehouse", map[string]string{"warehouse_id": warehouseID})
}

// UnassignWarehouse quita la asignación de bodega y recarga la colección.
func (a *ShopsAPI) UnassignWarehouse(ctx context.Context, shopID string) ([]Shop, error) {
	return a.action(ctx, shopID, "unassign-warehouse", nil)
}

// PurchaseRequestsAPI páginas de solicitudes de compra.
type PurchaseRequestsAPI struct{ collection[PurchaseRequest] }

// PurchaseRequests acceso al recurso de solicitudes de compra.
func (c *Client) PurchaseRequests() *PurchaseRequestsAPI {
	return &PurchaseRequestsAPI{collection[PurchaseRequest]{c: c, path: "/api/purchase-requests"}}
}

// ListByStatus lista filtrando por estado en el servidor.
func (a *PurchaseRequestsAPI) ListByStatus(ctx context.Context, status string) ([]PurchaseRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	return a.list(ctx, q)
}

// Approve aprueba la solicitud y recarga la colección. El servidor vuelve a
// validar las existencias; si alguna línea quedó sin stock devuelve un
// *APIError con código STOCK_UNAVAILABLE.
func (a *PurchaseRequestsAPI) Approve(ctx context.Context, id string) ([]PurchaseRequest, error) {
	return a.action(ctx, id, "approve", nil)
}

// Reject rechaza la solicitud con un motivo y recarga la colección.
func (a *PurchaseRequestsAPI) Reject(ctx context.Context, id, reason string) ([]PurchaseRequest, error) {
	return a.action(ctx, id, "reject", map[string]string{"reason": reason})
}

// Cancel cancela una solicitud pendiente y recarga la colección.
func (a *PurchaseRequestsAPI) Cancel(ctx context.Context, id string) ([]PurchaseRequest, error) {
	return a.action(ctx, id, "cancel", nil)
}

// Dispatch despacha una solicitud aprobada (descuenta existencias en la
// bodega) y recarga la colección.
func (a *PurchaseRequestsAPI) Dispatch(ctx context.Context, id string) ([]PurchaseRequest, error) {
	return a.action(ctx, id, "dispatch", nil)
}

// ReturnsAPI páginas de devoluciones.
type ReturnsAPI struct{ collection[Return] }

// Returns acceso al recurso de devoluciones.
func (c *Client) Returns() *ReturnsAPI {
	return &ReturnsAPI{collection[Return]{c: c, path: "/api/returns"}}
}

// Accept acepta la devolución (reingresa existencias) y recarga la colección.
func (a *ReturnsAPI) Accept(ctx context.Context, id string) ([]Return, error) {
	return a.action(ctx, id, "accept", nil)
}

// Reject rechaza la devolución y recarga la colección.
func (a *ReturnsAPI) Reject(ctx context.Context, id, reason string) ([]Return, error) {
	return a.action(ctx, id, "reject", map[string]string{"reason": reason})
}

// AttendanceAPI páginas de asistencia.
type AttendanceAPI struct{ collection[Attendance] }

// Attendance acceso al recurso de asistencia.
func (c *Client) Attendance() *AttendanceAPI {
	return &AttendanceAPI{collection[Attendance]{c: c, path: "/api/attendance"}}
}

// ListRange lista la asistencia de un rango de fechas (YYYY-MM-DD),
// opcionalmente de una sola droguería.
func (a *AttendanceAPI) ListRange(ctx context.Context, from, to, shopID string) ([]Attendance, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if shopID != "" {
		q.Set("shop_id", shopID)
	}
	return a.list(ctx, q)
}

// CheckOut marca la salida del registro y recarga la colección.
func (a *AttendanceAPI) CheckOut(ctx context.Context, id string) ([]Attendance, error) {
	if err := a.c.do(ctx, http.MethodPut, a.path+"/"+id+"/check-out", nil, nil, nil); err != nil {
		return nil, err
	}
	return a.List(ctx)
}

// ── singletons y tablero ──

// TaxSettings trae la configuración de impuestos; si la empresa nunca ha
// guardado, el servidor responde los valores por defecto.
func (c *Client) TaxSettings(ctx context.Context) (TaxSettings, error) {
	var out TaxSettings
	err := c.do(ctx, http.MethodGet, "/api/settings/tax", nil, nil, &out)
	return out, err
}

// SaveTaxSettings guarda la configuración de impuestos y devuelve la versión
// releída del servidor (último escritor gana).
func (c *Client) SaveTaxSettings(ctx context.Context, in TaxSettings) (TaxSettings, error) {
	if err := c.do(ctx, http.MethodPut, "/api/settings/tax", nil, in, nil); err != nil {
		return TaxSettings{}, err
	}
	return c.TaxSettings(ctx)
}

// AppSettings trae las preferencias de la aplicación.
func (c *Client) AppSettings(ctx context.Context) (AppSettings, error) {
	var out AppSettings
	err := c.do(ctx, http.MethodGet, "/api/settings/app", nil, nil, &out)
	return out, err
}

// SaveAppSettings guarda las preferencias y devuelve la versión releída.
func (c *Client) SaveAppSettings(ctx context.Context, in AppSettings) (AppSettings, error) {
	if err := c.do(ctx, http.MethodPut, "/api/settings/app", nil, in, nil); err != nil {
		return AppSettings{}, err
	}
	return c.AppSettings(ctx)
}

// DashboardSummary trae los conteos del tablero principal.
func (c *Client) DashboardSummary(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary
	err := c.do(ctx, http.MethodGet, "/api/dashboard/summary", nil, nil, &out)
	return out, err
}
