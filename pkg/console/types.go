package console

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// Tipos de cable de la consola. Reflejan los cuerpos JSON del API; se
// declaran aquí (y no se reutilizan los DTO internos) para que el paquete
// sea importable desde fuera del módulo.

// Category categoría de medicamentos, con jerarquía de un solo nivel.
type Category struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    string    `json:"parent_id,omitempty"`
	ParentName  string    `json:"parent_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de categorías.
func (c Category) SearchFields() []string {
	return []string{c.Name, c.Description, c.ParentName}
}

// Medicine medicamento del catálogo.
type Medicine struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Manufacturer string          `json:"manufacturer"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	UnitMeasure  string          `json:"unit_measure"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de medicamentos.
func (m Medicine) SearchFields() []string {
	return []string{m.SKU, m.Name, m.GenericName, m.Manufacturer, m.CategoryName}
}

// Warehouse bodega de distribución.
type Warehouse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de bodegas.
func (w Warehouse) SearchFields() []string {
	return []string{w.Name, w.Address}
}

// Rack estantería, opcionalmente ubicada en una bodega.
type Rack struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	RackName      string    `json:"rack_name"`
	RackNumber    string    `json:"rack_number"`
	WarehouseID   string    `json:"warehouse_id,omitempty"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de estanterías.
func (r Rack) SearchFields() []string {
	return []string{r.RackName, r.RackNumber, r.WarehouseName}
}

// Shop droguería, asignada a lo sumo a una bodega.
type Shop struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	WarehouseID   string    `json:"warehouse_id,omitempty"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de droguerías.
func (s Shop) SearchFields() []string {
	return []string{s.Name, s.Address, s.WarehouseName}
}

// WarehouseShops droguerías asignadas y sin asignar de una bodega, con los
// conteos que la consola muestra en ambas columnas.
type WarehouseShops struct {
	Assigned        []Shop `json:"assigned"`
	Unassigned      []Shop `json:"unassigned"`
	AssignedCount   int    `json:"assigned_count"`
	UnassignedCount int    `json:"unassigned_count"`
}

// RequestItem línea de una solicitud de compra. AvailableStock e
// IsStockAvailable los calcula el servidor en cada lectura.
type RequestItem struct {
	ID                string          `json:"id"`
	MedicineID        string          `json:"medicine_id"`
	MedicineName      string          `json:"medicine_name"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	AvailableStock    decimal.Decimal `json:"available_stock"`
	IsStockAvailable  bool            `json:"is_stock_available"`
	SortOrder         int             `json:"sort_order"`
}

// PurchaseRequest solicitud de reabastecimiento de una droguería a una bodega.
type PurchaseRequest struct {
	ID              string        `json:"id"`
	CompanyID       string        `json:"company_id"`
	ShopID          string        `json:"shop_id"`
	ShopName        string        `json:"shop_name"`
	WarehouseID     string        `json:"warehouse_id"`
	WarehouseName   string        `json:"warehouse_name"`
	Priority        string        `json:"priority"`
	Status          string        `json:"status"`
	Notes           string        `json:"notes"`
	RequestedBy     string        `json:"requested_by"`
	ApprovedBy      string        `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	Items           []RequestItem `json:"items"`
	CanApprove      bool          `json:"can_approve"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de solicitudes.
func (p PurchaseRequest) SearchFields() []string {
	return []string{p.ShopName, p.WarehouseName, p.Status, p.Priority, p.Notes}
}

// Return devolución de una droguería hacia una bodega.
type Return struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	ShopID        string          `json:"shop_id"`
	ShopName      string          `json:"shop_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	MedicineID    string          `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	Status        string          `json:"status"`
	RequestedBy   string          `json:"requested_by"`
	ProcessedBy   string          `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de devoluciones.
func (r Return) SearchFields() []string {
	return []string{r.ShopName, r.WarehouseName, r.MedicineName, r.Status, r.Reason}
}

// Attendance registro de asistencia de un empleado.
type Attendance struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	ShopID    string     `json:"shop_id,omitempty"`
	ShopName  string     `json:"shop_name,omitempty"`
	Date      string     `json:"date"`
	CheckIn   time.Time  `json:"check_in"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SearchFields campos sobre los que filtra la búsqueda de asistencia.
func (a Attendance) SearchFields() []string {
	return []string{a.UserName, a.ShopName, a.Status, a.Date}
}

// TaxSettings configuración de impuestos de la empresa (singleton).
type TaxSettings struct {
	GSTEnabled       bool            `json:"gst_enabled"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	VATEnabled       bool            `json:"vat_enabled"`
	VATRate          decimal.Decimal `json:"vat_rate"`
	PriceIncludesTax bool            `json:"price_includes_tax"`
	RoundTotals      bool            `json:"round_totals"`
	BusinessName     string          `json:"business_name"`
	TaxID            string          `json:"tax_id"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	UpdatedBy        string          `json:"updated_by,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
}

// AppSettings preferencias de la aplicación (singleton).
type AppSettings struct {
	Currency          string          `json:"currency"`
	Timezone          string          `json:"timezone"`
	DateFormat        string          `json:"date_format"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	ItemsPerPage      int             `json:"items_per_page"`
	UpdatedBy         string          `json:"updated_by,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at,omitempty"`
}

// DashboardSummary conteos del tablero principal.
type DashboardSummary struct {
	Medicines       int `json:"medicines"`
	Categories      int `json:"categories"`
	Warehouses      int `json:"warehouses"`
	Shops           int `json:"shops"`
	PendingRequests int `json:"pending_requests"`
	PendingReturns  int `json:"pending_returns"`
	LowStock        int `json:"low_stock"`
}

// User usuario autenticado, tal como lo devuelve el login.
type User struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// ── resolución relacional ──

// ParentCategoryName resuelve el nombre del padre por barrido lineal de la
// misma colección; "—" si la referencia cuelga, vacío si no hay padre.
func ParentCategoryName(categories []Category, parentID string) string {
	return lookup.Scan(categories,
		func(c Category) string { return c.ID },
		func(c Category) string { return c.Name },
		parentID)
}

// WarehouseName resuelve el nombre de una bodega contra la colección cargada.
func WarehouseName(warehouses []Warehouse, id string) string {
	return lookup.Scan(warehouses,
		func(w Warehouse) string { return w.ID },
		func(w Warehouse) string { return w.Name },
		id)
}

// MedicineName resuelve el nombre de un medicamento contra la colección cargada.
func MedicineName(medicines []Medicine, id string) string {
	return lookup.Scan(medicines,
		func(m Medicine) string { return m.ID },
		func(m Medicine) string { return m.Name },
		id)
}

// CanApprove replica la regla que deshabilita el botón Aprobar: solo una
// solicitud pendiente con existencias suficientes en todas sus líneas puede
// aprobarse. El servidor vuelve a validar al aprobar; esto es solo la guarda
// de la interfaz.
func CanApprove(r PurchaseRequest) bool {
	if r.Status != "pending" || len(r.Items) == 0 {
		return false
	}
	for _, it := range r.Items {
		if !it.IsStockAvailable {
			return false
		}
	}
	return true
}
