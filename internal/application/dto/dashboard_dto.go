package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary: los conteos
// que la consola muestra en la página de inicio.
type DashboardSummaryDTO struct {
	Medicines       int `json:"medicines"`
	Categories      int `json:"categories"`
	Warehouses      int `json:"warehouses"`
	Shops           int `json:"shops"`
	PendingRequests int `json:"pending_requests"`
	PendingReturns  int `json:"pending_returns"`
	LowStock        int `json:"low_stock"`
}
