package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/analytics"
	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/auth"
	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	CategoryUC   *usecase.CategoryUseCase
	MedicineUC   *usecase.MedicineUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	RackUC       *usecase.RackUseCase
	ShopUC       *usecase.ShopUseCase
	RequestUC    *procurement.PurchaseRequestUseCase
	DocumentUC   *procurement.DocumentUseCase
	ReturnUC     *procurement.ReturnUseCase
	SettingsUC   *usecase.SettingsUseCase
	AttendanceUC *usecase.AttendanceUseCase
	MovementUC   *inventory.MovementUseCase
	InventoryUC  *inventory.QueryUseCase
	DashboardUC  *analytics.DashboardUseCase
	AuditUC      *audit.QueryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole("admin")

	// Perfil de la empresa (protegido; edición solo admin)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.GetProfile)
	protected.Put("/company", adminOnly, companyHandler.UpdateProfile)

	// Usuarios del personal (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/parents", categoryHandler.ListParents)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Medicamentos (protegido)
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", adminOnly, medicineHandler.Delete)

	// Bodegas (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	shopHandler := NewShopHandler(deps.ShopUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)
	warehouses.Get("/:id/shops", shopHandler.WarehouseShops)

	// Estanterías (protegido)
	racks := protected.Group("/racks")
	rackHandler := NewRackHandler(deps.RackUC)
	racks.Post("/", rackHandler.Create)
	racks.Get("/", rackHandler.List)
	racks.Get("/:id", rackHandler.GetByID)
	racks.Put("/:id", rackHandler.Update)
	racks.Delete("/:id", adminOnly, rackHandler.Delete)

	// Droguerías y asignación de bodega (protegido)
	shops := protected.Group("/shops")
	shops.Post("/", shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Put("/:id", shopHandler.Update)
	shops.Delete("/:id", adminOnly, shopHandler.Delete)
	shops.Post("/:id/assign-warehouse", shopHandler.AssignWarehouse)
	shops.Post("/:id/unassign-warehouse", shopHandler.UnassignWarehouse)

	// Solicitudes de compra y sus documentos (protegido)
	requests := protected.Group("/purchase-requests")
	requestHandler := NewPurchaseRequestHandler(deps.RequestUC, deps.DocumentUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id", requestHandler.Update)
	requests.Delete("/:id", adminOnly, requestHandler.Delete)
	requests.Post("/:id/approve", requestHandler.Approve)
	requests.Post("/:id/reject", requestHandler.Reject)
	requests.Post("/:id/cancel", requestHandler.Cancel)
	requests.Post("/:id/dispatch", requestHandler.Dispatch)
	requests.Get("/:id/pdf", requestHandler.DownloadPDF)
	requests.Get("/:id/xml", requestHandler.DownloadXML)

	// Devoluciones (protegido)
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returns.Post("/", returnHandler.Create)
	returns.Get("/", returnHandler.List)
	returns.Get("/:id", returnHandler.GetByID)
	returns.Post("/:id/accept", returnHandler.Accept)
	returns.Post("/:id/reject", returnHandler.Reject)

	// Configuración (lectura abierta; escritura solo admin)
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/tax", settingsHandler.GetTax)
	settings.Put("/tax", adminOnly, settingsHandler.SaveTax)
	settings.Get("/app", settingsHandler.GetApp)
	settings.Put("/app", adminOnly, settingsHandler.SaveApp)

	// Asistencia (protegido; borrado solo admin)
	attendance := protected.Group("/attendance")
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	attendance.Post("/", attendanceHandler.CheckIn)
	attendance.Get("/", attendanceHandler.List)
	attendance.Get("/:id", attendanceHandler.GetByID)
	attendance.Put("/:id/check-out", attendanceHandler.CheckOut)
	attendance.Delete("/:id", adminOnly, attendanceHandler.Delete)

	// Inventario: movimientos y existencias (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.ListStock)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Bitácora de cambios (solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", adminOnly, auditHandler.List)
}
