package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jdruizm/Botica-api/docs"
	appanalytics "github.com/jdruizm/Botica-api/internal/application/analytics"
	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/auth"
	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/infrastructure/erpexport"
	"github.com/jdruizm/Botica-api/internal/infrastructure/notify"
	infrapdf "github.com/jdruizm/Botica-api/internal/infrastructure/pdf"
	"github.com/jdruizm/Botica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jdruizm/Botica-api/internal/interfaces/http"
	"github.com/jdruizm/Botica-api/pkg/config"
	"github.com/jdruizm/Botica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	rackRepo := postgres.NewRackRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	requestRepo := postgres.NewPurchaseRequestRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	taxRepo := postgres.NewTaxSettingsRepository(pool)
	appSettingsRepo := postgres.NewAppSettingsRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones por correo: sin SMTP configurado solo se registran en el log.
	var notifier procurement.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewEmailNotifier(cfg.SMTP, log)
		log.Info().Str("host", cfg.SMTP.Host).Msg("notificaciones SMTP habilitadas")
	} else {
		notifier = notify.NewNopNotifier(log)
	}

	// Casos de uso
	recorder := audit.NewRecorder(auditRepo, userRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	medicineUC := usecase.NewMedicineUseCase(medicineRepo, categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, rackRepo, shopRepo)
	rackUC := usecase.NewRackUseCase(rackRepo, warehouseRepo)
	shopUC := usecase.NewShopUseCase(shopRepo, warehouseRepo, recorder)
	settingsUC := usecase.NewSettingsUseCase(taxRepo, appSettingsRepo, recorder)
	attendanceUC := usecase.NewAttendanceUseCase(attendanceRepo, userRepo, shopRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, medicineRepo, warehouseRepo)
	inventoryQueryUC := inventory.NewQueryUseCase(stockRepo, movementRepo, medicineRepo, warehouseRepo)
	requestUC := procurement.NewPurchaseRequestUseCase(
		requestRepo, shopRepo, warehouseRepo, medicineRepo, stockRepo,
		txRunner, movementUC, notifier, recorder,
	)
	returnUC := procurement.NewReturnUseCase(
		returnRepo, shopRepo, warehouseRepo, medicineRepo,
		txRunner, movementUC, recorder,
	)
	documentUC := procurement.NewDocumentUseCase(requestUC, infrapdf.NewOrderPDFGenerator(), erpexport.NewExporter())
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, appSettingsRepo)
	auditUC := audit.NewQueryUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Botica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		UserUC:       userUC,
		CategoryUC:   categoryUC,
		MedicineUC:   medicineUC,
		WarehouseUC:  warehouseUC,
		RackUC:       rackUC,
		ShopUC:       shopUC,
		RequestUC:    requestUC,
		DocumentUC:   documentUC,
		ReturnUC:     returnUC,
		SettingsUC:   settingsUC,
		AttendanceUC: attendanceUC,
		MovementUC:   movementUC,
		InventoryUC:  inventoryQueryUC,
		DashboardUC:  dashboardUC,
		AuditUC:      auditUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
