// Package analytics contiene los casos de uso de lectura del tablero de la
// consola.
package analytics

import (
	"context"
	"fmt"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de conteos de la página de inicio.
//
// Fuente de datos: DashboardRepository (consultas read-only). El umbral de
// stock bajo sale de las preferencias de la empresa (AppSettings), con el
// valor por defecto si nunca las ha guardado.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	appRepo       repository.AppSettingsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, appRepo repository.AppSettingsRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, appRepo: appRepo}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	settings, err := uc.appRepo.GetByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: preferencias: %w", err)
	}
	if settings == nil {
		settings = entity.DefaultAppSettings(companyID)
	}

	counts, err := uc.dashboardRepo.GetCounts(ctx, companyID, settings.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", err)
	}

	return &dto.DashboardSummaryDTO{
		Medicines:       counts.Medicines,
		Categories:      counts.Categories,
		Warehouses:      counts.Warehouses,
		Shops:           counts.Shops,
		PendingRequests: counts.PendingRequests,
		PendingReturns:  counts.PendingReturns,
		LowStock:        counts.LowStock,
	}, nil
}
