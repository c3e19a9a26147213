package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// SettingsUseCase maneja las dos configuraciones singleton de la empresa:
// la tributaria y las preferencias de la consola. GET sin fila guardada
// devuelve los valores por defecto; PUT hace upsert (último escritor gana).
type SettingsUseCase struct {
	taxRepo  repository.TaxSettingsRepository
	appRepo  repository.AppSettingsRepository
	recorder *audit.Recorder
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(taxRepo repository.TaxSettingsRepository, appRepo repository.AppSettingsRepository, recorder *audit.Recorder) *SettingsUseCase {
	return &SettingsUseCase{taxRepo: taxRepo, appRepo: appRepo, recorder: recorder}
}

// GetTax devuelve la configuración tributaria, o los valores por defecto si
// la empresa nunca ha guardado.
func (uc *SettingsUseCase) GetTax(companyID string) (*dto.TaxSettingsResponse, error) {
	settings, err := uc.taxRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultTaxSettings(companyID)
	}
	return toTaxSettingsResponse(settings), nil
}

// SaveTax guarda la configuración tributaria completa y audita el cambio.
func (uc *SettingsUseCase) SaveTax(companyID, userID string, in dto.SaveTaxSettingsRequest) (*dto.TaxSettingsResponse, error) {
	before, err := uc.taxRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}

	settings := &entity.TaxSettings{
		CompanyID:        companyID,
		GSTEnabled:       in.GSTEnabled,
		GSTRate:          in.GSTRate,
		VATEnabled:       in.VATEnabled,
		VATRate:          in.VATRate,
		PriceIncludesTax: in.PriceIncludesTax,
		RoundTotals:      in.RoundTotals,
		BusinessName:     in.BusinessName,
		TaxID:            in.TaxID,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		UpdatedBy:        userID,
		UpdatedAt:        time.Now(),
	}
	if before != nil {
		settings.ID = before.ID
		settings.CreatedAt = before.CreatedAt
	} else {
		settings.ID = uuid.New().String()
		settings.CreatedAt = settings.UpdatedAt
	}
	if err := uc.taxRepo.Upsert(settings); err != nil {
		return nil, err
	}

	var beforeDoc *dto.TaxSettingsResponse
	if before != nil {
		beforeDoc = toTaxSettingsResponse(before)
	}
	resp := toTaxSettingsResponse(settings)
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "tax_settings",
		EntityID:   settings.ID,
		Action:     entity.AuditActionTaxSettingsSaved,
		Detail:     "configuración tributaria actualizada",
		Before:     beforeDoc,
		After:      resp,
	})
	return resp, nil
}

// GetApp devuelve las preferencias de la consola, o los valores por defecto.
func (uc *SettingsUseCase) GetApp(companyID string) (*dto.AppSettingsResponse, error) {
	settings, err := uc.appRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultAppSettings(companyID)
	}
	return toAppSettingsResponse(settings), nil
}

// SaveApp guarda las preferencias de la consola y audita el cambio.
func (uc *SettingsUseCase) SaveApp(companyID, userID string, in dto.SaveAppSettingsRequest) (*dto.AppSettingsResponse, error) {
	before, err := uc.appRepo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}

	settings := &entity.AppSettings{
		CompanyID:         companyID,
		Currency:          in.Currency,
		Timezone:          in.Timezone,
		DateFormat:        in.DateFormat,
		LowStockThreshold: in.LowStockThreshold,
		ItemsPerPage:      in.ItemsPerPage,
		UpdatedBy:         userID,
		UpdatedAt:         time.Now(),
	}
	if before != nil {
		settings.ID = before.ID
		settings.CreatedAt = before.CreatedAt
	} else {
		settings.ID = uuid.New().String()
		settings.CreatedAt = settings.UpdatedAt
	}
	if err := uc.appRepo.Upsert(settings); err != nil {
		return nil, err
	}

	var beforeDoc *dto.AppSettingsResponse
	if before != nil {
		beforeDoc = toAppSettingsResponse(before)
	}
	resp := toAppSettingsResponse(settings)
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "app_settings",
		EntityID:   settings.ID,
		Action:     entity.AuditActionAppSettingsSaved,
		Detail:     "preferencias de la consola actualizadas",
		Before:     beforeDoc,
		After:      resp,
	})
	return resp, nil
}

func toTaxSettingsResponse(s *entity.TaxSettings) *dto.TaxSettingsResponse {
	if s == nil {
		return nil
	}
	return &dto.TaxSettingsResponse{
		GSTEnabled:       s.GSTEnabled,
		GSTRate:          s.GSTRate,
		VATEnabled:       s.VATEnabled,
		VATRate:          s.VATRate,
		PriceIncludesTax: s.PriceIncludesTax,
		RoundTotals:      s.RoundTotals,
		BusinessName:     s.BusinessName,
		TaxID:            s.TaxID,
		Address:          s.Address,
		Phone:            s.Phone,
		Email:            s.Email,
		UpdatedBy:        s.UpdatedBy,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toAppSettingsResponse(s *entity.AppSettings) *dto.AppSettingsResponse {
	if s == nil {
		return nil
	}
	return &dto.AppSettingsResponse{
		Currency:          s.Currency,
		Timezone:          s.Timezone,
		DateFormat:        s.DateFormat,
		LowStockThreshold: s.LowStockThreshold,
		ItemsPerPage:      s.ItemsPerPage,
		UpdatedBy:         s.UpdatedBy,
		UpdatedAt:         s.UpdatedAt,
	}
}
