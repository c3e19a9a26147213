package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var (
	_ repository.TaxSettingsRepository = (*TaxSettingsRepo)(nil)
	_ repository.AppSettingsRepository = (*AppSettingsRepo)(nil)
)

// TaxSettingsRepo implementación de TaxSettingsRepository sobre PostgreSQL.
// Una fila por empresa; Upsert aplica último-escritor-gana.
type TaxSettingsRepo struct {
	q Querier
}

// NewTaxSettingsRepository construye el adaptador de configuración tributaria.
func NewTaxSettingsRepository(q Querier) *TaxSettingsRepo {
	return &TaxSettingsRepo{q: q}
}

// GetByCompany obtiene la fila de la empresa. Sin fila devuelve (nil, nil);
// el caso de uso decide los valores por defecto.
func (r *TaxSettingsRepo) GetByCompany(companyID string) (*entity.TaxSettings, error) {
	query := `
		SELECT id, company_id, gst_enabled, gst_rate, vat_enabled, vat_rate,
		       price_includes_tax, round_totals, business_name, tax_id, address,
		       phone, email, updated_by, created_at, updated_at
		FROM tax_settings WHERE company_id = $1`
	var s entity.TaxSettings
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.GSTEnabled, &s.GSTRate, &s.VATEnabled, &s.VATRate,
		&s.PriceIncludesTax, &s.RoundTotals, &s.BusinessName, &s.TaxID, &s.Address,
		&s.Phone, &s.Email, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza la configuración completa de la empresa.
func (r *TaxSettingsRepo) Upsert(settings *entity.TaxSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tax_settings (id, company_id, gst_enabled, gst_rate, vat_enabled,
			vat_rate, price_includes_tax, round_totals, business_name, tax_id,
			address, phone, email, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (company_id) DO UPDATE SET
			gst_enabled = EXCLUDED.gst_enabled,
			gst_rate = EXCLUDED.gst_rate,
			vat_enabled = EXCLUDED.vat_enabled,
			vat_rate = EXCLUDED.vat_rate,
			price_includes_tax = EXCLUDED.price_includes_tax,
			round_totals = EXCLUDED.round_totals,
			business_name = EXCLUDED.business_name,
			tax_id = EXCLUDED.tax_id,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		settings.ID, settings.CompanyID, settings.GSTEnabled, settings.GSTRate,
		settings.VATEnabled, settings.VATRate, settings.PriceIncludesTax,
		settings.RoundTotals, settings.BusinessName, settings.TaxID,
		settings.Address, settings.Phone, settings.Email, settings.UpdatedBy,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert tax settings: %w", err)
	}
	return nil
}

// AppSettingsRepo implementación de AppSettingsRepository sobre PostgreSQL.
type AppSettingsRepo struct {
	q Querier
}

// NewAppSettingsRepository construye el adaptador de preferencias generales.
func NewAppSettingsRepository(q Querier) *AppSettingsRepo {
	return &AppSettingsRepo{q: q}
}

// GetByCompany obtiene la fila de la empresa. Sin fila devuelve (nil, nil).
func (r *AppSettingsRepo) GetByCompany(companyID string) (*entity.AppSettings, error) {
	query := `
		SELECT id, company_id, currency, timezone, date_format,
		       low_stock_threshold, items_per_page, updated_by, created_at, updated_at
		FROM app_settings WHERE company_id = $1`
	var s entity.AppSettings
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Currency, &s.Timezone, &s.DateFormat,
		&s.LowStockThreshold, &s.ItemsPerPage, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get app settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza las preferencias completas de la empresa.
func (r *AppSettingsRepo) Upsert(settings *entity.AppSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	query := `
		INSERT INTO app_settings (id, company_id, currency, timezone, date_format,
			low_stock_threshold, items_per_page, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE SET
			currency = EXCLUDED.currency,
			timezone = EXCLUDED.timezone,
			date_format = EXCLUDED.date_format,
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			items_per_page = EXCLUDED.items_per_page,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		settings.ID, settings.CompanyID, settings.Currency, settings.Timezone,
		settings.DateFormat, settings.LowStockThreshold, settings.ItemsPerPage,
		settings.UpdatedBy,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert app settings: %w", err)
	}
	return nil
}
