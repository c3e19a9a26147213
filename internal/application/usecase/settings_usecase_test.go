package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

func settingsFixture() (*usecase.SettingsUseCase, *fakeTaxSettingsRepo, *fakeAppSettingsRepo, *fakeAuditRepo) {
	taxRepo := &fakeTaxSettingsRepo{}
	appRepo := &fakeAppSettingsRepo{}
	auditRepo := &fakeAuditRepo{}
	uc := usecase.NewSettingsUseCase(taxRepo, appRepo, newTestRecorder(auditRepo))
	return uc, taxRepo, appRepo, auditRepo
}

// ── configuración tributaria ──

func TestSettings_TaxPorDefectoSinFilaGuardada(t *testing.T) {
	uc, _, _, _ := settingsFixture()

	got, err := uc.GetTax(testCompanyID)
	require.NoError(t, err)
	assert.True(t, got.VATEnabled, "IVA activo por defecto")
	assert.True(t, got.VATRate.Equal(dec(19)), "IVA al 19%% por defecto, vino %s", got.VATRate)
	assert.False(t, got.GSTEnabled)
	assert.True(t, got.RoundTotals)
	assert.True(t, got.UpdatedAt.IsZero(), "sin fila guardada no hay fecha de actualización")
}

func TestSettings_TaxUltimoEscritorGana(t *testing.T) {
	uc, taxRepo, _, auditRepo := settingsFixture()

	_, err := uc.SaveTax(testCompanyID, testUserID, dto.SaveTaxSettingsRequest{
		VATEnabled:   true,
		VATRate:      dec(19),
		RoundTotals:  true,
		BusinessName: "Botica del Centro SAS",
	})
	require.NoError(t, err)
	firstID := taxRepo.row.ID

	saved, err := uc.SaveTax(testCompanyID, testUserID, dto.SaveTaxSettingsRequest{
		VATEnabled: true,
		VATRate:    dec(5),
		GSTEnabled: true,
		GSTRate:    dec(8),
	})
	require.NoError(t, err)
	assert.True(t, saved.VATRate.Equal(dec(5)))
	assert.Equal(t, firstID, taxRepo.row.ID, "el upsert conserva la fila, no crea otra")

	got, err := uc.GetTax(testCompanyID)
	require.NoError(t, err)
	assert.True(t, got.GSTEnabled, "la lectura refleja el último guardado")
	assert.Empty(t, got.BusinessName, "el upsert es completo, no parcial")

	require.Len(t, auditRepo.created, 2, "cada guardado se audita")
	assert.Equal(t, entity.AuditActionTaxSettingsSaved, auditRepo.created[0].Action)
	assert.Equal(t, "null", auditRepo.created[0].BeforeData, "el primer guardado no tiene estado previo")
	assert.Contains(t, auditRepo.created[1].BeforeData, "Botica del Centro SAS")
}

// ── preferencias de la consola ──

func TestSettings_AppPorDefectoSinFilaGuardada(t *testing.T) {
	uc, _, _, _ := settingsFixture()

	got, err := uc.GetApp(testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "COP", got.Currency)
	assert.Equal(t, "America/Bogota", got.Timezone)
	assert.True(t, got.LowStockThreshold.Equal(dec(10)), "umbral de stock bajo por defecto 10")
	assert.Equal(t, 25, got.ItemsPerPage)
}

func TestSettings_AppGuardaYAudita(t *testing.T) {
	uc, _, appRepo, auditRepo := settingsFixture()

	saved, err := uc.SaveApp(testCompanyID, testUserID, dto.SaveAppSettingsRequest{
		Currency:          "USD",
		Timezone:          "America/New_York",
		DateFormat:        "01/02/2006",
		LowStockThreshold: dec(25),
		ItemsPerPage:      50,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", saved.Currency)
	assert.Equal(t, testUserID, saved.UpdatedBy)
	assert.Equal(t, testCompanyID, appRepo.row.CompanyID)

	got, err := uc.GetApp(testCompanyID)
	require.NoError(t, err)
	assert.True(t, got.LowStockThreshold.Equal(dec(25)))

	require.Len(t, auditRepo.created, 1)
	entry := auditRepo.created[0]
	assert.Equal(t, entity.AuditActionAppSettingsSaved, entry.Action)
	assert.Contains(t, entry.AfterData, "America/New_York")
}

func TestSettings_EmpresasNoComparten(t *testing.T) {
	uc, _, _, _ := settingsFixture()

	_, err := uc.SaveApp(testCompanyID, testUserID, dto.SaveAppSettingsRequest{
		Currency:          "USD",
		Timezone:          "UTC",
		DateFormat:        "2006-01-02",
		LowStockThreshold: dec(5),
		ItemsPerPage:      10,
	})
	require.NoError(t, err)

	got, err := uc.GetApp("99999999-9999-9999-9999-999999999999")
	require.NoError(t, err)
	assert.Equal(t, "COP", got.Currency, "otra empresa sigue viendo sus valores por defecto")
}
