package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

const (
	shopWarehouseA = "44444444-4444-4444-4444-444444444444"
	shopWarehouseB = "55555555-5555-5555-5555-555555555555"
)

func shopFixture() (*usecase.ShopUseCase, *fakeShopRepo, *fakeAuditRepo) {
	shops := newFakeShopRepo()
	warehouses := newFakeWarehouseRepo()
	warehouses.byID[shopWarehouseA] = &entity.Warehouse{
		ID: shopWarehouseA, CompanyID: testCompanyID, Name: "Bodega Central",
	}
	warehouses.byID[shopWarehouseB] = &entity.Warehouse{
		ID: shopWarehouseB, CompanyID: testCompanyID, Name: "Bodega Norte",
	}
	auditRepo := &fakeAuditRepo{}
	uc := usecase.NewShopUseCase(shops, warehouses, newTestRecorder(auditRepo))
	return uc, shops, auditRepo
}

// ── asignación de bodega ──

func TestShop_AsignarBodegaMueveEntreListas(t *testing.T) {
	uc, _, auditRepo := shopFixture()

	shop, err := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	require.NoError(t, err)
	assert.Empty(t, shop.WarehouseID, "una droguería nueva no tiene bodega")

	grouped, err := uc.WarehouseShops(testCompanyID, shopWarehouseA)
	require.NoError(t, err)
	assert.Equal(t, 0, grouped.AssignedCount)
	require.Equal(t, 1, grouped.UnassignedCount)
	assert.Equal(t, "Droguería GreenCross", grouped.Unassigned[0].Name)

	assigned, err := uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseA)
	require.NoError(t, err)
	assert.Equal(t, shopWarehouseA, assigned.WarehouseID)
	assert.Equal(t, "Bodega Central", assigned.WarehouseName)

	grouped, err = uc.WarehouseShops(testCompanyID, shopWarehouseA)
	require.NoError(t, err)
	require.Equal(t, 1, grouped.AssignedCount, "asignar mueve la droguería a la lista de asignadas")
	assert.Equal(t, 0, grouped.UnassignedCount)
	assert.Equal(t, "Droguería GreenCross", grouped.Assigned[0].Name)

	require.Len(t, auditRepo.created, 1, "la asignación se audita")
	entry := auditRepo.created[0]
	assert.Equal(t, entity.AuditActionShopAssigned, entry.Action)
	assert.Equal(t, "Laura Admin", entry.UserName)
	assert.JSONEq(t, `{"warehouse_id": ""}`, entry.BeforeData)
	assert.JSONEq(t, `{"warehouse_id": "`+shopWarehouseA+`"}`, entry.AfterData)
}

func TestShop_AsignadaAOtraBodegaRechazada(t *testing.T) {
	uc, _, _ := shopFixture()

	shop, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	_, err := uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseA)
	require.NoError(t, err)

	_, err = uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseB)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned, "hay que retirar la bodega actual primero")

	// Re-asignar la misma bodega es idempotente.
	_, err = uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseA)
	assert.NoError(t, err)
}

func TestShop_RetirarBodega(t *testing.T) {
	uc, _, auditRepo := shopFixture()

	shop, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	_, err := uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseA)
	require.NoError(t, err)

	unassigned, err := uc.UnassignWarehouse(testCompanyID, testUserID, shop.ID)
	require.NoError(t, err)
	assert.Empty(t, unassigned.WarehouseID)

	_, err = uc.UnassignWarehouse(testCompanyID, testUserID, shop.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "sin bodega no hay nada que retirar")

	require.Len(t, auditRepo.created, 2)
	assert.Equal(t, entity.AuditActionShopUnassigned, auditRepo.created[1].Action)
}

func TestShop_BodegaInexistenteAlAsignar(t *testing.T) {
	uc, _, _ := shopFixture()

	shop, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	_, err := uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, "99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShop_AgrupadoDeBodegaInexistente(t *testing.T) {
	uc, _, _ := shopFixture()

	_, err := uc.WarehouseShops(testCompanyID, "99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShop_AsignadasAOtraBodegaNoAparecen(t *testing.T) {
	uc, _, _ := shopFixture()

	libre, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería Libre"})
	ocupada, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería Norte"})
	_, err := uc.AssignWarehouse(testCompanyID, testUserID, ocupada.ID, shopWarehouseB)
	require.NoError(t, err)

	grouped, err := uc.WarehouseShops(testCompanyID, shopWarehouseA)
	require.NoError(t, err)
	require.Equal(t, 1, grouped.UnassignedCount,
		"las asignadas a otra bodega no son candidatas")
	assert.Equal(t, libre.ID, grouped.Unassigned[0].ID)
	assert.Equal(t, 0, grouped.AssignedCount)
}

// ── datos de contacto ──

func TestShop_UpdateNoTocaLaBodega(t *testing.T) {
	uc, _, _ := shopFixture()

	shop, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	_, err := uc.AssignWarehouse(testCompanyID, testUserID, shop.ID, shopWarehouseA)
	require.NoError(t, err)

	nuevo := "Droguería GreenCross Centro"
	updated, err := uc.Update(testCompanyID, shop.ID, dto.UpdateShopRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, nuevo, updated.Name)
	assert.Equal(t, shopWarehouseA, updated.WarehouseID, "update de contacto no cambia la asignación")
}

func TestShop_GetDeOtraEmpresa(t *testing.T) {
	uc, _, _ := shopFixture()

	shop, _ := uc.Create(testCompanyID, dto.CreateShopRequest{Name: "Droguería GreenCross"})
	got, err := uc.GetByID("99999999-9999-9999-9999-999999999999", shop.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "otra empresa no ve la droguería")
}
