package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

type fakeMedicineRepo struct {
	byID  map[string]*entity.Medicine
	order []string
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{byID: make(map[string]*entity.Medicine)}
}

func (f *fakeMedicineRepo) Create(m *entity.Medicine) error {
	cp := *m
	f.byID[m.ID] = &cp
	f.order = append(f.order, m.ID)
	return nil
}

func (f *fakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMedicineRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Medicine, error) {
	for _, m := range f.byID {
		if m.CompanyID == companyID && m.SKU == sku {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMedicineRepo) Update(m *entity.Medicine) error {
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMedicineRepo) UpdateCost(medicineID string, cost decimal.Decimal) error {
	if m, ok := f.byID[medicineID]; ok {
		m.Cost = cost
	}
	return nil
}

func (f *fakeMedicineRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Medicine, error) {
	out := make([]*entity.Medicine, 0, len(f.order))
	for _, id := range f.order {
		m, ok := f.byID[id]
		if !ok || m.CompanyID != companyID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMedicineRepo) Delete(id string) error { delete(f.byID, id); return nil }

func medicineFixture() (*usecase.MedicineUseCase, *fakeMedicineRepo, *fakeCategoryRepo) {
	medicines := newFakeMedicineRepo()
	categories := newFakeCategoryRepo()
	return usecase.NewMedicineUseCase(medicines, categories), medicines, categories
}

func TestMedicine_SKUDuplicadoPorEmpresa(t *testing.T) {
	uc, _, _ := medicineFixture()

	_, err := uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina 500mg", UnitMeasure: "caja",
	})
	require.NoError(t, err)

	_, err = uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina genérica", UnitMeasure: "caja",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU es único por empresa")

	// Otra empresa puede usar el mismo SKU.
	_, err = uc.Create("99999999-9999-9999-9999-999999999999", dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina 500mg", UnitMeasure: "caja",
	})
	assert.NoError(t, err)
}

func TestMedicine_CategoriaDebeExistirEnLaEmpresa(t *testing.T) {
	uc, _, categories := medicineFixture()
	_ = categories.Create(&entity.Category{
		ID:        "77777777-7777-7777-7777-777777777777",
		CompanyID: "99999999-9999-9999-9999-999999999999",
		Name:      "Ajena",
	})

	_, err := uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU:         "IBU-400",
		Name:        "Ibuprofeno 400mg",
		CategoryID:  "77777777-7777-7777-7777-777777777777",
		UnitMeasure: "caja",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMedicine_ListResuelveCategoriaConMarcador(t *testing.T) {
	uc, _, categories := medicineFixture()
	catID := "77777777-7777-7777-7777-777777777777"
	_ = categories.Create(&entity.Category{ID: catID, CompanyID: testCompanyID, Name: "Antibióticos"})

	created, err := uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina 500mg", CategoryID: catID, UnitMeasure: "caja",
	})
	require.NoError(t, err)
	assert.Equal(t, "Antibióticos", created.CategoryName)

	require.NoError(t, categories.Delete(catID))

	list, err := uc.List(testCompanyID, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, lookup.Placeholder, list.Items[0].CategoryName)
}

func TestMedicine_BusquedaPorSKUYNombreGenerico(t *testing.T) {
	uc, _, _ := medicineFixture()

	_, _ = uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxil", GenericName: "Amoxicilina", UnitMeasure: "caja",
	})
	_, _ = uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "IBU-400", Name: "Advil", GenericName: "Ibuprofeno", UnitMeasure: "caja",
	})

	list, err := uc.List(testCompanyID, "ibuprofeno", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "IBU-400", list.Items[0].SKU)

	list, err = uc.List(testCompanyID, "amox-500", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Amoxil", list.Items[0].Name)
}

func TestMedicine_UpdateParcialNoTocaElCosto(t *testing.T) {
	uc, medicines, _ := medicineFixture()

	created, err := uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina 500mg", UnitMeasure: "caja",
	})
	require.NoError(t, err)

	// El motor de inventario fija un costo promedio.
	require.NoError(t, medicines.UpdateCost(created.ID, dec(12)))

	nuevo := "Amoxicilina 500mg x10"
	updated, err := uc.Update(testCompanyID, created.ID, dto.UpdateMedicineRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, nuevo, updated.Name)

	stored, _ := medicines.GetByID(created.ID)
	assert.True(t, stored.Cost.Equal(dec(12)), "update de catálogo no pisa el costo del motor")
}

func TestMedicine_EliminarDeOtraEmpresa(t *testing.T) {
	uc, _, _ := medicineFixture()

	created, _ := uc.Create(testCompanyID, dto.CreateMedicineRequest{
		SKU: "AMOX-500", Name: "Amoxicilina 500mg", UnitMeasure: "caja",
	})
	err := uc.Delete("99999999-9999-9999-9999-999999999999", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
