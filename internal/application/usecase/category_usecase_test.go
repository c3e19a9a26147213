package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// ── creación y jerarquía ──

func TestCategory_CrearSinPadreEsSeleccionableComoPadre(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	created, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{
		Name:        "Antibióticos",
		Description: "Medicamentos antibacterianos",
	})
	require.NoError(t, err)
	assert.Empty(t, created.ParentID, "sin parent_id debe quedar de primer nivel")
	assert.True(t, created.IsActive, "is_active por defecto debe ser true")

	parents, err := uc.ListParents(testCompanyID)
	require.NoError(t, err)
	require.Len(t, parents, 1, "la nueva categoría debe aparecer entre los padres")
	assert.Equal(t, "Antibióticos", parents[0].Name)

	// Una hija de Antibióticos no entra al conjunto de padres elegibles.
	child, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{
		Name:     "Penicilinas",
		ParentID: created.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, child.ParentID)
	assert.Equal(t, "Antibióticos", child.ParentName)

	parents, err = uc.ListParents(testCompanyID)
	require.NoError(t, err)
	assert.Len(t, parents, 1, "las hijas no son seleccionables como padre")
}

func TestCategory_PadreDebeSerDePrimerNivel(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	top, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Antibióticos"})
	require.NoError(t, err)
	child, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Penicilinas", ParentID: top.ID})
	require.NoError(t, err)

	_, err = uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Amoxicilinas", ParentID: child.ID})
	assert.ErrorIs(t, err, domain.ErrParentNotTopLevel, "una hija no puede ser padre")

	_, err = uc.Create(testCompanyID, dto.CreateCategoryRequest{
		Name:     "Huérfana",
		ParentID: "99999999-9999-9999-9999-999999999999",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el padre debe existir")
}

func TestCategory_UpdateAplicaLaMismaReglaDePadre(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	top, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Antibióticos"})
	child, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Penicilinas", ParentID: top.ID})
	other, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Jarabes"})

	// Auto-padre rechazado.
	_, err := uc.Update(testCompanyID, other.ID, dto.UpdateCategoryRequest{ParentID: &other.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Mover bajo una hija rechazado.
	_, err = uc.Update(testCompanyID, other.ID, dto.UpdateCategoryRequest{ParentID: &child.ID})
	assert.ErrorIs(t, err, domain.ErrParentNotTopLevel)

	// Mover bajo una de primer nivel sí.
	updated, err := uc.Update(testCompanyID, other.ID, dto.UpdateCategoryRequest{ParentID: &top.ID})
	require.NoError(t, err)
	assert.Equal(t, "Antibióticos", updated.ParentName)
}

func TestCategory_PadreDeOtraEmpresaRechazado(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	ajena, err := uc.Create("99999999-9999-9999-9999-999999999999", dto.CreateCategoryRequest{Name: "Ajena"})
	require.NoError(t, err)

	_, err = uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Local", ParentID: ajena.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el padre debe ser de la misma empresa")
}

// ── eliminación ──

func TestCategory_EliminarConHijasRechazado(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	top, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Antibióticos"})
	child, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Penicilinas", ParentID: top.ID})

	err := uc.Delete(testCompanyID, top.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "con hijas no se elimina")

	// Primero la hija, luego el padre.
	require.NoError(t, uc.Delete(testCompanyID, child.ID))
	require.NoError(t, uc.Delete(testCompanyID, top.ID))

	got, err := uc.GetByID(testCompanyID, top.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategory_EliminarDeOtraEmpresa(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	cat, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Antibióticos"})

	err := uc.Delete("99999999-9999-9999-9999-999999999999", cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── listado ──

func TestCategory_ListResuelvePadreConMarcador(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	top, _ := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Antibióticos"})
	_, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: "Penicilinas", ParentID: top.ID})
	require.NoError(t, err)

	// Referencia colgante: el padre desaparece por debajo del caso de uso.
	require.NoError(t, repo.Delete(top.ID))

	list, err := uc.List(testCompanyID, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, lookup.Placeholder, list.Items[0].ParentName,
		"el padre colgante se muestra con el marcador")
}

func TestCategory_BusquedaInsensibleAAcentos(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	for _, name := range []string{"Analgésicos", "Antibióticos", "Jarabes"} {
		_, err := uc.Create(testCompanyID, dto.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := uc.List(testCompanyID, "ANTIBIOTICOS", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "la búsqueda ignora mayúsculas y acentos")
	assert.Equal(t, "Antibióticos", list.Items[0].Name)

	list, err = uc.List(testCompanyID, "jarabe", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Jarabes", list.Items[0].Name)
}
