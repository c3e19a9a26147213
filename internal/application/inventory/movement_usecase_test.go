package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.Stock // clave: medicineID|warehouseID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.Stock)}
}

func stockKey(medicineID, warehouseID string) string { return medicineID + "|" + warehouseID }

func (f *fakeStockRepo) Get(medicineID, warehouseID string) (*entity.Stock, error) {
	if s, ok := f.rows[stockKey(medicineID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{MedicineID: medicineID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) GetForUpdate(medicineID, warehouseID string) (*entity.Stock, error) {
	return f.Get(medicineID, warehouseID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.rows[stockKey(stock.MedicineID, stock.WarehouseID)] = &cp
	return nil
}

func (f *fakeStockRepo) ListByCompany(companyID, warehouseID, medicineID string, limit, offset int) ([]*entity.Stock, error) {
	out := make([]*entity.Stock, 0, len(f.rows))
	for _, s := range f.rows {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStockRepo) CountLowStock(companyID string, threshold decimal.Decimal) (int, error) {
	return 0, nil
}

type fakeMovementRepo struct {
	created []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (f *fakeMovementRepo) ListByCompany(companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return f.created, nil
}

type fakeMedicineRepo struct {
	byID map[string]*entity.Medicine
}

func (f *fakeMedicineRepo) Create(m *entity.Medicine) error { f.byID[m.ID] = m; return nil }

func (f *fakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMedicineRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Medicine, error) {
	return nil, nil
}

func (f *fakeMedicineRepo) Update(m *entity.Medicine) error { f.byID[m.ID] = m; return nil }

func (f *fakeMedicineRepo) UpdateCost(medicineID string, cost decimal.Decimal) error {
	if m, ok := f.byID[medicineID]; ok {
		m.Cost = cost
	}
	return nil
}

func (f *fakeMedicineRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Medicine, error) {
	out := make([]*entity.Medicine, 0, len(f.byID))
	for _, m := range f.byID {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMedicineRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }

func (f *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

func (f *fakeWarehouseRepo) Delete(id string) error { return nil }

// fakeTxRunner ejecuta fn directamente sobre los fakes, sin transacción real.
type fakeTxRunner struct {
	repos inventory.TxRepos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	return fn(f.repos)
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	testUserID    = "22222222-2222-2222-2222-222222222222"
	testMedID     = "33333333-3333-3333-3333-333333333333"
	testWhID      = "44444444-4444-4444-4444-444444444444"
	testWh2ID     = "55555555-5555-5555-5555-555555555555"
)

type engineFixture struct {
	uc        *inventory.MovementUseCase
	stock     *fakeStockRepo
	movements *fakeMovementRepo
	medicines *fakeMedicineRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	stock := newFakeStockRepo()
	movements := &fakeMovementRepo{}
	medicines := &fakeMedicineRepo{byID: map[string]*entity.Medicine{
		testMedID: {
			ID:        testMedID,
			CompanyID: testCompanyID,
			SKU:       "AMOX-500",
			Name:      "Amoxicilina 500mg",
			Cost:      decimal.Zero,
		},
	}}
	warehouses := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		testWhID:  {ID: testWhID, CompanyID: testCompanyID, Name: "Bodega Central"},
		testWh2ID: {ID: testWh2ID, CompanyID: testCompanyID, Name: "Bodega Norte"},
	}}
	runner := &fakeTxRunner{repos: inventory.TxRepos{
		Movements: movements,
		Stock:     stock,
		Medicines: medicines,
	}}
	return &engineFixture{
		uc:        inventory.NewMovementUseCase(runner, medicines, warehouses),
		stock:     stock,
		movements: movements,
		medicines: medicines,
	}
}

func (fx *engineFixture) register(t *testing.T, input inventory.MovementInput) error {
	t.Helper()
	input.CompanyID = testCompanyID
	input.UserID = testUserID
	return fx.uc.RegisterMovement(context.Background(), input)
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// ── IN ────────────────────────────────────────────────────────────────────────

// TestRegisterMovement_INInicial verifica que una entrada sobre stock vacío
// deja la cantidad completa y fija el costo promedio al costo de la entrada.
func TestRegisterMovement_INInicial(t *testing.T) {
	fx := newEngineFixture(t)

	err := fx.register(t, inventory.MovementInput{
		MedicineID:  testMedID,
		WarehouseID: testWhID,
		Type:        entity.MovementTypeIN,
		Quantity:    decimal.NewFromInt(100),
		UnitCost:    decPtr("10"),
	})
	require.NoError(t, err)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(100).Equal(stock.Quantity), "stock debe quedar en 100")

	med, _ := fx.medicines.GetByID(testMedID)
	assert.True(t, decimal.NewFromInt(10).Equal(med.Cost), "el costo promedio debe ser el de la entrada")

	require.Len(t, fx.movements.created, 1)
	mov := fx.movements.created[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, decimal.NewFromInt(100).Equal(mov.Quantity), "la entrada se guarda con cantidad positiva")
	assert.True(t, decimal.NewFromInt(1000).Equal(mov.TotalCost))
}

// TestRegisterMovement_INPromediaCosto verifica el promedio ponderado:
// 100 unidades a $10 más 50 a $16 deben dejar el costo en $12.
func TestRegisterMovement_INPromediaCosto(t *testing.T) {
	fx := newEngineFixture(t)

	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(100), UnitCost: decPtr("10"),
	}))
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(50), UnitCost: decPtr("16"),
	}))

	med, _ := fx.medicines.GetByID(testMedID)
	assert.True(t, decimal.NewFromInt(12).Equal(med.Cost), "costo promedio esperado 12, obtenido %s", med.Cost)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(150).Equal(stock.Quantity))
}

// TestRegisterMovement_INSinCosto verifica que IN sin unit_cost se rechaza
// antes de abrir la transacción.
func TestRegisterMovement_INSinCosto(t *testing.T) {
	fx := newEngineFixture(t)

	err := fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fx.movements.created)
}

// ── OUT ───────────────────────────────────────────────────────────────────────

// TestRegisterMovement_OUTDescuentaAlCostoPromedio verifica que la salida
// descuenta stock y registra el movimiento con cantidad negativa al costo
// promedio vigente.
func TestRegisterMovement_OUTDescuentaAlCostoPromedio(t *testing.T) {
	fx := newEngineFixture(t)
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(100), UnitCost: decPtr("10"),
	}))

	err := fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(70).Equal(stock.Quantity))

	mov := fx.movements.created[len(fx.movements.created)-1]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.True(t, decimal.NewFromInt(-30).Equal(mov.Quantity), "la salida se guarda con cantidad negativa")
	assert.True(t, decimal.NewFromInt(10).Equal(mov.UnitCost), "la salida sale al costo promedio")
}

// TestRegisterMovement_OUTInsuficiente verifica que una salida mayor al
// stock disponible falla con ErrInsufficientStock y no deja rastro.
func TestRegisterMovement_OUTInsuficiente(t *testing.T) {
	fx := newEngineFixture(t)
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(5), UnitCost: decPtr("10"),
	}))
	movimientosAntes := len(fx.movements.created)

	err := fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(8),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(5).Equal(stock.Quantity), "el stock no debe cambiar")
	assert.Len(t, fx.movements.created, movimientosAntes, "no debe registrarse movimiento")
}

// ── TRANSFER ──────────────────────────────────────────────────────────────────

// TestRegisterMovement_TRANSFER verifica el traslado: resta en origen, suma
// en destino y dos movimientos con el mismo transaction_id.
func TestRegisterMovement_TRANSFER(t *testing.T) {
	fx := newEngineFixture(t)
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(100), UnitCost: decPtr("10"),
	}))

	err := fx.register(t, inventory.MovementInput{
		MedicineID:      testMedID,
		FromWarehouseID: testWhID,
		ToWarehouseID:   testWh2ID,
		Type:            entity.MovementTypeTRANSFER,
		Quantity:        decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	origin, _ := fx.stock.Get(testMedID, testWhID)
	dest, _ := fx.stock.Get(testMedID, testWh2ID)
	assert.True(t, decimal.NewFromInt(60).Equal(origin.Quantity))
	assert.True(t, decimal.NewFromInt(40).Equal(dest.Quantity))

	require.Len(t, fx.movements.created, 3) // 1 IN + 2 del traslado
	out := fx.movements.created[1]
	in := fx.movements.created[2]
	assert.Equal(t, out.TransactionID, in.TransactionID, "ambas filas comparten transaction_id")
	assert.True(t, out.Quantity.IsNegative())
	assert.True(t, in.Quantity.IsPositive())
}

// TestRegisterMovement_TRANSFERMismaBodega verifica que origen == destino
// se rechaza.
func TestRegisterMovement_TRANSFERMismaBodega(t *testing.T) {
	fx := newEngineFixture(t)
	err := fx.register(t, inventory.MovementInput{
		MedicineID:      testMedID,
		FromWarehouseID: testWhID,
		ToWarehouseID:   testWhID,
		Type:            entity.MovementTypeTRANSFER,
		Quantity:        decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── ADJUSTMENT ────────────────────────────────────────────────────────────────

// TestRegisterMovement_ADJUSTMENTNegativo verifica que un ajuste negativo
// se despacha por la ruta de salida.
func TestRegisterMovement_ADJUSTMENTNegativo(t *testing.T) {
	fx := newEngineFixture(t)
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10), UnitCost: decPtr("10"),
	}))

	err := fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeADJUSTMENT, Quantity: decimal.NewFromInt(-4),
	})
	require.NoError(t, err)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(6).Equal(stock.Quantity))

	mov := fx.movements.created[len(fx.movements.created)-1]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type, "el ajuste negativo queda registrado como OUT")
}

// ── validaciones de pertenencia ───────────────────────────────────────────────

// TestRegisterMovement_MedicinaDeOtraEmpresa verifica que mover stock de un
// medicamento ajeno devuelve ErrForbidden.
func TestRegisterMovement_MedicinaDeOtraEmpresa(t *testing.T) {
	fx := newEngineFixture(t)
	fx.medicines.byID["ajeno"] = &entity.Medicine{
		ID: "ajeno", CompanyID: "otra-empresa", Name: "Ibuprofeno", Cost: decimal.Zero,
	}

	err := fx.register(t, inventory.MovementInput{
		MedicineID: "ajeno", WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), UnitCost: decPtr("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestRegisterMovement_BodegaInexistente verifica que una bodega desconocida
// devuelve ErrNotFound.
func TestRegisterMovement_BodegaInexistente(t *testing.T) {
	fx := newEngineFixture(t)
	err := fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: "no-existe",
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegisterOUTInTx_RespetaTransaccionDelCaller verifica que la variante
// InTx usa los repositorios que recibe y reporta stock insuficiente.
func TestRegisterOUTInTx_RespetaTransaccionDelCaller(t *testing.T) {
	fx := newEngineFixture(t)
	require.NoError(t, fx.register(t, inventory.MovementInput{
		MedicineID: testMedID, WarehouseID: testWhID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10), UnitCost: decPtr("10"),
	}))
	med, _ := fx.medicines.GetByID(testMedID)
	repos := inventory.TxRepos{Movements: fx.movements, Stock: fx.stock, Medicines: fx.medicines}

	err := fx.uc.RegisterOUTInTx(repos, med, testWhID, testUserID,
		decimal.NewFromInt(4), time.Now(), "tx-1", "purchase_request:req-1")
	require.NoError(t, err)

	stock, _ := fx.stock.Get(testMedID, testWhID)
	assert.True(t, decimal.NewFromInt(6).Equal(stock.Quantity))
	mov := fx.movements.created[len(fx.movements.created)-1]
	assert.Equal(t, "purchase_request:req-1", mov.Reference)

	err = fx.uc.RegisterOUTInTx(repos, med, testWhID, testUserID,
		decimal.NewFromInt(60), time.Now(), "tx-2", "purchase_request:req-2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
