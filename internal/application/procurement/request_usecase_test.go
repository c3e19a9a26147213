package procurement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/logger"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeRequestRepo struct {
	byID  map[string]*entity.PurchaseRequest
	order []string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*entity.PurchaseRequest)}
}

func cloneRequest(r *entity.PurchaseRequest) *entity.PurchaseRequest {
	cp := *r
	cp.Items = append([]entity.PurchaseRequestItem(nil), r.Items...)
	return &cp
}

func (f *fakeRequestRepo) Create(r *entity.PurchaseRequest) error {
	f.byID[r.ID] = cloneRequest(r)
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	if r, ok := f.byID[id]; ok {
		return cloneRequest(r), nil
	}
	return nil, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(id string) (*entity.PurchaseRequest, error) {
	return f.GetByID(id)
}

func (f *fakeRequestRepo) Update(r *entity.PurchaseRequest) error {
	f.byID[r.ID] = cloneRequest(r)
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(r *entity.PurchaseRequest) error {
	return f.Update(r)
}

func (f *fakeRequestRepo) ListByCompany(companyID string, filter repository.PurchaseRequestFilter) ([]*entity.PurchaseRequest, error) {
	out := make([]*entity.PurchaseRequest, 0, len(f.order))
	for _, id := range f.order {
		r, ok := f.byID[id]
		if !ok || r.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.ShopID != "" && r.ShopID != filter.ShopID {
			continue
		}
		out = append(out, cloneRequest(r))
	}
	return out, nil
}

func (f *fakeRequestRepo) CountByStatus(companyID, status string) (int, error) {
	n := 0
	for _, r := range f.byID {
		if r.CompanyID == companyID && r.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRequestRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

type fakeReturnRepo struct {
	byID  map[string]*entity.MedicineReturn
	order []string
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{byID: make(map[string]*entity.MedicineReturn)}
}

func (f *fakeReturnRepo) Create(r *entity.MedicineReturn) error {
	cp := *r
	f.byID[r.ID] = &cp
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeReturnRepo) GetByID(id string) (*entity.MedicineReturn, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReturnRepo) GetByIDForUpdate(id string) (*entity.MedicineReturn, error) {
	return f.GetByID(id)
}

func (f *fakeReturnRepo) UpdateStatus(r *entity.MedicineReturn) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReturnRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.MedicineReturn, error) {
	out := make([]*entity.MedicineReturn, 0, len(f.order))
	for _, id := range f.order {
		r := f.byID[id]
		if r.CompanyID != companyID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReturnRepo) CountByStatus(companyID, status string) (int, error) {
	n := 0
	for _, r := range f.byID {
		if r.CompanyID == companyID && r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeShopRepo struct {
	byID map[string]*entity.Shop
}

func (f *fakeShopRepo) Create(s *entity.Shop) error { f.byID[s.ID] = s; return nil }

func (f *fakeShopRepo) GetByID(id string) (*entity.Shop, error) {
	if s, ok := f.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeShopRepo) Update(s *entity.Shop) error { f.byID[s.ID] = s; return nil }

func (f *fakeShopRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Shop, error) {
	out := make([]*entity.Shop, 0, len(f.byID))
	for _, s := range f.byID {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeShopRepo) ListByWarehouse(warehouseID string) ([]*entity.Shop, error) { return nil, nil }
func (f *fakeShopRepo) CountByWarehouse(warehouseID string) (int, error)           { return 0, nil }
func (f *fakeShopRepo) AssignWarehouse(shopID, warehouseID string) error           { return nil }
func (f *fakeShopRepo) UnassignWarehouse(shopID string) error                      { return nil }
func (f *fakeShopRepo) Delete(id string) error                                     { delete(f.byID, id); return nil }

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.byID[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }

func (f *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(f.byID))
	for _, w := range f.byID {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) Delete(id string) error { delete(f.byID, id); return nil }

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
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMedicineRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeStockRepo struct {
	rows map[string]*entity.Stock
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
	return nil, nil
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

type fakeAuditRepo struct {
	created []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error {
	f.created = append(f.created, l)
	return nil
}

func (f *fakeAuditRepo) ListByCompany(companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error) {
	return f.created, nil
}

type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error             { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) { return f.user, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { return nil }
func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error { return nil }

type fakeTxRunner struct {
	repos inventory.TxRepos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	return fn(f.repos)
}

type fakeNotifier struct {
	approvedTo []string
	rejectedTo []string
	lastReason string
}

func (f *fakeNotifier) RequestApproved(recipient string, req *dto.PurchaseRequestResponse) {
	f.approvedTo = append(f.approvedTo, recipient)
}

func (f *fakeNotifier) RequestRejected(recipient string, req *dto.PurchaseRequestResponse, reason string) {
	f.rejectedTo = append(f.rejectedTo, recipient)
	f.lastReason = reason
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	procCompanyID = "11111111-1111-1111-1111-111111111111"
	procUserID    = "22222222-2222-2222-2222-222222222222"
	procShopID    = "33333333-3333-3333-3333-333333333333"
	procWhID      = "44444444-4444-4444-4444-444444444444"
	procMedAID    = "55555555-5555-5555-5555-555555555555"
	procMedBID    = "66666666-6666-6666-6666-666666666666"
)

type procFixture struct {
	requests  *procurement.PurchaseRequestUseCase
	returns   *procurement.ReturnUseCase
	reqRepo   *fakeRequestRepo
	retRepo   *fakeReturnRepo
	shops     *fakeShopRepo
	medicines *fakeMedicineRepo
	stock     *fakeStockRepo
	movements *fakeMovementRepo
	notifier  *fakeNotifier
	auditRepo *fakeAuditRepo
}

// newProcFixture arma el escenario base: una droguería con correo, una
// bodega, Amoxicilina con 100 unidades en stock e Ibuprofeno con 5.
func newProcFixture(t *testing.T) *procFixture {
	t.Helper()

	shops := &fakeShopRepo{byID: map[string]*entity.Shop{
		procShopID: {
			ID:        procShopID,
			CompanyID: procCompanyID,
			Name:      "Droguería GreenCross",
			Email:     "pedidos@greencross.co",
		},
	}}
	warehouses := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		procWhID: {ID: procWhID, CompanyID: procCompanyID, Name: "Bodega Central"},
	}}
	medicines := &fakeMedicineRepo{byID: map[string]*entity.Medicine{
		procMedAID: {
			ID: procMedAID, CompanyID: procCompanyID,
			SKU: "AMOX-500", Name: "Amoxicilina 500mg",
			Cost: decimal.NewFromInt(10),
		},
		procMedBID: {
			ID: procMedBID, CompanyID: procCompanyID,
			SKU: "IBU-400", Name: "Ibuprofeno 400mg",
			Cost: decimal.NewFromInt(5),
		},
	}}
	stock := newFakeStockRepo()
	require.NoError(t, stock.Upsert(&entity.Stock{
		MedicineID: procMedAID, WarehouseID: procWhID, Quantity: decimal.NewFromInt(100),
	}))
	require.NoError(t, stock.Upsert(&entity.Stock{
		MedicineID: procMedBID, WarehouseID: procWhID, Quantity: decimal.NewFromInt(5),
	}))

	reqRepo := newFakeRequestRepo()
	retRepo := newFakeReturnRepo()
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{repos: inventory.TxRepos{
		Movements: movements,
		Stock:     stock,
		Medicines: medicines,
		Requests:  reqRepo,
		Returns:   retRepo,
	}}
	movementUC := inventory.NewMovementUseCase(runner, medicines, warehouses)

	notifier := &fakeNotifier{}
	auditRepo := &fakeAuditRepo{}
	recorder := audit.NewRecorder(auditRepo,
		&fakeUserRepo{user: &entity.User{ID: procUserID, Name: "Laura Admin"}},
		logger.New(logger.Config{Env: "test", Level: "error"}))

	return &procFixture{
		requests: procurement.NewPurchaseRequestUseCase(
			reqRepo, shops, warehouses, medicines, stock,
			runner, movementUC, notifier, recorder),
		returns: procurement.NewReturnUseCase(
			retRepo, shops, warehouses, medicines,
			runner, movementUC, recorder),
		reqRepo:   reqRepo,
		retRepo:   retRepo,
		shops:     shops,
		medicines: medicines,
		stock:     stock,
		movements: movements,
		notifier:  notifier,
		auditRepo: auditRepo,
	}
}

// createRequest crea una solicitud pendiente de Amoxicilina (10 unidades,
// hay 100 disponibles) salvo que se pasen líneas propias.
func (fx *procFixture) createRequest(t *testing.T, items ...dto.RequestItemInput) *dto.PurchaseRequestResponse {
	t.Helper()
	if len(items) == 0 {
		items = []dto.RequestItemInput{
			{MedicineID: procMedAID, QuantityRequested: decimal.NewFromInt(10)},
		}
	}
	resp, err := fx.requests.Create(procCompanyID, procUserID, dto.CreatePurchaseRequestRequest{
		ShopID:      procShopID,
		WarehouseID: procWhID,
		Items:       items,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

// ── crear y leer ──────────────────────────────────────────────────────────────

// TestPurchaseRequest_CrearCalculaDisponibilidad verifica que la creación
// deja la solicitud pendiente con prioridad normal y que cada línea sale con
// la disponibilidad calculada contra el stock de la bodega.
func TestPurchaseRequest_CrearCalculaDisponibilidad(t *testing.T) {
	fx := newProcFixture(t)

	resp := fx.createRequest(t,
		dto.RequestItemInput{MedicineID: procMedAID, QuantityRequested: decimal.NewFromInt(20)},
		dto.RequestItemInput{MedicineID: procMedBID, QuantityRequested: decimal.NewFromInt(8)},
	)

	assert.Equal(t, entity.RequestStatusPending, resp.Status)
	assert.Equal(t, entity.RequestPriorityNormal, resp.Priority, "sin prioridad explícita queda normal")
	assert.Equal(t, "Droguería GreenCross", resp.ShopName)
	assert.Equal(t, "Bodega Central", resp.WarehouseName)

	require.Len(t, resp.Items, 2)
	lineaA, lineaB := resp.Items[0], resp.Items[1]
	assert.Equal(t, "Amoxicilina 500mg", lineaA.MedicineName)
	assert.True(t, lineaA.IsStockAvailable, "20 pedidas, 100 disponibles")
	assert.True(t, decimal.NewFromInt(100).Equal(lineaA.AvailableStock))
	assert.False(t, lineaB.IsStockAvailable, "8 pedidas, solo 5 disponibles")
	assert.False(t, resp.CanApprove, "una línea sin stock bloquea la aprobación")
}

// TestPurchaseRequest_CrearConMedicamentoAjeno verifica que una línea con un
// medicamento de otra empresa devuelve not found.
func TestPurchaseRequest_CrearConMedicamentoAjeno(t *testing.T) {
	fx := newProcFixture(t)
	fx.medicines.byID["ajeno"] = &entity.Medicine{
		ID: "ajeno", CompanyID: "otra-empresa", Name: "Loratadina",
	}

	_, err := fx.requests.Create(procCompanyID, procUserID, dto.CreatePurchaseRequestRequest{
		ShopID:      procShopID,
		WarehouseID: procWhID,
		Items: []dto.RequestItemInput{
			{MedicineID: "ajeno", QuantityRequested: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestPurchaseRequest_CrearConCantidadNoPositiva verifica que cantidad cero
// o negativa se rechaza.
func TestPurchaseRequest_CrearConCantidadNoPositiva(t *testing.T) {
	fx := newProcFixture(t)

	_, err := fx.requests.Create(procCompanyID, procUserID, dto.CreatePurchaseRequestRequest{
		ShopID:      procShopID,
		WarehouseID: procWhID,
		Items: []dto.RequestItemInput{
			{MedicineID: procMedAID, QuantityRequested: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestPurchaseRequest_GetDeOtraEmpresa verifica que leer una solicitud ajena
// se comporta como inexistente.
func TestPurchaseRequest_GetDeOtraEmpresa(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	got, err := fx.requests.GetByID("otra-empresa", resp.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestPurchaseRequest_NombreConPlaceholder verifica que al desaparecer el
// medicamento del catálogo la línea muestra el placeholder en vez de fallar.
func TestPurchaseRequest_NombreConPlaceholder(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	require.NoError(t, fx.medicines.Delete(procMedAID))

	got, err := fx.requests.GetByID(procCompanyID, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, lookup.Placeholder, got.Items[0].MedicineName)
}

// TestPurchaseRequest_ListFiltraPorEstadoYDrogueria verifica los filtros del
// listado.
func TestPurchaseRequest_ListFiltraPorEstadoYDrogueria(t *testing.T) {
	fx := newProcFixture(t)
	primera := fx.createRequest(t)
	fx.createRequest(t)

	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, primera.ID)
	require.NoError(t, err)

	pendientes, err := fx.requests.List(procCompanyID, repository.PurchaseRequestFilter{
		Status: entity.RequestStatusPending,
	})
	require.NoError(t, err)
	assert.Len(t, pendientes.Items, 1)

	todas, err := fx.requests.List(procCompanyID, repository.PurchaseRequestFilter{ShopID: procShopID})
	require.NoError(t, err)
	assert.Len(t, todas.Items, 2)

	_, err = fx.requests.List(procCompanyID, repository.PurchaseRequestFilter{Status: "enviada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido en el filtro")
}

// ── aprobar ───────────────────────────────────────────────────────────────────

// TestPurchaseRequest_AprobarConStock verifica la aprobación: cambia el
// estado, estampa el aprobador, audita y notifica al correo de la droguería.
func TestPurchaseRequest_AprobarConStock(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	approved, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, approved)

	assert.Equal(t, entity.RequestStatusApproved, approved.Status)
	assert.Equal(t, procUserID, approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	require.Len(t, fx.auditRepo.created, 1)
	entrada := fx.auditRepo.created[0]
	assert.Equal(t, entity.AuditActionRequestApproved, entrada.Action)
	assert.Equal(t, "Laura Admin", entrada.UserName)
	assert.JSONEq(t, `{"status":"pending"}`, entrada.BeforeData)
	assert.JSONEq(t, `{"status":"approved"}`, entrada.AfterData)

	assert.Equal(t, []string{"pedidos@greencross.co"}, fx.notifier.approvedTo)
}

// TestPurchaseRequest_AprobarSinStockDevuelve409 verifica la regla central:
// si alguna línea no tiene stock suficiente al momento de aprobar, la
// aprobación completa se rechaza con ErrStockUnavailable y el estado no cambia.
func TestPurchaseRequest_AprobarSinStockDevuelve409(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t,
		dto.RequestItemInput{MedicineID: procMedAID, QuantityRequested: decimal.NewFromInt(10)},
		dto.RequestItemInput{MedicineID: procMedBID, QuantityRequested: decimal.NewFromInt(8)},
	)

	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrStockUnavailable)

	got, err := fx.requests.GetByID(procCompanyID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status, "la solicitud sigue pendiente")
	assert.Empty(t, fx.notifier.approvedTo, "no debe salir correo")
	assert.Empty(t, fx.auditRepo.created, "no debe auditarse")
}

// TestPurchaseRequest_AprobarRevalidaContraStockVigente verifica que la
// aprobación valida contra el stock del momento, no contra el de la
// creación: si el stock cayó después de crear, la aprobación falla.
func TestPurchaseRequest_AprobarRevalidaContraStockVigente(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t) // pide 10, hay 100
	require.True(t, resp.CanApprove)

	require.NoError(t, fx.stock.Upsert(&entity.Stock{
		MedicineID: procMedAID, WarehouseID: procWhID, Quantity: decimal.NewFromInt(3),
	}))

	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrStockUnavailable)
}

// TestPurchaseRequest_AprobarNoPendiente verifica que solo las pendientes
// se pueden aprobar.
func TestPurchaseRequest_AprobarNoPendiente(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)

	_, err = fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ── rechazar y cancelar ───────────────────────────────────────────────────────

// TestPurchaseRequest_RechazarGuardaMotivo verifica el rechazo con motivo,
// su auditoría y el correo a la droguería.
func TestPurchaseRequest_RechazarGuardaMotivo(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	rejected, err := fx.requests.Reject(context.Background(), procCompanyID, procUserID, resp.ID, "presupuesto agotado")
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusRejected, rejected.Status)
	assert.Equal(t, "presupuesto agotado", rejected.RejectionReason)
	assert.Equal(t, []string{"pedidos@greencross.co"}, fx.notifier.rejectedTo)
	assert.Equal(t, "presupuesto agotado", fx.notifier.lastReason)

	require.Len(t, fx.auditRepo.created, 1)
	assert.Equal(t, entity.AuditActionRequestRejected, fx.auditRepo.created[0].Action)
}

// TestPurchaseRequest_CancelarSoloPendiente verifica la cancelación por la
// propia droguería y que un estado terminal no se puede cancelar.
func TestPurchaseRequest_CancelarSoloPendiente(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	cancelled, err := fx.requests.Cancel(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusCancelled, cancelled.Status)

	_, err = fx.requests.Cancel(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ── editar y eliminar ─────────────────────────────────────────────────────────

// TestPurchaseRequest_EditarReemplazaLineas verifica que la edición de una
// pendiente reemplaza las líneas por completo.
func TestPurchaseRequest_EditarReemplazaLineas(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	prioridad := entity.RequestPriorityUrgent
	updated, err := fx.requests.Update(procCompanyID, resp.ID, dto.UpdatePurchaseRequestRequest{
		Priority: &prioridad,
		Items: []dto.RequestItemInput{
			{MedicineID: procMedBID, QuantityRequested: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, entity.RequestPriorityUrgent, updated.Priority)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, procMedBID, updated.Items[0].MedicineID)
}

// TestPurchaseRequest_EditarNoPendiente verifica que editar una aprobada
// devuelve ErrInvalidStatus.
func TestPurchaseRequest_EditarNoPendiente(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)
	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)

	notas := "llegó tarde"
	_, err = fx.requests.Update(procCompanyID, resp.ID, dto.UpdatePurchaseRequestRequest{Notes: &notas})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// TestPurchaseRequest_EliminarSegunEstado verifica que solo pendientes y
// rechazadas se pueden eliminar.
func TestPurchaseRequest_EliminarSegunEstado(t *testing.T) {
	fx := newProcFixture(t)

	pendiente := fx.createRequest(t)
	assert.NoError(t, fx.requests.Delete(procCompanyID, pendiente.ID))

	rechazada := fx.createRequest(t)
	_, err := fx.requests.Reject(context.Background(), procCompanyID, procUserID, rechazada.ID, "duplicada")
	require.NoError(t, err)
	assert.NoError(t, fx.requests.Delete(procCompanyID, rechazada.ID))

	aprobada := fx.createRequest(t)
	_, err = fx.requests.Approve(context.Background(), procCompanyID, procUserID, aprobada.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, fx.requests.Delete(procCompanyID, aprobada.ID), domain.ErrInvalidStatus)
}

// ── despachar ─────────────────────────────────────────────────────────────────

// TestPurchaseRequest_DespachoDescuentaStockPorLinea verifica el despacho:
// una salida por línea con el id de la solicitud como transaction_id, stock
// descontado y estado dispatched.
func TestPurchaseRequest_DespachoDescuentaStockPorLinea(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t,
		dto.RequestItemInput{MedicineID: procMedAID, QuantityRequested: decimal.NewFromInt(20)},
		dto.RequestItemInput{MedicineID: procMedBID, QuantityRequested: decimal.NewFromInt(5)},
	)
	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)

	dispatched, err := fx.requests.Dispatch(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusDispatched, dispatched.Status)

	stockA, _ := fx.stock.Get(procMedAID, procWhID)
	stockB, _ := fx.stock.Get(procMedBID, procWhID)
	assert.True(t, decimal.NewFromInt(80).Equal(stockA.Quantity))
	assert.True(t, decimal.Zero.Equal(stockB.Quantity))

	require.Len(t, fx.movements.created, 2)
	for _, mov := range fx.movements.created {
		assert.Equal(t, entity.MovementTypeOUT, mov.Type)
		assert.Equal(t, resp.ID, mov.TransactionID, "las salidas comparten el id de la solicitud")
		assert.Equal(t, "purchase_request:"+resp.ID, mov.Reference)
		assert.True(t, mov.Quantity.IsNegative())
	}
}

// TestPurchaseRequest_DespachoSinStockAborta verifica que el despacho de una
// aprobada cuyo stock cayó después falla y la solicitud sigue aprobada.
func TestPurchaseRequest_DespachoSinStockAborta(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t) // pide 10
	_, err := fx.requests.Approve(context.Background(), procCompanyID, procUserID, resp.ID)
	require.NoError(t, err)

	require.NoError(t, fx.stock.Upsert(&entity.Stock{
		MedicineID: procMedAID, WarehouseID: procWhID, Quantity: decimal.NewFromInt(4),
	}))

	_, err = fx.requests.Dispatch(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := fx.requests.GetByID(procCompanyID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, got.Status, "el estado no cambia si el despacho falla")
	assert.Empty(t, fx.movements.created)
}

// TestPurchaseRequest_DespachoSoloAprobadas verifica que una pendiente no se
// puede despachar.
func TestPurchaseRequest_DespachoSoloAprobadas(t *testing.T) {
	fx := newProcFixture(t)
	resp := fx.createRequest(t)

	_, err := fx.requests.Dispatch(context.Background(), procCompanyID, procUserID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
