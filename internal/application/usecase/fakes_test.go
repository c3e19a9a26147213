package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/logger"
)

// Fakes en memoria compartidos por los tests del paquete.

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	testUserID    = "22222222-2222-2222-2222-222222222222"
)

type fakeCategoryRepo struct {
	byID  map[string]*entity.Category
	order []string
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(f.order))
	for _, id := range f.order {
		c, ok := f.byID[id]
		if !ok || c.CompanyID != companyID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListTopLevel(companyID string) ([]*entity.Category, error) {
	all, _ := f.ListByCompany(companyID, 0, 0)
	out := make([]*entity.Category, 0, len(all))
	for _, c := range all {
		if c.IsTopLevel() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListByParent(companyID, parentID string) ([]*entity.Category, error) {
	all, _ := f.ListByCompany(companyID, 0, 0)
	out := make([]*entity.Category, 0)
	for _, c := range all {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{byID: make(map[string]*entity.Warehouse)}
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.byID[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { f.byID[w.ID] = w; return nil }

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

type fakeRackRepo struct {
	byID  map[string]*entity.Rack
	order []string
}

func newFakeRackRepo() *fakeRackRepo {
	return &fakeRackRepo{byID: make(map[string]*entity.Rack)}
}

func (f *fakeRackRepo) Create(r *entity.Rack) error {
	cp := *r
	f.byID[r.ID] = &cp
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeRackRepo) GetByID(id string) (*entity.Rack, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRackRepo) Update(r *entity.Rack) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRackRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Rack, error) {
	out := make([]*entity.Rack, 0, len(f.order))
	for _, id := range f.order {
		r, ok := f.byID[id]
		if !ok || r.CompanyID != companyID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRackRepo) ListByWarehouse(warehouseID string) ([]*entity.Rack, error) {
	out := make([]*entity.Rack, 0)
	for _, r := range f.byID {
		if r.WarehouseID == warehouseID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRackRepo) CountByWarehouse(warehouseID string) (int, error) {
	list, _ := f.ListByWarehouse(warehouseID)
	return len(list), nil
}

func (f *fakeRackRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeShopRepo struct {
	byID  map[string]*entity.Shop
	order []string
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{byID: make(map[string]*entity.Shop)}
}

func (f *fakeShopRepo) Create(s *entity.Shop) error {
	cp := *s
	f.byID[s.ID] = &cp
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeShopRepo) GetByID(id string) (*entity.Shop, error) {
	if s, ok := f.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeShopRepo) Update(s *entity.Shop) error {
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeShopRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Shop, error) {
	out := make([]*entity.Shop, 0, len(f.order))
	for _, id := range f.order {
		s, ok := f.byID[id]
		if !ok || s.CompanyID != companyID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeShopRepo) ListByWarehouse(warehouseID string) ([]*entity.Shop, error) {
	out := make([]*entity.Shop, 0)
	for _, s := range f.byID {
		if s.WarehouseID == warehouseID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeShopRepo) CountByWarehouse(warehouseID string) (int, error) {
	list, _ := f.ListByWarehouse(warehouseID)
	return len(list), nil
}

func (f *fakeShopRepo) AssignWarehouse(shopID, warehouseID string) error {
	if s, ok := f.byID[shopID]; ok {
		s.WarehouseID = warehouseID
	}
	return nil
}

func (f *fakeShopRepo) UnassignWarehouse(shopID string) error {
	if s, ok := f.byID[shopID]; ok {
		s.WarehouseID = ""
	}
	return nil
}

func (f *fakeShopRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeTaxSettingsRepo struct {
	row *entity.TaxSettings
}

func (f *fakeTaxSettingsRepo) GetByCompany(companyID string) (*entity.TaxSettings, error) {
	if f.row == nil || f.row.CompanyID != companyID {
		return nil, nil
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeTaxSettingsRepo) Upsert(s *entity.TaxSettings) error {
	cp := *s
	f.row = &cp
	return nil
}

type fakeAppSettingsRepo struct {
	row *entity.AppSettings
}

func (f *fakeAppSettingsRepo) GetByCompany(companyID string) (*entity.AppSettings, error) {
	if f.row == nil || f.row.CompanyID != companyID {
		return nil, nil
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeAppSettingsRepo) Upsert(s *entity.AppSettings) error {
	cp := *s
	f.row = &cp
	return nil
}

type fakeAttendanceRepo struct {
	byID  map[string]*entity.Attendance
	order []string
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byID: make(map[string]*entity.Attendance)}
}

func (f *fakeAttendanceRepo) Create(a *entity.Attendance) error {
	cp := *a
	f.byID[a.ID] = &cp
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeAttendanceRepo) GetByID(id string) (*entity.Attendance, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(userID string, date time.Time) (*entity.Attendance, error) {
	for _, a := range f.byID {
		if a.UserID == userID && a.WorkDate.Equal(date) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(a *entity.Attendance) error {
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAttendanceRepo) ListByCompany(companyID string, filter repository.AttendanceFilter) ([]*entity.Attendance, error) {
	out := make([]*entity.Attendance, 0, len(f.order))
	for _, id := range f.order {
		a := f.byID[id]
		if a.CompanyID != companyID {
			continue
		}
		if filter.From != nil && a.WorkDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.WorkDate.After(*filter.To) {
			continue
		}
		if filter.ShopID != "" && a.ShopID != filter.ShopID {
			continue
		}
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.byID[u.ID] = u; return nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error { f.byID[u.ID] = u; return nil }

func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(id string) error { delete(f.byID, id); return nil }

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

// newTestRecorder arma un recorder real sobre fakes para los tests que
// auditan.
func newTestRecorder(auditRepo *fakeAuditRepo) *audit.Recorder {
	users := newFakeUserRepo()
	users.byID[testUserID] = &entity.User{ID: testUserID, CompanyID: testCompanyID, Name: "Laura Admin"}
	return audit.NewRecorder(auditRepo, users, logger.New(logger.Config{Env: "test", Level: "error"}))
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// mustDay parsea una fecha de trabajo en los tests.
func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
