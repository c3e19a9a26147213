package audit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/pkg/logger"
)

type fakeAuditRepo struct {
	created []*entity.AuditLog
	fail    bool
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error {
	if f.fail {
		return errors.New("db caída")
	}
	f.created = append(f.created, l)
	return nil
}

func (f *fakeAuditRepo) ListByCompany(companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error) {
	return f.created, nil
}

type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error            { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) { return f.user, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { return nil }
func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// TestRecord_DesnormalizaNombreYSerializa verifica que la entrada guarda el
// nombre del usuario y los estados antes/después como JSON.
func TestRecord_DesnormalizaNombreYSerializa(t *testing.T) {
	repo := &fakeAuditRepo{}
	users := &fakeUserRepo{user: &entity.User{ID: "u1", Name: "Marta Gómez"}}
	rec := audit.NewRecorder(repo, users, testLogger())

	rec.Record(audit.Entry{
		CompanyID:  "c1",
		UserID:     "u1",
		EntityType: "purchase_request",
		EntityID:   "r1",
		Action:     entity.AuditActionRequestApproved,
		Before:     map[string]string{"status": "pending"},
		After:      map[string]string{"status": "approved"},
	})

	require.Len(t, repo.created, 1)
	got := repo.created[0]
	assert.Equal(t, "Marta Gómez", got.UserName)
	assert.JSONEq(t, `{"status":"pending"}`, got.BeforeData)
	assert.JSONEq(t, `{"status":"approved"}`, got.AfterData)
	assert.NotEmpty(t, got.ID)
}

// TestRecord_SinEstados verifica que Before/After ausentes quedan como
// "null" (JSON válido para la columna jsonb).
func TestRecord_SinEstados(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, &fakeUserRepo{}, testLogger())

	rec.Record(audit.Entry{CompanyID: "c1", UserID: "u1", Action: entity.AuditActionTaxSettingsSaved})

	require.Len(t, repo.created, 1)
	assert.Equal(t, "null", repo.created[0].BeforeData)
	assert.Equal(t, "null", repo.created[0].AfterData)
}

// TestRecord_MejorEsfuerzo verifica que un fallo del repositorio no
// entorpece al caller: Record no entra en pánico ni propaga el error.
func TestRecord_MejorEsfuerzo(t *testing.T) {
	repo := &fakeAuditRepo{fail: true}
	rec := audit.NewRecorder(repo, &fakeUserRepo{}, testLogger())

	assert.NotPanics(t, func() {
		rec.Record(audit.Entry{CompanyID: "c1", UserID: "u1", Action: entity.AuditActionReturnAccepted})
	})
	assert.Empty(t, repo.created)
}
