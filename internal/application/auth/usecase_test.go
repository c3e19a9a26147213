package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdruizm/Botica-api/internal/application/auth"
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/pkg/jwt"
)

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

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

func (f *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

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

type fakeCompanyRepo struct {
	byID map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[string]*entity.Company)}
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCompanyRepo) GetByNIT(nit string) (*entity.Company, error) {
	for _, c := range f.byID {
		if c.NIT == nit {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

var testJWT = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "botica-api"}

func authFixture() (*auth.AuthUseCase, *fakeUserRepo, *fakeCompanyRepo) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	return auth.NewAuthUseCase(users, companies, testJWT), users, companies
}

func registro() dto.RegisterCompanyRequest {
	return dto.RegisterCompanyRequest{
		Name:          "Distribuidora Botica SAS",
		NIT:           "900123456-7",
		Address:       "Calle 10 #4-21, Bogotá",
		Email:         "contacto@botica.co",
		AdminName:     "Laura Admin",
		AdminEmail:    "laura@botica.co",
		AdminPassword: "clave-segura-123",
	}
}

// ── registro ──

func TestAuth_RegistroCreaEmpresaYPrimerAdmin(t *testing.T) {
	uc, users, _ := authFixture()

	resp, err := uc.RegisterCompany(registro())
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Company.Status)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role, "el primer usuario es admin")
	assert.Equal(t, resp.Company.ID, resp.User.CompanyID)

	userID, companyID, role, err := jwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err, "el token del registro debe ser válido")
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, resp.Company.ID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)

	stored, _ := users.GetByID(resp.User.ID)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura-123")),
		"la contraseña se guarda hasheada")
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash)
}

func TestAuth_NITDuplicado(t *testing.T) {
	uc, _, _ := authFixture()

	_, err := uc.RegisterCompany(registro())
	require.NoError(t, err)

	otra := registro()
	otra.AdminEmail = "otro@botica.co"
	_, err = uc.RegisterCompany(otra)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el NIT identifica a la distribuidora")
}

func TestAuth_EmailDeAdminYaRegistrado(t *testing.T) {
	uc, _, _ := authFixture()

	_, err := uc.RegisterCompany(registro())
	require.NoError(t, err)

	otra := registro()
	otra.NIT = "800999111-2"
	_, err = uc.RegisterCompany(otra)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ── login ──

func TestAuth_LoginCorrecto(t *testing.T) {
	uc, _, _ := authFixture()
	created, err := uc.RegisterCompany(registro())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "laura@botica.co", Password: "clave-segura-123"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, resp.User.ID)

	_, companyID, role, err := jwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Company.ID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestAuth_LoginPasswordIncorrecta(t *testing.T) {
	uc, _, _ := authFixture()
	_, err := uc.RegisterCompany(registro())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "laura@botica.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_LoginUsuarioInexistente(t *testing.T) {
	uc, _, _ := authFixture()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@botica.co", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuth_LoginUsuarioSuspendido(t *testing.T) {
	uc, users, _ := authFixture()
	created, err := uc.RegisterCompany(registro())
	require.NoError(t, err)

	stored, _ := users.GetByID(created.User.ID)
	stored.Status = "suspended"
	require.NoError(t, users.Update(stored))

	_, err = uc.Login(dto.LoginRequest{Email: "laura@botica.co", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
