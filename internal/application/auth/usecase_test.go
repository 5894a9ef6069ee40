package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/auth"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*entity.User
	// emailLookupErr fuerza un fallo en la verificación de email duplicado.
	emailLookupErr error
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (s *stubUserRepo) Create(u *entity.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) GetByID(id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	if s.emailLookupErr != nil {
		return nil, s.emailLookupErr
	}
	for _, u := range s.users {
		if u.Email == email && u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}

type stubCompanyRepo struct {
	companies map[string]*entity.Company
}

var _ repository.CompanyRepository = (*stubCompanyRepo)(nil)

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (s *stubCompanyRepo) Create(c *entity.Company) error {
	s.companies[c.ID] = c
	return nil
}

func (s *stubCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return s.companies[id], nil
}

func buildAuthUseCase() (*auth.AuthUseCase, *stubUserRepo, *stubCompanyRepo) {
	userRepo := newStubUserRepo()
	companyRepo := newStubCompanyRepo()
	cfg := auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "inventario-retail-test"}
	return auth.NewAuthUseCase(userRepo, companyRepo, cfg), userRepo, companyRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaEmpresaYAdmin(t *testing.T) {
	uc, userRepo, companyRepo := buildAuthUseCase()

	res, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyName: "Comercial Andina",
		Email:       "dueno@andina.cl",
		Password:    "secreto-largo",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, res.Role, "el fundador del tenant queda como admin")
	assert.Len(t, companyRepo.companies, 1)
	require.Len(t, userRepo.users, 1)
	for _, u := range userRepo.users {
		assert.NotEqual(t, "secreto-largo", u.PasswordHash, "el password se guarda hasheado")
	}
}

func TestRegisterUser_EmailDuplicadoEsError(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	first, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyName: "Comercial Andina",
		Email:       "dueno@andina.cl",
		Password:    "secreto-largo",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		CompanyID: first.CompanyID,
		Email:     "dueno@andina.cl",
		Password:  "otro-secreto",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_ErrorEnVerificacionDeEmailSePropaga(t *testing.T) {
	uc, userRepo, companyRepo := buildAuthUseCase()
	companyRepo.companies["co1"] = &entity.Company{ID: "co1", Name: "Comercial Andina"}
	lookupErr := errors.New("conexión perdida")
	userRepo.emailLookupErr = lookupErr

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "co1",
		Email:     "vendedor@andina.cl",
		Password:  "secreto-largo",
	})
	assert.ErrorIs(t, err, lookupErr,
		"un fallo transitorio de la DB no debe leerse como 'email libre'")
	assert.Empty(t, userRepo.users, "el usuario no debe crearse si la verificación falló")
}

func TestRegisterUser_EmpresaInexistenteEsNotFound(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "no-existe",
		Email:     "vendedor@andina.cl",
		Password:  "secreto-largo",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrectoEsUnauthorized(t *testing.T) {
	uc, _, _ := buildAuthUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyName: "Comercial Andina",
		Email:       "dueno@andina.cl",
		Password:    "secreto-largo",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "dueno@andina.cl", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	res, err := uc.Login(dto.LoginRequest{Email: "dueno@andina.cl", Password: "secreto-largo"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}
