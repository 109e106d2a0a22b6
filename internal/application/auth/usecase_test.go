package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Acopio-api/internal/application/auth"
	"github.com/jhoicas/Acopio-api/internal/application/dto"
	"github.com/jhoicas/Acopio-api/internal/domain"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Acopio-api/pkg/jwt"
)

// doble en memoria del repositorio de cuentas.
type memUserRepo struct {
	rows map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func newAuthUC() (*auth.AuthUseCase, *memUserRepo) {
	repo := &memUserRepo{rows: make(map[string]*entity.User)}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "acopio-api-test",
	})
	return uc, repo
}

func TestRegister_CreaCuentaDepot(t *testing.T) {
	uc, repo := newAuthUC()

	out, err := uc.Register(dto.RegisterRequest{
		Name:     "Acopio Norte",
		Email:    "norte@acopio.test",
		Password: "supersecreta",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleDepot, out.Role, "sin rol explícito la cuenta es depot")
	assert.Equal(t, "active", out.Status)
	assert.NotEmpty(t, out.ID)

	stored := repo.rows[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecreta", stored.PasswordHash, "el password nunca se guarda plano")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID, "el claim user_id es el DepotID de la cuenta")
	assert.Equal(t, entity.RoleDepot, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "norte@acopio.test", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@acopio.test", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, repo := newAuthUC()

	registered, err := uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)

	repo.rows[registered.ID].Status = "inactive"
	_, err = uc.Login(dto.LoginRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.Register(dto.RegisterRequest{Email: "norte@acopio.test", Password: "supersecreta"})
	require.NoError(t, err)

	out, err := uc.Me(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, out.Email)

	_, err = uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
