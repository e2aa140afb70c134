package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybodega/productos-api/internal/application/auth"
	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/infrastructure/memory"
	pkgjwt "github.com/mybodega/productos-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "productos-api-test",
}

func newAuthUC() (*auth.UseCase, *memory.UserRepo) {
	repo := memory.NewUserRepository()
	return auth.NewUseCase(repo, testJWT), repo
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ana@mybodega.com",
		Password: "contraseña-segura",
		Name:     "Ana",
	}
}

func TestRegister_RolPorDefectoUsuario(t *testing.T) {
	uc, repo := newAuthUC()

	out, err := uc.Register(registerReq())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUsuario, out.Role)
	assert.True(t, out.Active)

	// El hash nunca se expone y nunca es la contraseña en claro
	stored, err := repo.GetByEmail("ana@mybodega.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-segura", stored.Password)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	_, err = uc.Register(registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := newAuthUC()

	in := registerReq()
	in.Role = entity.RoleGerente
	_, err := uc.Register(in)
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: in.Email, Password: in.Password})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	require.NotNil(t, out.User)
	assert.NotNil(t, out.User.LastAccess, "el login registra el último acceso")

	claims, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, in.Email, claims.Email)
	assert.Equal(t, entity.RoleGerente, claims.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@mybodega.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@mybodega.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
