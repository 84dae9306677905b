package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "almacen-test"
)

type memUserRepo struct {
	users map[string]*entity.User // clave: id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (f *memUserRepo) Create(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *memUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) SetGoogleID(userID, googleID string) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.GoogleID = googleID
	return nil
}

func (f *memUserRepo) SetResetToken(userID, token string, expires time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpires = &expires
	return nil
}

func (f *memUserRepo) GetByResetToken(token string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ResetToken != "" && u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *memUserRepo) UpdatePassword(userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpires = nil
	return nil
}

type memMailer struct {
	to       string
	resetURL string
}

func (m *memMailer) SendPasswordReset(to, resetURL string) error {
	m.to = to
	m.resetURL = resetURL
	return nil
}

type fakeGoogle struct {
	profile *auth.GoogleProfile
}

func (g *fakeGoogle) Exchange(_ context.Context, _ string) (*auth.GoogleProfile, error) {
	return g.profile, nil
}

func newAuthUC(repo *memUserRepo, mailer auth.Mailer, google auth.GoogleExchanger) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, mailer, google, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	}, "http://localhost:3000")
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmiteTokenValido(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, nil)

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secreto123",
		FullName: "Ana Gómez",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, email, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)

	user, _ := repo.GetByID(userID)
	require.NotNil(t, user)
	assert.NotEqual(t, "secreto123", user.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "otra456", FullName: "Ana Dos"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

// Email desconocido y password incorrecto responden igual: no se distingue
// qué parte de la credencial falló.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Google
// ──────────────────────────────────────────────────────────────────────────────

func TestGoogleLogin_CreaUsuarioNuevo(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, &fakeGoogle{profile: &auth.GoogleProfile{
		Subject: "google-sub-1",
		Email:   "ana@example.com",
		Name:    "Ana Gómez",
	}})

	out, err := uc.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Code: "auth-code"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	user, _ := repo.FindByEmail("ana@example.com")
	require.NotNil(t, user)
	assert.Equal(t, "google-sub-1", user.GoogleID)
	assert.NotEmpty(t, user.PasswordHash, "el usuario de Google lleva contraseña aleatoria")
}

func TestGoogleLogin_VinculaCuentaExistente(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, nil, &fakeGoogle{profile: &auth.GoogleProfile{
		Subject: "google-sub-1",
		Email:   "ana@example.com",
		Name:    "Ana Gómez",
	}})

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	_, err = uc.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Code: "auth-code"})
	require.NoError(t, err)

	user, _ := repo.FindByEmail("ana@example.com")
	assert.Equal(t, "google-sub-1", user.GoogleID, "el subject de Google debe quedar vinculado")
}

func TestGoogleLogin_SinClienteConfigurado(t *testing.T) {
	uc := newAuthUC(newMemUserRepo(), nil, nil)

	_, err := uc.GoogleLogin(context.Background(), dto.GoogleLoginRequest{Code: "auth-code"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_EnviaEnlaceConToken(t *testing.T) {
	repo := newMemUserRepo()
	mailer := &memMailer{}
	uc := newAuthUC(repo, mailer, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "ana@example.com"}))

	assert.Equal(t, "ana@example.com", mailer.to)
	assert.True(t, strings.HasPrefix(mailer.resetURL, "http://localhost:3000/reset-password?token="),
		"el enlace debe apuntar al frontend con el token: %s", mailer.resetURL)

	user, _ := repo.FindByEmail("ana@example.com")
	assert.NotEmpty(t, user.ResetToken)
	require.NotNil(t, user.ResetTokenExpires)
	assert.True(t, user.ResetTokenExpires.After(time.Now()), "el token debe expirar en el futuro")
}

func TestForgotPassword_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newMemUserRepo(), &memMailer{}, nil)

	err := uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "nadie@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResetPassword_Completo(t *testing.T) {
	repo := newMemUserRepo()
	mailer := &memMailer{}
	uc := newAuthUC(repo, mailer, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)
	require.NoError(t, uc.ForgotPassword(dto.ForgotPasswordRequest{Email: "ana@example.com"}))

	user, _ := repo.FindByEmail("ana@example.com")
	token := user.ResetToken

	require.NoError(t, uc.ResetPassword(dto.ResetPasswordRequest{Token: token, Password: "nueva789"}))

	// El token es de un solo uso.
	assert.Empty(t, user.ResetToken)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "nueva789"})
	assert.NoError(t, err, "debe poder entrar con la contraseña nueva")
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña anterior deja de valer")
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, &memMailer{}, nil)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", FullName: "Ana"})
	require.NoError(t, err)

	user, _ := repo.FindByEmail("ana@example.com")
	expired := time.Now().Add(-time.Minute)
	user.ResetToken = "token-viejo"
	user.ResetTokenExpires = &expired

	err = uc.ResetPassword(dto.ResetPasswordRequest{Token: "token-viejo", Password: "nueva789"})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestResetPassword_TokenDesconocido(t *testing.T) {
	uc := newAuthUC(newMemUserRepo(), &memMailer{}, nil)

	err := uc.ResetPassword(dto.ResetPasswordRequest{Token: "no-existe", Password: "nueva789"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
