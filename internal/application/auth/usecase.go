package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// Vigencia del token de recuperación de contraseña.
const resetTokenTTL = time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login con contraseña,
// login con Google y recuperación de contraseña.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	mailer      Mailer
	google      GoogleExchanger
	jwtCfg      JWTConfig
	frontendURL string
}

// NewAuthUseCase construye el caso de uso. mailer y google pueden ser nil si
// esas rutas no están habilitadas (quedan en ErrInvalidInput al usarlas).
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, google GoogleExchanger, jwtCfg JWTConfig, frontendURL string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		mailer:      mailer,
		google:      google,
		jwtCfg:      jwtCfg,
		frontendURL: frontendURL,
	}
}

// Register crea un usuario: hashea el password con bcrypt, persiste y emite
// un JWT. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.TokenResponse, error) {
	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login verifica email/password y emite un JWT. Credenciales inválidas (email
// desconocido o password incorrecto) devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// GoogleLogin canjea el código de autorización, verifica el ID token y emite
// un JWT. Si el email no existe crea el usuario con una contraseña aleatoria
// (solo entrará por Google hasta que la restablezca).
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, in dto.GoogleLoginRequest) (*dto.TokenResponse, error) {
	if uc.google == nil {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.google.Exchange(ctx, in.Code)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByEmail(profile.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		random, err := randomToken()
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(random), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        profile.Email,
			PasswordHash: string(hash),
			FullName:     profile.Name,
			GoogleID:     profile.Subject,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else if user.GoogleID == "" {
		if err := uc.userRepo.SetGoogleID(user.ID, profile.Subject); err != nil {
			return nil, err
		}
	}
	return uc.issueToken(user)
}

// ForgotPassword genera un token de recuperación de un solo uso (1 hora de
// vigencia), lo persiste y envía el enlace por correo.
func (uc *AuthUseCase) ForgotPassword(in dto.ForgotPasswordRequest) error {
	if uc.mailer == nil {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, err := randomToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := uc.userRepo.SetResetToken(user.ID, token, expires); err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.frontendURL, token)
	return uc.mailer.SendPasswordReset(user.Email, resetURL)
}

// ResetPassword valida el token y su expiración, re-hashea la contraseña y
// limpia el token.
func (uc *AuthUseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	user, err := uc.userRepo.GetByResetToken(in.Token)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidInput
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return domain.ErrTokenExpired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(user.ID, string(hash))
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// randomToken devuelve 32 bytes aleatorios en hex (64 caracteres).
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
