package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// AuthHandler maneja registro, login (contraseña y Google) y recuperación de contraseña.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, fullName"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	out, err := h.uc.Register(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GoogleLogin godoc
// @Summary      Iniciar sesión con Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "código de autorización OAuth"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido", Fields: errs})
	}
	out, err := h.uc.GoogleLogin(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "GOOGLE_AUTH", Message: "no se pudo validar el código de Google"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "GOOGLE_DISABLED", Message: "login con Google no habilitado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email inválido", Fields: errs})
	}
	if err := h.uc.ForgotPassword(in); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MAIL_DISABLED", Message: "envío de correo no habilitado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "correo de recuperación enviado"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	if err := h.uc.ResetPassword(in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
		}
		if errors.Is(err, domain.ErrTokenExpired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}
