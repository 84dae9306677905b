package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

var _ auth.GoogleExchanger = (*OAuthClient)(nil)

// OAuthClient implementación del puerto GoogleExchanger: canjea el código de
// autorización por tokens y valida el ID token contra el client ID propio.
type OAuthClient struct {
	oauth    *oauth2.Config
	clientID string
}

// NewOAuthClient construye el cliente con las credenciales de la app.
func NewOAuthClient(cfg config.GoogleConfig) *OAuthClient {
	return &OAuthClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		clientID: cfg.ClientID,
	}
}

// Exchange canjea el código, verifica el ID token (firma y audience) y
// devuelve el perfil mínimo del usuario.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*auth.GoogleProfile, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("respuesta de Google sin id_token")
	}
	payload, err := idtoken.Validate(ctx, rawID, c.clientID)
	if err != nil {
		return nil, fmt.Errorf("validar id_token: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("id_token sin email")
	}
	name, _ := payload.Claims["name"].(string)
	return &auth.GoogleProfile{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
