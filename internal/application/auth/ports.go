package auth

import "context"

// Mailer puerto de envío de correo (recuperación de contraseña).
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// GoogleProfile datos mínimos del ID token verificado.
type GoogleProfile struct {
	Subject string // sub: identificador estable del usuario en Google
	Email   string
	Name    string
}

// GoogleExchanger puerto OAuth: canjea el código de autorización y verifica
// el ID token resultante.
type GoogleExchanger interface {
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}
