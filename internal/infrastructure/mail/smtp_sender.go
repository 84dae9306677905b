package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

var _ auth.Mailer = (*SMTPSender)(nil)

// SMTPSender implementación del puerto Mailer sobre SMTP (gomail).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender construye el adaptador con la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.Sender(),
	}
}

// SendPasswordReset envía el correo con el enlace de restablecimiento.
func (s *SMTPSender) SendPasswordReset(to, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Restablecer contraseña")
	m.SetBody("text/html", fmt.Sprintf(
		`Haz clic <a href="%s">aquí</a> para restablecer tu contraseña. El enlace vence en una hora.`,
		resetURL,
	))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send password reset mail: %w", err)
	}
	return nil
}
