package auth

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends password-reset emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{dialer: gomail.NewDialer(host, port, user, password), from: user}
}

func (m *Mailer) SendResetEmail(to, resetLink string) error {
	body := fmt.Sprintf("<html><body><p>To reset your password, follow <a href='%s'>this link</a>. The link expires in one hour.</p></body></html>", resetLink)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Stickify password reset")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
