package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Mailer sends the two password-reset notifications over SMTP. Both sends
// are treated as best-effort by the caller.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewMailer(host, port, username, password, from string) *Mailer {
	return &Mailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *Mailer) SendOTP(ctx context.Context, email, otp string) error {
	subject := "Evangadi Forum - Password Reset OTP"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">
  <h2>Password Reset OTP</h2>
  <p>Your OTP code is:</p>
  <h1 style="color: #667eea;">%s</h1>
  <p>This OTP will expire in 10 minutes. Do not share it with anyone.</p>
</div>`, otp)
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) SendResetSuccess(ctx context.Context, email string) error {
	subject := "Evangadi Forum - Password Reset Successful"
	body := `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">
  <h2>Password Reset Successful</h2>
  <p>Your password has been successfully reset. You can now login with your new password.</p>
</div>`
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) send(ctx context.Context, email, subject, htmlBody string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(htmlBody)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
