package smtp

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/restom-api/internal/config"
	"github.com/restom-api/internal/domain"
)

const otpSubject = "Your RestoM verification code"

// Mailer delivers OTP codes over email.
type Mailer interface {
	// SendOTP sends the plaintext code to the given address. Returns
	// domain.ErrMailerNotConfigured when no SMTP transport is available;
	// any other error is a transport failure.
	SendOTP(to, otp string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	secure   bool
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		secure:   cfg.SMTPSecure,
	}
}

func (m *mailer) SendOTP(to, otp string) error {
	if m.host == "" || m.username == "" || m.password == "" {
		return domain.ErrMailerNotConfigured
	}

	body := fmt.Sprintf("Your verification code is %s. It will expire in 10 minutes.", otp)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, otpSubject, body))
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if m.secure {
		return m.sendTLS(addr, auth, to, msg)
	}
	// smtp.SendMail upgrades to STARTTLS when the server offers it.
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

// sendTLS handles implicit-TLS servers (port 465 style), which smtp.SendMail
// cannot speak to directly.
func (m *mailer) sendTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("smtp tls dial: %w", err)
	}
	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
