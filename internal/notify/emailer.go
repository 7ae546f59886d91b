// Package notify delivers finished reports by email.
package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailConfig carries SMTP connection details and the message envelope.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Subject  string
	Body     string
}

// SendReport mails the PDF at pdfPath as an attachment. Implicit TLS is
// used on port 465, STARTTLS otherwise.
func SendReport(cfg EmailConfig, pdfPath string) error {
	if cfg.Host == "" || cfg.To == "" {
		return fmt.Errorf("email requires at least an SMTP host and a recipient")
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", cfg.To)
	m.SetHeader("Subject", cfg.Subject)
	m.SetBody("text/plain", cfg.Body)
	m.Attach(pdfPath)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}
