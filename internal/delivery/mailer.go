package delivery

import (
	"fmt"

	"github.com/tedhq/ted/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer sends mail through the configured SMTP relay with STARTTLS.
// The configuration is fixed at construction.
type Mailer struct {
	cfg config.SMTP
}

func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) client() (*mail.Client, error) {
	return mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
}

// SendReport mails the HTML report body to the admin address with the
// given files attached, sent on behalf of the employee.
func (m *Mailer) SendReport(fromEmail, subject string, htmlBody []byte, attachments []string) error {
	msg := mail.NewMsg()
	if err := msg.From(fromEmail); err != nil {
		return fmt.Errorf("invalid sender %q: %w", fromEmail, err)
	}
	if err := msg.To(m.cfg.AdminEmail); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.cfg.AdminEmail, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, string(htmlBody))
	for _, path := range attachments {
		msg.AttachFile(path)
	}

	c, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return c.DialAndSend(msg)
}

// SendInvitation mails a registration code to an invitee.
func (m *Mailer) SendInvitation(toEmail, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.cfg.Username, err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", toEmail, err)
	}
	msg.Subject("Invitation to Register")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("You have been invited to register. Use the following invitation code to register: %s", code))

	c, err := m.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return c.DialAndSend(msg)
}
