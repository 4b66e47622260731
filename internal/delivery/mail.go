package delivery

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/dvloznov/statement-exporter/internal/config"
)

// MailChannel delivers the statement as an email attachment over SMTP.
type MailChannel struct {
	dialer  *gomail.Dialer
	from    string
	to      string
	caption string
}

// NewMailChannel creates a MailChannel. The caption ("{bank}-{last4}")
// appears in the mail subject so statements from different cards are easy to
// tell apart in an inbox.
func NewMailChannel(cfg config.MailConfig, caption string) *MailChannel {
	return &MailChannel{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:    cfg.From,
		to:      cfg.To,
		caption: caption,
	}
}

// Verify establishes and closes an SMTP connection, so credential problems
// surface before any bank API is called.
func (c *MailChannel) Verify() error {
	closer, err := c.dialer.Dial()
	if err != nil {
		return fmt.Errorf("connect to SMTP server: %w", err)
	}
	return closer.Close()
}

// Deliver sends the statement file as a single attachment with an empty
// text body.
func (c *MailChannel) Deliver(_ context.Context, fileName string, content []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", c.to)
	m.SetHeader("Subject", fmt.Sprintf("Statement export [%s]", c.caption))
	m.SetBody("text/plain", "")
	m.Attach(fileName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send statement mail: %w", err)
	}

	return nil
}
