package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for an SMTP sink. The zero value
// is not usable; From and Password must carry the sender's credentials.
type SMTPConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	From     string `yaml:"from" json:"from"`
	Password string `yaml:"password" json:"-"`
}

// DefaultSMTPConfig returns Gmail's implicit-TLS endpoint, the transport the
// reference deployment used.
func DefaultSMTPConfig(from, password string) SMTPConfig {
	return SMTPConfig{Host: "smtp.gmail.com", Port: 465, From: from, Password: password}
}

// SMTPSink sends messages through an authenticated SMTPS connection. Each
// Send dials a fresh connection; the sink holds no state between sends.
type SMTPSink struct {
	cfg SMTPConfig
}

// NewSMTPSink validates the config and returns a ready sink.
func NewSMTPSink(cfg SMTPConfig) (*SMTPSink, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("notify: smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("notify: smtp sender address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	return &SMTPSink{cfg: cfg}, nil
}

// Send delivers one message, dialing and closing a connection around it.
func (s *SMTPSink) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("notify: invalid sender %q: %w", s.cfg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("notify: invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.From),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send to %s: %w", msg.To, err)
	}
	return nil
}
